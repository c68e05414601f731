package interfaces

import (
	"context"

	"github.com/deckhand-app/deckhand/pkg/domain/model/auth"
)

// Repository defines the interface for data persistence
type Repository interface {
	Board() BoardRepository
	Column() ColumnRepository
	Task() TaskRepository
	Member() MemberRepository
	Profile() ProfileRepository
	Message() MessageRepository

	// Auth methods
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error

	Close() error
}
