package interfaces

import (
	"context"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// Create creates a new board. The ID is generated when empty.
	Create(ctx context.Context, b *model.Board) (*model.Board, error)

	// Get retrieves a board by ID
	Get(ctx context.Context, id types.BoardID) (*model.Board, error)

	// ListByOwner retrieves all boards owned by the given user
	ListByOwner(ctx context.Context, ownerID types.UserID) ([]*model.Board, error)

	// Update updates an existing board
	Update(ctx context.Context, b *model.Board) (*model.Board, error)

	// Delete deletes a board by ID
	Delete(ctx context.Context, id types.BoardID) error
}
