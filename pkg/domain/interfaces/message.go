package interfaces

import (
	"context"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// MessageRepository defines the interface for the append-only conversation
// record of a board.
type MessageRepository interface {
	// Create appends a message to the board's conversation record. The ID
	// and created timestamp are generated when empty.
	Create(ctx context.Context, boardID types.BoardID, m *model.Message) (*model.Message, error)

	// List retrieves messages of the board, newest first, up to limit
	List(ctx context.Context, boardID types.BoardID, limit int) ([]*model.Message, error)
}
