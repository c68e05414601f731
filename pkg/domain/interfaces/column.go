package interfaces

import (
	"context"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// ColumnRepository defines the interface for column data access. All
// operations are scoped to a board: looking up a column through a board it
// does not belong to fails as not found.
type ColumnRepository interface {
	// Create creates a new column on the board. The ID is generated when empty.
	Create(ctx context.Context, boardID types.BoardID, c *model.Column) (*model.Column, error)

	// Get retrieves a column by ID within the board
	Get(ctx context.Context, boardID types.BoardID, id types.ColumnID) (*model.Column, error)

	// List retrieves all columns of the board ordered by position
	List(ctx context.Context, boardID types.BoardID) ([]*model.Column, error)

	// Update updates an existing column
	Update(ctx context.Context, boardID types.BoardID, c *model.Column) (*model.Column, error)

	// Delete deletes a column by ID
	Delete(ctx context.Context, boardID types.BoardID, id types.ColumnID) error
}
