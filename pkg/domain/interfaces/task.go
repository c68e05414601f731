package interfaces

import (
	"context"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// TaskRepository defines the interface for task data access. All operations
// are scoped to a board: looking up a task through a board it does not belong
// to fails as not found.
type TaskRepository interface {
	// Create creates a new task on the board. The ID is generated when empty.
	Create(ctx context.Context, boardID types.BoardID, t *model.Task) (*model.Task, error)

	// Get retrieves a task by ID within the board
	Get(ctx context.Context, boardID types.BoardID, id types.TaskID) (*model.Task, error)

	// ListByColumn retrieves all tasks of the column ordered by position
	ListByColumn(ctx context.Context, boardID types.BoardID, columnID types.ColumnID) ([]*model.Task, error)

	// Update updates an existing task and refreshes its updated timestamp
	Update(ctx context.Context, boardID types.BoardID, t *model.Task) (*model.Task, error)

	// Delete deletes a task by ID
	Delete(ctx context.Context, boardID types.BoardID, id types.TaskID) error
}
