package model

import (
	"time"

	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// Task represents a single card of a column. Position is a dense, zero-based
// index unique within the owning column.
type Task struct {
	ID              types.TaskID   `json:"id"`
	ColumnID        types.ColumnID `json:"columnId"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Position        int            `json:"position"`
	AssignedUserIDs []types.UserID `json:"assignedUserIds"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}
