package model

import (
	"time"

	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// Column represents a single column of a board. Position is a dense,
// zero-based index unique within the owning board.
type Column struct {
	ID        types.ColumnID `json:"id"`
	BoardID   types.BoardID  `json:"boardId"`
	Title     string         `json:"title"`
	Position  int            `json:"position"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
