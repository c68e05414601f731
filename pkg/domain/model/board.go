package model

import (
	"time"

	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// Board represents a kanban board. The invite code is empty until one is
// generated for the board.
type Board struct {
	ID         types.BoardID `json:"id"`
	Title      string        `json:"title"`
	OwnerID    types.UserID  `json:"ownerId"`
	InviteCode string        `json:"inviteCode,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}
