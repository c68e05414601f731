package model

import (
	"time"

	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// Message is one entry of the conversation record of a board. Messages are
// append-only: once written they are never mutated. UserID is empty for
// assistant messages.
type Message struct {
	ID            types.MessageID   `json:"id"`
	BoardID       types.BoardID     `json:"boardId"`
	UserID        types.UserID      `json:"userId,omitempty"`
	Role          types.MessageRole `json:"role"`
	Content       string            `json:"content"`
	Actions       []Action          `json:"actions,omitempty"`
	ActionResults []ActionResult    `json:"actionResults,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}
