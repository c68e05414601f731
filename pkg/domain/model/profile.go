package model

import (
	"time"

	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// Profile represents a user known to the system
type Profile struct {
	ID        types.UserID `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
