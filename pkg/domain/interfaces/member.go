package interfaces

import (
	"context"

	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// MemberRepository defines the interface for explicit board membership rows.
// A board's effective member set is its owner plus these rows.
type MemberRepository interface {
	// Add records the user as a member of the board (idempotent)
	Add(ctx context.Context, boardID types.BoardID, userID types.UserID) error

	// Remove deletes the membership row
	Remove(ctx context.Context, boardID types.BoardID, userID types.UserID) error

	// Exists reports whether the user is an explicit member of the board
	Exists(ctx context.Context, boardID types.BoardID, userID types.UserID) (bool, error)

	// List retrieves the user IDs of all explicit members of the board
	List(ctx context.Context, boardID types.BoardID) ([]types.UserID, error)

	// ListBoards retrieves the IDs of boards the user is an explicit member of
	ListBoards(ctx context.Context, userID types.UserID) ([]types.BoardID, error)
}
