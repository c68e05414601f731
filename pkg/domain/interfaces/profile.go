package interfaces

import (
	"context"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// ProfileRepository defines the interface for user profile data access
type ProfileRepository interface {
	// Put saves a profile (upsert)
	Put(ctx context.Context, p *model.Profile) error

	// Get retrieves a profile by user ID
	Get(ctx context.Context, id types.UserID) (*model.Profile, error)

	// GetMany retrieves profiles for the given user IDs. Unknown IDs are
	// silently skipped; the result preserves the input order.
	GetMany(ctx context.Context, ids []types.UserID) ([]*model.Profile, error)
}
