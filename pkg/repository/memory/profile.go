package memory

import (
	"context"
	"sync"
	"time"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[types.UserID]*model.Profile
}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[types.UserID]*model.Profile),
	}
}

func copyProfile(p *model.Profile) *model.Profile {
	copied := *p
	return &copied
}

func (r *profileRepository) Put(ctx context.Context, p *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	saved := copyProfile(p)
	if existing, exists := r.profiles[p.ID]; exists {
		saved.CreatedAt = existing.CreatedAt
	} else {
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now

	r.profiles[saved.ID] = saved
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id types.UserID) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.profiles[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
	}

	return copyProfile(p), nil
}

func (r *profileRepository) GetMany(ctx context.Context, ids []types.UserID) ([]*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := []*model.Profile{}
	for _, id := range ids {
		if p, exists := r.profiles[id]; exists {
			profiles = append(profiles, copyProfile(p))
		}
	}

	return profiles, nil
}
