package memory

import (
	"context"
	"sync"
	"time"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type boardRepository struct {
	mu     sync.RWMutex
	boards map[types.BoardID]*model.Board
}

func newBoardRepository() *boardRepository {
	return &boardRepository{
		boards: make(map[types.BoardID]*model.Board),
	}
}

func copyBoard(b *model.Board) *model.Board {
	copied := *b
	return &copied
}

func (r *boardRepository) Create(ctx context.Context, b *model.Board) (*model.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyBoard(b)
	if created.ID == "" {
		created.ID = types.NewBoardID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.boards[created.ID] = created
	return copyBoard(created), nil
}

func (r *boardRepository) Get(ctx context.Context, id types.BoardID) (*model.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.boards[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "board not found", goerr.V("id", id))
	}

	return copyBoard(b), nil
}

func (r *boardRepository) ListByOwner(ctx context.Context, ownerID types.UserID) ([]*model.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	boards := []*model.Board{}
	for _, b := range r.boards {
		if b.OwnerID == ownerID {
			boards = append(boards, copyBoard(b))
		}
	}

	return boards, nil
}

func (r *boardRepository) Update(ctx context.Context, b *model.Board) (*model.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.boards[b.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "board not found", goerr.V("id", b.ID))
	}

	updated := copyBoard(b)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.boards[updated.ID] = updated
	return copyBoard(updated), nil
}

func (r *boardRepository) Delete(ctx context.Context, id types.BoardID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.boards[id]; !exists {
		return goerr.Wrap(ErrNotFound, "board not found", goerr.V("id", id))
	}

	delete(r.boards, id)
	return nil
}
