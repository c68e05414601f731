package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type columnRepository struct {
	mu      sync.RWMutex
	columns map[types.BoardID]map[types.ColumnID]*model.Column
}

func newColumnRepository() *columnRepository {
	return &columnRepository{
		columns: make(map[types.BoardID]map[types.ColumnID]*model.Column),
	}
}

func (r *columnRepository) ensureBoard(boardID types.BoardID) {
	if _, exists := r.columns[boardID]; !exists {
		r.columns[boardID] = make(map[types.ColumnID]*model.Column)
	}
}

func copyColumn(c *model.Column) *model.Column {
	copied := *c
	return &copied
}

func (r *columnRepository) Create(ctx context.Context, boardID types.BoardID, c *model.Column) (*model.Column, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureBoard(boardID)

	now := time.Now().UTC()
	created := copyColumn(c)
	if created.ID == "" {
		created.ID = types.NewColumnID()
	}
	created.BoardID = boardID
	created.CreatedAt = now
	created.UpdatedAt = now

	r.columns[boardID][created.ID] = created
	return copyColumn(created), nil
}

func (r *columnRepository) Get(ctx context.Context, boardID types.BoardID, id types.ColumnID) (*model.Column, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	board, exists := r.columns[boardID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "column not found", goerr.V("id", id))
	}

	c, exists := board[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "column not found", goerr.V("id", id))
	}

	return copyColumn(c), nil
}

func (r *columnRepository) List(ctx context.Context, boardID types.BoardID) ([]*model.Column, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	board, exists := r.columns[boardID]
	if !exists {
		return []*model.Column{}, nil
	}

	columns := make([]*model.Column, 0, len(board))
	for _, c := range board {
		columns = append(columns, copyColumn(c))
	}
	sort.Slice(columns, func(i, j int) bool {
		return columns[i].Position < columns[j].Position
	})

	return columns, nil
}

func (r *columnRepository) Update(ctx context.Context, boardID types.BoardID, c *model.Column) (*model.Column, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	board, exists := r.columns[boardID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "column not found", goerr.V("id", c.ID))
	}

	existing, exists := board[c.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "column not found", goerr.V("id", c.ID))
	}

	updated := copyColumn(c)
	updated.BoardID = boardID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.columns[boardID][updated.ID] = updated
	return copyColumn(updated), nil
}

func (r *columnRepository) Delete(ctx context.Context, boardID types.BoardID, id types.ColumnID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	board, exists := r.columns[boardID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "column not found", goerr.V("id", id))
	}

	if _, exists := board[id]; !exists {
		return goerr.Wrap(ErrNotFound, "column not found", goerr.V("id", id))
	}

	delete(r.columns[boardID], id)
	return nil
}
