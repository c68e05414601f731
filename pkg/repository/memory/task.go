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

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[types.BoardID]map[types.TaskID]*model.Task
}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks: make(map[types.BoardID]map[types.TaskID]*model.Task),
	}
}

func (r *taskRepository) ensureBoard(boardID types.BoardID) {
	if _, exists := r.tasks[boardID]; !exists {
		r.tasks[boardID] = make(map[types.TaskID]*model.Task)
	}
}

func copyTask(t *model.Task) *model.Task {
	copied := *t
	copied.AssignedUserIDs = make([]types.UserID, len(t.AssignedUserIDs))
	copy(copied.AssignedUserIDs, t.AssignedUserIDs)
	return &copied
}

func (r *taskRepository) Create(ctx context.Context, boardID types.BoardID, t *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureBoard(boardID)

	now := time.Now().UTC()
	created := copyTask(t)
	if created.ID == "" {
		created.ID = types.NewTaskID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.tasks[boardID][created.ID] = created
	return copyTask(created), nil
}

func (r *taskRepository) Get(ctx context.Context, boardID types.BoardID, id types.TaskID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	board, exists := r.tasks[boardID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	t, exists := board[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	return copyTask(t), nil
}

func (r *taskRepository) ListByColumn(ctx context.Context, boardID types.BoardID, columnID types.ColumnID) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	board, exists := r.tasks[boardID]
	if !exists {
		return []*model.Task{}, nil
	}

	tasks := []*model.Task{}
	for _, t := range board {
		if t.ColumnID == columnID {
			tasks = append(tasks, copyTask(t))
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Position < tasks[j].Position
	})

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, boardID types.BoardID, t *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	board, exists := r.tasks[boardID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", t.ID))
	}

	existing, exists := board[t.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", t.ID))
	}

	updated := copyTask(t)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.tasks[boardID][updated.ID] = updated
	return copyTask(updated), nil
}

func (r *taskRepository) Delete(ctx context.Context, boardID types.BoardID, id types.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	board, exists := r.tasks[boardID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	if _, exists := board[id]; !exists {
		return goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	delete(r.tasks[boardID], id)
	return nil
}
