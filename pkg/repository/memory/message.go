package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

type messageRepository struct {
	mu       sync.RWMutex
	messages map[types.BoardID][]*model.Message
}

func newMessageRepository() *messageRepository {
	return &messageRepository{
		messages: make(map[types.BoardID][]*model.Message),
	}
}

func copyMessage(m *model.Message) *model.Message {
	copied := *m
	copied.Actions = make([]model.Action, len(m.Actions))
	copy(copied.Actions, m.Actions)
	copied.ActionResults = make([]model.ActionResult, len(m.ActionResults))
	copy(copied.ActionResults, m.ActionResults)
	return &copied
}

func (r *messageRepository) Create(ctx context.Context, boardID types.BoardID, m *model.Message) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyMessage(m)
	if created.ID == "" {
		created.ID = types.NewMessageID()
	}
	created.BoardID = boardID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.messages[boardID] = append(r.messages[boardID], created)
	return copyMessage(created), nil
}

func (r *messageRepository) List(ctx context.Context, boardID types.BoardID, limit int) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.messages[boardID]
	messages := make([]*model.Message, 0, len(all))
	for _, m := range all {
		messages = append(messages, copyMessage(m))
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})

	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}

	return messages, nil
}
