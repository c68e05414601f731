package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

type memberRepository struct {
	mu      sync.RWMutex
	members map[types.BoardID]map[types.UserID]struct{}
}

func newMemberRepository() *memberRepository {
	return &memberRepository{
		members: make(map[types.BoardID]map[types.UserID]struct{}),
	}
}

func (r *memberRepository) Add(ctx context.Context, boardID types.BoardID, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[boardID]; !exists {
		r.members[boardID] = make(map[types.UserID]struct{})
	}
	r.members[boardID][userID] = struct{}{}
	return nil
}

func (r *memberRepository) Remove(ctx context.Context, boardID types.BoardID, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if board, exists := r.members[boardID]; exists {
		delete(board, userID)
	}
	return nil
}

func (r *memberRepository) Exists(ctx context.Context, boardID types.BoardID, userID types.UserID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	board, exists := r.members[boardID]
	if !exists {
		return false, nil
	}
	_, ok := board[userID]
	return ok, nil
}

func (r *memberRepository) List(ctx context.Context, boardID types.BoardID) ([]types.UserID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	board, exists := r.members[boardID]
	if !exists {
		return []types.UserID{}, nil
	}

	users := make([]types.UserID, 0, len(board))
	for id := range board {
		users = append(users, id)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })

	return users, nil
}

func (r *memberRepository) ListBoards(ctx context.Context, userID types.UserID) ([]types.BoardID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	boards := []types.BoardID{}
	for boardID, users := range r.members {
		if _, ok := users[userID]; ok {
			boards = append(boards, boardID)
		}
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i] < boards[j] })

	return boards, nil
}
