package memory

import (
	"context"
	"sync"

	"github.com/deckhand-app/deckhand/pkg/domain/model/auth"
)

type tokenStore struct {
	mu     sync.RWMutex
	tokens map[auth.TokenID]*auth.Token
}

func newTokenStore() *tokenStore {
	return &tokenStore{
		tokens: make(map[auth.TokenID]*auth.Token),
	}
}

func (m *Memory) PutToken(ctx context.Context, token *auth.Token) error {
	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	copied := *token
	m.tokens.tokens[token.ID] = &copied
	return nil
}

func (m *Memory) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	m.tokens.mu.RLock()
	defer m.tokens.mu.RUnlock()

	token, exists := m.tokens.tokens[tokenID]
	if !exists {
		return nil, ErrNotFound
	}

	copied := *token
	return &copied, nil
}

func (m *Memory) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	if _, exists := m.tokens.tokens[tokenID]; !exists {
		return ErrNotFound
	}

	delete(m.tokens.tokens, tokenID)
	return nil
}
