package usecase

import (
	"context"

	"github.com/deckhand-app/deckhand/pkg/domain/interfaces"
	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/model/auth"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// NoAuthnUseCase provides authentication using a specified user (for development/testing)
type NoAuthnUseCase struct {
	repo  interfaces.Repository
	sub   types.UserID
	email string
	name  string
}

// NewNoAuthnUseCase creates a new NoAuthnUseCase instance with specified user info
func NewNoAuthnUseCase(repo interfaces.Repository, sub types.UserID, email, name string) *NoAuthnUseCase {
	return &NoAuthnUseCase{
		repo:  repo,
		sub:   sub,
		email: email,
		name:  name,
	}
}

// ValidateToken always returns a token for the specified user
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return auth.NewToken(uc.sub, uc.email, uc.name), nil
}

// IssueToken returns a token for the specified user regardless of input. The
// profile is still recorded so boards show a username.
func (uc *NoAuthnUseCase) IssueToken(ctx context.Context, sub types.UserID, email, name string) (*auth.Token, error) {
	if err := uc.repo.Profile().Put(ctx, &model.Profile{
		ID:       uc.sub,
		Username: uc.name,
		Email:    uc.email,
	}); err != nil {
		return nil, err
	}

	return auth.NewToken(uc.sub, uc.email, uc.name), nil
}

// Logout does nothing in no-auth mode
func (uc *NoAuthnUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
