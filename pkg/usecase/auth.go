package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/deckhand-app/deckhand/pkg/domain/interfaces"
	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/model/auth"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// AuthUseCaseInterface abstracts session validation so the HTTP layer can run
// against either the real token store or the no-auth development mode.
type AuthUseCaseInterface interface {
	// ValidateToken checks the token pair against the store and returns the
	// session on success
	ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error)

	// IssueToken creates and stores a session token for the user
	IssueToken(ctx context.Context, sub types.UserID, email, name string) (*auth.Token, error)

	// Logout deletes the token
	Logout(ctx context.Context, tokenID auth.TokenID) error

	// IsNoAuthn reports whether authentication is disabled
	IsNoAuthn() bool
}

type AuthUseCase struct {
	repo  interfaces.Repository
	cache *authCache
}

func NewAuthUseCase(repo interfaces.Repository) *AuthUseCase {
	return &AuthUseCase{
		repo:  repo,
		cache: newAuthCache(),
	}
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

// IssueToken creates a session token for the user and records their profile
// so the assistant can resolve usernames later.
func (uc *AuthUseCase) IssueToken(ctx context.Context, sub types.UserID, email, name string) (*auth.Token, error) {
	token := auth.NewToken(sub, email, name)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to store token", goerr.V(UserIDKey, sub))
	}

	if err := uc.repo.Profile().Put(ctx, &model.Profile{
		ID:       sub,
		Username: name,
		Email:    email,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to store profile", goerr.V(UserIDKey, sub))
	}

	return token, nil
}

// ValidateToken validates the token pair and returns the session
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	if token, ok := uc.cache.get(tokenID); ok {
		if token.Secret != tokenSecret {
			return nil, goerr.Wrap(ErrInvalidToken, "token secret mismatch")
		}
		if token.IsExpired() {
			uc.cache.remove(tokenID)
			return nil, goerr.Wrap(ErrInvalidToken, "token expired")
		}
		return token, nil
	}

	token, err := uc.repo.GetToken(ctx, tokenID)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidToken, "failed to get token from repository")
	}

	if token.Secret != tokenSecret {
		return nil, goerr.Wrap(ErrInvalidToken, "token secret mismatch")
	}

	if token.IsExpired() {
		if err := uc.repo.DeleteToken(ctx, tokenID); err != nil {
			return nil, goerr.Wrap(err, "failed to delete expired token", goerr.V("tokenID", tokenID))
		}
		return nil, goerr.Wrap(ErrInvalidToken, "token expired")
	}

	uc.cache.set(token)

	return token, nil
}

// Logout deletes the token
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	uc.cache.remove(tokenID)

	return uc.repo.DeleteToken(ctx, tokenID)
}
