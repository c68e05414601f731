package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/google/uuid"
)

// TokenID identifies a session token
type TokenID string

// TokenSecret is the secret half of a session token pair
type TokenSecret string

// TokenLifetime is how long a session token stays valid
const TokenLifetime = 7 * 24 * time.Hour

// Token represents an authenticated session. The secret is an opaque random
// value compared on every request; it never appears in logs.
type Token struct {
	ID        TokenID
	Secret    TokenSecret `masq:"secret"`
	Sub       types.UserID
	Email     string
	Name      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewToken creates a session token for the given user
func NewToken(sub types.UserID, email, name string) *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        TokenID(uuid.Must(uuid.NewV7()).String()),
		Secret:    TokenSecret(newSecret()),
		Sub:       sub,
		Email:     email,
		Name:      name,
		ExpiresAt: now.Add(TokenLifetime),
		CreatedAt: now,
	}
}

// IsExpired reports whether the token is past its expiry
func (t *Token) IsExpired() bool {
	return time.Now().UTC().After(t.ExpiresAt)
}

func newSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
