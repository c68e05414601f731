package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/deckhand-app/deckhand/pkg/domain/model/auth"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type tokenDocument struct {
	ID        string    `firestore:"id"`
	Secret    string    `firestore:"secret"`
	Sub       string    `firestore:"sub"`
	Email     string    `firestore:"email"`
	Name      string    `firestore:"name"`
	ExpiresAt time.Time `firestore:"expires_at"`
	CreatedAt time.Time `firestore:"created_at"`
}

type tokenRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTokenRepository(client *firestore.Client) *tokenRepository {
	return &tokenRepository{client: client}
}

func (r *tokenRepository) collection() *firestore.CollectionRef {
	name := tokensCollection
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_" + tokensCollection
	}
	return r.client.Collection(name)
}

func (r *tokenRepository) put(ctx context.Context, token *auth.Token) error {
	doc := &tokenDocument{
		ID:        string(token.ID),
		Secret:    string(token.Secret),
		Sub:       string(token.Sub),
		Email:     token.Email,
		Name:      token.Name,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}

	if _, err := r.collection().Doc(string(token.ID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put token", goerr.V("token_id", token.ID))
	}

	return nil
}

func (r *tokenRepository) get(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	doc, err := r.collection().Doc(string(tokenID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "token not found", goerr.V("token_id", tokenID))
		}
		return nil, goerr.Wrap(err, "failed to get token", goerr.V("token_id", tokenID))
	}

	var data tokenDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal token", goerr.V("token_id", tokenID))
	}

	return &auth.Token{
		ID:        auth.TokenID(data.ID),
		Secret:    auth.TokenSecret(data.Secret),
		Sub:       types.UserID(data.Sub),
		Email:     data.Email,
		Name:      data.Name,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}, nil
}

func (r *tokenRepository) delete(ctx context.Context, tokenID auth.TokenID) error {
	if _, err := r.collection().Doc(string(tokenID)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete token", goerr.V("token_id", tokenID))
	}

	return nil
}

func (f *Firestore) PutToken(ctx context.Context, token *auth.Token) error {
	return f.tokens.put(ctx, token)
}

func (f *Firestore) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	return f.tokens.get(ctx, tokenID)
}

func (f *Firestore) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	return f.tokens.delete(ctx, tokenID)
}
