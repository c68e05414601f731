package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileDocument struct {
	ID        string    `firestore:"id"`
	Username  string    `firestore:"username"`
	Email     string    `firestore:"email"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) collection() *firestore.CollectionRef {
	name := profilesCollection
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_" + profilesCollection
	}
	return r.client.Collection(name)
}

func profileToDocument(p *model.Profile) *profileDocument {
	return &profileDocument{
		ID:        string(p.ID),
		Username:  p.Username,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func profileToModel(doc *profileDocument) *model.Profile {
	return &model.Profile{
		ID:        types.UserID(doc.ID),
		Username:  doc.Username,
		Email:     doc.Email,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (r *profileRepository) Put(ctx context.Context, p *model.Profile) error {
	now := time.Now().UTC()
	saved := *p
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now

	if existing, err := r.Get(ctx, saved.ID); err == nil {
		saved.CreatedAt = existing.CreatedAt
	}

	if _, err := r.collection().Doc(string(saved.ID)).Set(ctx, profileToDocument(&saved)); err != nil {
		return goerr.Wrap(err, "failed to put profile", goerr.V("id", saved.ID))
	}

	return nil
}

func (r *profileRepository) Get(ctx context.Context, id types.UserID) (*model.Profile, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}

	var data profileDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("id", id))
	}

	return profileToModel(&data), nil
}

func (r *profileRepository) GetMany(ctx context.Context, ids []types.UserID) ([]*model.Profile, error) {
	profiles := []*model.Profile{}
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}
