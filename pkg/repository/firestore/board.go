package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found")

type boardDocument struct {
	ID         string    `firestore:"id"`
	Title      string    `firestore:"title"`
	OwnerID    string    `firestore:"owner_id"`
	InviteCode string    `firestore:"invite_code"`
	CreatedAt  time.Time `firestore:"created_at"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

type boardRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newBoardRepository(client *firestore.Client) *boardRepository {
	return &boardRepository{client: client}
}

func (r *boardRepository) boardsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_" + boardsCollection
	}
	return boardsCollection
}

func boardToDocument(b *model.Board) *boardDocument {
	return &boardDocument{
		ID:         string(b.ID),
		Title:      b.Title,
		OwnerID:    string(b.OwnerID),
		InviteCode: b.InviteCode,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func boardToModel(doc *boardDocument) *model.Board {
	return &model.Board{
		ID:         types.BoardID(doc.ID),
		Title:      doc.Title,
		OwnerID:    types.UserID(doc.OwnerID),
		InviteCode: doc.InviteCode,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func (r *boardRepository) Create(ctx context.Context, b *model.Board) (*model.Board, error) {
	now := time.Now().UTC()
	created := *b
	if created.ID == "" {
		created.ID = types.NewBoardID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := boardToDocument(&created)
	docRef := r.client.Collection(r.boardsCollection()).Doc(string(created.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create board", goerr.V("id", created.ID))
	}

	return boardToModel(doc), nil
}

func (r *boardRepository) Get(ctx context.Context, id types.BoardID) (*model.Board, error) {
	docRef := r.client.Collection(r.boardsCollection()).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "board not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get board", goerr.V("id", id))
	}

	var data boardDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal board", goerr.V("id", id))
	}

	return boardToModel(&data), nil
}

func (r *boardRepository) ListByOwner(ctx context.Context, ownerID types.UserID) ([]*model.Board, error) {
	iter := r.client.Collection(r.boardsCollection()).
		Where("owner_id", "==", string(ownerID)).
		Documents(ctx)
	defer iter.Stop()

	boards := []*model.Board{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate boards", goerr.V("owner_id", ownerID))
		}

		var data boardDocument
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal board", goerr.V("doc_id", doc.Ref.ID))
		}
		boards = append(boards, boardToModel(&data))
	}

	return boards, nil
}

func (r *boardRepository) Update(ctx context.Context, b *model.Board) (*model.Board, error) {
	existing, err := r.Get(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	updated := *b
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	doc := boardToDocument(&updated)
	docRef := r.client.Collection(r.boardsCollection()).Doc(string(updated.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update board", goerr.V("id", updated.ID))
	}

	return boardToModel(doc), nil
}

func (r *boardRepository) Delete(ctx context.Context, id types.BoardID) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	docRef := r.client.Collection(r.boardsCollection()).Doc(string(id))
	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete board", goerr.V("id", id))
	}

	return nil
}
