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

type columnDocument struct {
	ID        string    `firestore:"id"`
	BoardID   string    `firestore:"board_id"`
	Title     string    `firestore:"title"`
	Position  int       `firestore:"position"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type columnRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newColumnRepository(client *firestore.Client) *columnRepository {
	return &columnRepository{client: client}
}

func (r *columnRepository) collection(boardID types.BoardID) *firestore.CollectionRef {
	boards := boardsCollection
	if r.collectionPrefix != "" {
		boards = r.collectionPrefix + "_" + boardsCollection
	}
	return r.client.Collection(boards).Doc(string(boardID)).Collection(columnsCollection)
}

func columnToDocument(c *model.Column) *columnDocument {
	return &columnDocument{
		ID:        string(c.ID),
		BoardID:   string(c.BoardID),
		Title:     c.Title,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func columnToModel(doc *columnDocument) *model.Column {
	return &model.Column{
		ID:        types.ColumnID(doc.ID),
		BoardID:   types.BoardID(doc.BoardID),
		Title:     doc.Title,
		Position:  doc.Position,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (r *columnRepository) Create(ctx context.Context, boardID types.BoardID, c *model.Column) (*model.Column, error) {
	now := time.Now().UTC()
	created := *c
	if created.ID == "" {
		created.ID = types.NewColumnID()
	}
	created.BoardID = boardID
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := columnToDocument(&created)
	if _, err := r.collection(boardID).Doc(string(created.ID)).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create column",
			goerr.V("board_id", boardID), goerr.V("id", created.ID))
	}

	return columnToModel(doc), nil
}

func (r *columnRepository) Get(ctx context.Context, boardID types.BoardID, id types.ColumnID) (*model.Column, error) {
	doc, err := r.collection(boardID).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "column not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get column", goerr.V("id", id))
	}

	var data columnDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal column", goerr.V("id", id))
	}

	return columnToModel(&data), nil
}

func (r *columnRepository) List(ctx context.Context, boardID types.BoardID) ([]*model.Column, error) {
	iter := r.collection(boardID).
		OrderBy("position", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	columns := []*model.Column{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate columns", goerr.V("board_id", boardID))
		}

		var data columnDocument
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal column", goerr.V("doc_id", doc.Ref.ID))
		}
		columns = append(columns, columnToModel(&data))
	}

	return columns, nil
}

func (r *columnRepository) Update(ctx context.Context, boardID types.BoardID, c *model.Column) (*model.Column, error) {
	existing, err := r.Get(ctx, boardID, c.ID)
	if err != nil {
		return nil, err
	}

	updated := *c
	updated.BoardID = boardID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	doc := columnToDocument(&updated)
	if _, err := r.collection(boardID).Doc(string(updated.ID)).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update column", goerr.V("id", updated.ID))
	}

	return columnToModel(doc), nil
}

func (r *columnRepository) Delete(ctx context.Context, boardID types.BoardID, id types.ColumnID) error {
	if _, err := r.Get(ctx, boardID, id); err != nil {
		return err
	}

	if _, err := r.collection(boardID).Doc(string(id)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete column", goerr.V("id", id))
	}

	return nil
}
