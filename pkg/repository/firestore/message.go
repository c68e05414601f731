package firestore

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

// Actions and results are stored as JSON blobs so the document schema does
// not have to track every payload shape.
type messageDocument struct {
	ID            string    `firestore:"id"`
	BoardID       string    `firestore:"board_id"`
	UserID        string    `firestore:"user_id"`
	Role          string    `firestore:"role"`
	Content       string    `firestore:"content"`
	Actions       string    `firestore:"actions"`
	ActionResults string    `firestore:"action_results"`
	CreatedAt     time.Time `firestore:"created_at"`
}

type messageRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMessageRepository(client *firestore.Client) *messageRepository {
	return &messageRepository{client: client}
}

func (r *messageRepository) collection(boardID types.BoardID) *firestore.CollectionRef {
	boards := boardsCollection
	if r.collectionPrefix != "" {
		boards = r.collectionPrefix + "_" + boardsCollection
	}
	return r.client.Collection(boards).Doc(string(boardID)).Collection(messagesCollection)
}

func messageToDocument(m *model.Message) (*messageDocument, error) {
	doc := &messageDocument{
		ID:        string(m.ID),
		BoardID:   string(m.BoardID),
		UserID:    string(m.UserID),
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}

	if len(m.Actions) > 0 {
		raw, err := json.Marshal(m.Actions)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to marshal actions", goerr.V("message_id", m.ID))
		}
		doc.Actions = string(raw)
	}
	if len(m.ActionResults) > 0 {
		raw, err := json.Marshal(m.ActionResults)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to marshal action results", goerr.V("message_id", m.ID))
		}
		doc.ActionResults = string(raw)
	}

	return doc, nil
}

func messageToModel(doc *messageDocument) (*model.Message, error) {
	m := &model.Message{
		ID:        types.MessageID(doc.ID),
		BoardID:   types.BoardID(doc.BoardID),
		UserID:    types.UserID(doc.UserID),
		Role:      types.MessageRole(doc.Role),
		Content:   doc.Content,
		CreatedAt: doc.CreatedAt,
	}

	if doc.Actions != "" {
		if err := json.Unmarshal([]byte(doc.Actions), &m.Actions); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal actions", goerr.V("message_id", doc.ID))
		}
	}
	if doc.ActionResults != "" {
		if err := json.Unmarshal([]byte(doc.ActionResults), &m.ActionResults); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal action results", goerr.V("message_id", doc.ID))
		}
	}

	return m, nil
}

func (r *messageRepository) Create(ctx context.Context, boardID types.BoardID, m *model.Message) (*model.Message, error) {
	created := *m
	if created.ID == "" {
		created.ID = types.NewMessageID()
	}
	created.BoardID = boardID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	doc, err := messageToDocument(&created)
	if err != nil {
		return nil, err
	}

	if _, err := r.collection(boardID).Doc(string(created.ID)).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create message",
			goerr.V("board_id", boardID), goerr.V("id", created.ID))
	}

	return messageToModel(doc)
}

func (r *messageRepository) List(ctx context.Context, boardID types.BoardID, limit int) ([]*model.Message, error) {
	query := r.collection(boardID).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	messages := []*model.Message{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate messages", goerr.V("board_id", boardID))
		}

		var data messageDocument
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal message", goerr.V("doc_id", doc.Ref.ID))
		}

		m, err := messageToModel(&data)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}
