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

type taskDocument struct {
	ID              string    `firestore:"id"`
	ColumnID        string    `firestore:"column_id"`
	Title           string    `firestore:"title"`
	Description     string    `firestore:"description"`
	Position        int       `firestore:"position"`
	AssignedUserIDs []string  `firestore:"assigned_user_ids"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

type taskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTaskRepository(client *firestore.Client) *taskRepository {
	return &taskRepository{client: client}
}

func (r *taskRepository) collection(boardID types.BoardID) *firestore.CollectionRef {
	boards := boardsCollection
	if r.collectionPrefix != "" {
		boards = r.collectionPrefix + "_" + boardsCollection
	}
	return r.client.Collection(boards).Doc(string(boardID)).Collection(tasksCollection)
}

func taskToDocument(t *model.Task) *taskDocument {
	assigned := make([]string, len(t.AssignedUserIDs))
	for i, id := range t.AssignedUserIDs {
		assigned[i] = string(id)
	}

	return &taskDocument{
		ID:              string(t.ID),
		ColumnID:        string(t.ColumnID),
		Title:           t.Title,
		Description:     t.Description,
		Position:        t.Position,
		AssignedUserIDs: assigned,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func taskToModel(doc *taskDocument) *model.Task {
	assigned := make([]types.UserID, len(doc.AssignedUserIDs))
	for i, id := range doc.AssignedUserIDs {
		assigned[i] = types.UserID(id)
	}

	return &model.Task{
		ID:              types.TaskID(doc.ID),
		ColumnID:        types.ColumnID(doc.ColumnID),
		Title:           doc.Title,
		Description:     doc.Description,
		Position:        doc.Position,
		AssignedUserIDs: assigned,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

func (r *taskRepository) Create(ctx context.Context, boardID types.BoardID, t *model.Task) (*model.Task, error) {
	now := time.Now().UTC()
	created := *t
	if created.ID == "" {
		created.ID = types.NewTaskID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := taskToDocument(&created)
	if _, err := r.collection(boardID).Doc(string(created.ID)).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create task",
			goerr.V("board_id", boardID), goerr.V("id", created.ID))
	}

	return taskToModel(doc), nil
}

func (r *taskRepository) Get(ctx context.Context, boardID types.BoardID, id types.TaskID) (*model.Task, error) {
	doc, err := r.collection(boardID).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	var data taskDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal task", goerr.V("id", id))
	}

	return taskToModel(&data), nil
}

func (r *taskRepository) ListByColumn(ctx context.Context, boardID types.BoardID, columnID types.ColumnID) ([]*model.Task, error) {
	iter := r.collection(boardID).
		Where("column_id", "==", string(columnID)).
		OrderBy("position", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	tasks := []*model.Task{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tasks",
				goerr.V("board_id", boardID), goerr.V("column_id", columnID))
		}

		var data taskDocument
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal task", goerr.V("doc_id", doc.Ref.ID))
		}
		tasks = append(tasks, taskToModel(&data))
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, boardID types.BoardID, t *model.Task) (*model.Task, error) {
	existing, err := r.Get(ctx, boardID, t.ID)
	if err != nil {
		return nil, err
	}

	updated := *t
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	doc := taskToDocument(&updated)
	if _, err := r.collection(boardID).Doc(string(updated.ID)).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("id", updated.ID))
	}

	return taskToModel(doc), nil
}

func (r *taskRepository) Delete(ctx context.Context, boardID types.BoardID, id types.TaskID) error {
	if _, err := r.Get(ctx, boardID, id); err != nil {
		return err
	}

	if _, err := r.collection(boardID).Doc(string(id)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("id", id))
	}

	return nil
}
