package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/deckhand-app/deckhand/pkg/domain/interfaces"
	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/deckhand-app/deckhand/pkg/repository/firestore"
	"github.com/deckhand-app/deckhand/pkg/repository/memory"
)

func runTaskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	newBoardWithColumn := func(t *testing.T, repo interfaces.Repository) (types.BoardID, types.ColumnID) {
		t.Helper()
		ctx := context.Background()
		board, err := repo.Board().Create(ctx, &model.Board{
			Title:   "Task test board",
			OwnerID: "user-owner",
		})
		gt.NoError(t, err).Required()
		column, err := repo.Column().Create(ctx, board.ID, &model.Column{
			Title:    "To Do",
			Position: 0,
		})
		gt.NoError(t, err).Required()
		return board.ID, column.ID
	}

	t.Run("Create generates ID and keeps fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		boardID, columnID := newBoardWithColumn(t, repo)

		created, err := repo.Task().Create(ctx, boardID, &model.Task{
			ColumnID:        columnID,
			Title:           "Write release notes",
			Description:     "Cover the new import flow",
			Position:        0,
			AssignedUserIDs: []types.UserID{"user-a", "user-b"},
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(types.TaskID(""))
		gt.Value(t, created.ColumnID).Equal(columnID)
		gt.Value(t, created.Title).Equal("Write release notes")
		gt.Value(t, created.Description).Equal("Cover the new import flow")
		gt.Array(t, created.AssignedUserIDs).Length(2)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("Get returns error for non-existent task", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		boardID, _ := newBoardWithColumn(t, repo)

		_, err := repo.Task().Get(ctx, boardID, "no-such-task")
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("Get through another board fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		boardID, columnID := newBoardWithColumn(t, repo)
		otherBoardID, _ := newBoardWithColumn(t, repo)

		created, err := repo.Task().Create(ctx, boardID, &model.Task{
			ColumnID: columnID,
			Title:    "Scoped",
			Position: 0,
		})
		gt.NoError(t, err).Required()

		_, err = repo.Task().Get(ctx, otherBoardID, created.ID)
		gt.Value(t, err).NotNil()
	})

	t.Run("ListByColumn orders by position and filters by column", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		boardID, columnID := newBoardWithColumn(t, repo)
		otherColumn, err := repo.Column().Create(ctx, boardID, &model.Column{
			Title:    "Done",
			Position: 1,
		})
		gt.NoError(t, err).Required()

		for i, title := range []string{"third", "second", "first"} {
			_, err := repo.Task().Create(ctx, boardID, &model.Task{
				ColumnID: columnID,
				Title:    title,
				Position: 2 - i,
			})
			gt.NoError(t, err).Required()
		}
		_, err = repo.Task().Create(ctx, boardID, &model.Task{
			ColumnID: otherColumn.ID,
			Title:    "elsewhere",
			Position: 0,
		})
		gt.NoError(t, err).Required()

		tasks, err := repo.Task().ListByColumn(ctx, boardID, columnID)
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(3)
		gt.Value(t, tasks[0].Title).Equal("first")
		gt.Value(t, tasks[1].Title).Equal("second")
		gt.Value(t, tasks[2].Title).Equal("third")
	})

	t.Run("ListByColumn returns empty slice for empty column", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		boardID, columnID := newBoardWithColumn(t, repo)

		tasks, err := repo.Task().ListByColumn(ctx, boardID, columnID)
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(0)
	})

	t.Run("Update moves task between columns", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		boardID, columnID := newBoardWithColumn(t, repo)
		target, err := repo.Column().Create(ctx, boardID, &model.Column{
			Title:    "In Progress",
			Position: 1,
		})
		gt.NoError(t, err).Required()

		created, err := repo.Task().Create(ctx, boardID, &model.Task{
			ColumnID: columnID,
			Title:    "Mover",
			Position: 0,
		})
		gt.NoError(t, err).Required()

		created.ColumnID = target.ID
		created.Position = 0
		_, err = repo.Task().Update(ctx, boardID, created)
		gt.NoError(t, err).Required()

		retrieved, err := repo.Task().Get(ctx, boardID, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.ColumnID).Equal(target.ID)

		tasks, err := repo.Task().ListByColumn(ctx, boardID, columnID)
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(0)
	})

	t.Run("Update replaces assignees", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		boardID, columnID := newBoardWithColumn(t, repo)

		created, err := repo.Task().Create(ctx, boardID, &model.Task{
			ColumnID:        columnID,
			Title:           "Assigned",
			Position:        0,
			AssignedUserIDs: []types.UserID{"user-a"},
		})
		gt.NoError(t, err).Required()

		created.AssignedUserIDs = []types.UserID{"user-b", "user-c"}
		_, err = repo.Task().Update(ctx, boardID, created)
		gt.NoError(t, err).Required()

		retrieved, err := repo.Task().Get(ctx, boardID, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, retrieved.AssignedUserIDs).Length(2)
		gt.Value(t, retrieved.AssignedUserIDs[0]).Equal(types.UserID("user-b"))
		gt.Value(t, retrieved.AssignedUserIDs[1]).Equal(types.UserID("user-c"))
	})

	t.Run("Delete removes task", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		boardID, columnID := newBoardWithColumn(t, repo)

		created, err := repo.Task().Create(ctx, boardID, &model.Task{
			ColumnID: columnID,
			Title:    "Doomed",
			Position: 0,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Task().Delete(ctx, boardID, created.ID)).Required()

		_, err = repo.Task().Get(ctx, boardID, created.ID)
		gt.Value(t, err).NotNil()
	})
}

func TestMemoryTaskRepository(t *testing.T) {
	runTaskRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreTaskRepository(t *testing.T) {
	runTaskRepositoryTest(t, newFirestoreRepository)
}
