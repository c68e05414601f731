package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/model/config"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/deckhand-app/deckhand/pkg/repository/memory"
	"github.com/deckhand-app/deckhand/pkg/usecase"
)

func TestCreateBoard(t *testing.T) {
	t.Run("seeds the configured default columns in order", func(t *testing.T) {
		ctx := context.Background()
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithBoardConfig(&config.BoardConfig{
			DefaultColumns:      []string{"Backlog", "Doing", "Shipped"},
			MessageHistoryLimit: 50,
		}))

		board, err := uc.Board.CreateBoard(ctx, "user-owner", "Custom board")
		gt.NoError(t, err).Required()

		columns, err := repo.Column().List(ctx, board.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, columns).Length(3)
		gt.Value(t, columns[0].Title).Equal("Backlog")
		gt.Value(t, columns[1].Title).Equal("Doing")
		gt.Value(t, columns[2].Title).Equal("Shipped")
		for i, col := range columns {
			gt.Number(t, col.Position).Equal(i)
		}
	})

	t.Run("uses the standard columns without config", func(t *testing.T) {
		ctx := context.Background()
		repo := memory.New()
		uc := usecase.New(repo)

		board, err := uc.Board.CreateBoard(ctx, "user-owner", "Plain board")
		gt.NoError(t, err).Required()

		columns, err := repo.Column().List(ctx, board.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, columns).Length(3)
		gt.Value(t, columns[0].Title).Equal("To Do")
		gt.Value(t, columns[1].Title).Equal("In Progress")
		gt.Value(t, columns[2].Title).Equal("Done")
	})

	t.Run("rejects empty title", func(t *testing.T) {
		ctx := context.Background()
		uc := usecase.New(memory.New())

		_, err := uc.Board.CreateBoard(ctx, "user-owner", "")
		gt.Value(t, err).NotNil()
	})
}

func TestGetBoardForUser(t *testing.T) {
	t.Run("owner always has access", func(t *testing.T) {
		ctx := context.Background()
		uc := usecase.New(memory.New())

		board, err := uc.Board.CreateBoard(ctx, "user-owner", "Mine")
		gt.NoError(t, err).Required()

		retrieved, err := uc.Board.GetBoardForUser(ctx, board.ID, "user-owner")
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.ID).Equal(board.ID)
	})

	t.Run("missing board and forbidden board are distinct", func(t *testing.T) {
		ctx := context.Background()
		uc := usecase.New(memory.New())

		board, err := uc.Board.CreateBoard(ctx, "user-owner", "Private")
		gt.NoError(t, err).Required()

		_, err = uc.Board.GetBoardForUser(ctx, "no-such-board", "user-owner")
		gt.Bool(t, errors.Is(err, usecase.ErrBoardNotFound)).True()

		_, err = uc.Board.GetBoardForUser(ctx, board.ID, "user-stranger")
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()
		gt.Bool(t, errors.Is(err, usecase.ErrBoardNotFound)).False()
	})

	t.Run("explicit member has access", func(t *testing.T) {
		ctx := context.Background()
		uc := usecase.New(memory.New())

		board, err := uc.Board.CreateBoard(ctx, "user-owner", "Shared")
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.Board.AddMember(ctx, board.ID, "user-owner", "user-member")).Required()

		retrieved, err := uc.Board.GetBoardForUser(ctx, board.ID, "user-member")
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.ID).Equal(board.ID)
	})
}

func TestListBoards(t *testing.T) {
	t.Run("combines owned and joined boards without duplicates", func(t *testing.T) {
		ctx := context.Background()
		uc := usecase.New(memory.New())

		mine, err := uc.Board.CreateBoard(ctx, "user-alice", "Mine")
		gt.NoError(t, err).Required()
		joined, err := uc.Board.CreateBoard(ctx, "user-bob", "Bob's")
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.Board.AddMember(ctx, joined.ID, "user-bob", "user-alice")).Required()
		_, err = uc.Board.CreateBoard(ctx, "user-bob", "Bob's other")
		gt.NoError(t, err).Required()

		boards, err := uc.Board.ListBoards(ctx, "user-alice")
		gt.NoError(t, err).Required()
		gt.Array(t, boards).Length(2)

		ids := map[types.BoardID]bool{}
		for _, b := range boards {
			ids[b.ID] = true
		}
		gt.Bool(t, ids[mine.ID]).True()
		gt.Bool(t, ids[joined.ID]).True()
	})

	t.Run("empty result for an unknown user", func(t *testing.T) {
		ctx := context.Background()
		uc := usecase.New(memory.New())

		boards, err := uc.Board.ListBoards(ctx, "user-nobody")
		gt.NoError(t, err).Required()
		gt.Array(t, boards).Length(0)
	})
}

func TestGetBoardTree(t *testing.T) {
	t.Run("returns ordered columns with tasks and the roster", func(t *testing.T) {
		ctx := context.Background()
		repo := memory.New()
		uc := usecase.New(repo)

		gt.NoError(t, repo.Profile().Put(ctx, &model.Profile{
			ID: "user-owner", Username: "alice", Email: "alice@example.com",
		})).Required()
		gt.NoError(t, repo.Profile().Put(ctx, &model.Profile{
			ID: "user-member", Username: "bob", Email: "bob@example.com",
		})).Required()

		board, err := uc.Board.CreateBoard(ctx, "user-owner", "Tree board")
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.Board.AddMember(ctx, board.ID, "user-owner", "user-member")).Required()

		columns, err := repo.Column().List(ctx, board.ID)
		gt.NoError(t, err).Required()
		for i := 0; i < 2; i++ {
			_, err := repo.Task().Create(ctx, board.ID, &model.Task{
				ColumnID: columns[0].ID,
				Title:    fmt.Sprintf("task %d", i),
				Position: i,
			})
			gt.NoError(t, err).Required()
		}

		tree, err := uc.Board.GetBoardTree(ctx, board.ID, "user-member")
		gt.NoError(t, err).Required()

		gt.Value(t, tree.Board.ID).Equal(board.ID)
		gt.Array(t, tree.Columns).Length(3)
		gt.Array(t, tree.Columns[0].Tasks).Length(2)
		gt.Value(t, tree.Columns[0].Tasks[0].Title).Equal("task 0")
		gt.Array(t, tree.Columns[1].Tasks).Length(0)

		gt.Array(t, tree.Members).Length(2)
		gt.Value(t, tree.Members[0].Username).Equal("alice")
		gt.Value(t, tree.Members[1].Username).Equal("bob")
	})
}

func TestListMessages(t *testing.T) {
	t.Run("caps the limit at the configured maximum", func(t *testing.T) {
		ctx := context.Background()
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithBoardConfig(&config.BoardConfig{
			DefaultColumns:      []string{"To Do"},
			MessageHistoryLimit: 3,
		}))

		board, err := uc.Board.CreateBoard(ctx, "user-owner", "Chatty board")
		gt.NoError(t, err).Required()

		base := time.Now().UTC().Add(-time.Hour)
		for i := 0; i < 5; i++ {
			_, err := repo.Message().Create(ctx, board.ID, &model.Message{
				Role:      types.MessageRoleUser,
				Content:   fmt.Sprintf("message %d", i),
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
			gt.NoError(t, err).Required()
		}

		messages, err := uc.Board.ListMessages(ctx, board.ID, "user-owner", 100)
		gt.NoError(t, err).Required()
		gt.Array(t, messages).Length(3)
		gt.Value(t, messages[0].Content).Equal("message 4")

		messages, err = uc.Board.ListMessages(ctx, board.ID, "user-owner", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, messages).Length(3)

		messages, err = uc.Board.ListMessages(ctx, board.ID, "user-owner", 2)
		gt.NoError(t, err).Required()
		gt.Array(t, messages).Length(2)
	})

	t.Run("requires board access", func(t *testing.T) {
		ctx := context.Background()
		uc := usecase.New(memory.New())

		board, err := uc.Board.CreateBoard(ctx, "user-owner", "Private")
		gt.NoError(t, err).Required()

		_, err = uc.Board.ListMessages(ctx, board.ID, "user-stranger", 10)
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()
	})
}

func TestAddMember(t *testing.T) {
	t.Run("only the owner can add members", func(t *testing.T) {
		ctx := context.Background()
		uc := usecase.New(memory.New())

		board, err := uc.Board.CreateBoard(ctx, "user-owner", "Guarded")
		gt.NoError(t, err).Required()

		err = uc.Board.AddMember(ctx, board.ID, "user-stranger", "user-friend")
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()

		gt.NoError(t, uc.Board.AddMember(ctx, board.ID, "user-owner", "user-friend")).Required()
	})

	t.Run("unknown board fails", func(t *testing.T) {
		ctx := context.Background()
		uc := usecase.New(memory.New())

		err := uc.Board.AddMember(ctx, "no-such-board", "user-owner", "user-friend")
		gt.Bool(t, errors.Is(err, usecase.ErrBoardNotFound)).True()
	})
}
