package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/deckhand-app/deckhand/pkg/domain/interfaces"
	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/deckhand-app/deckhand/pkg/repository/memory"
	"github.com/deckhand-app/deckhand/pkg/usecase"
)

type fakeCompletion struct {
	response    string
	err         error
	calls       int
	lastSystem  string
	lastMessage string
}

func (f *fakeCompletion) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastMessage = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

var _ interfaces.CompletionService = &fakeCompletion{}

type chatEnv struct {
	repo    interfaces.Repository
	uc      *usecase.UseCases
	fake    *fakeCompletion
	board   *model.Board
	columns []*model.Column
}

const chatOwnerID = types.UserID("user-owner")

func setupChatEnv(t *testing.T) *chatEnv {
	t.Helper()
	ctx := context.Background()

	repo := memory.New()
	fake := &fakeCompletion{}
	uc := usecase.New(repo, usecase.WithCompletion(fake))

	board, err := uc.Board.CreateBoard(ctx, chatOwnerID, "Release planning")
	gt.NoError(t, err).Required()

	columns, err := repo.Column().List(ctx, board.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, columns).Length(3)

	return &chatEnv{
		repo:    repo,
		uc:      uc,
		fake:    fake,
		board:   board,
		columns: columns,
	}
}

func replyJSON(message string, actions ...string) string {
	return fmt.Sprintf(`{"message": %q, "actions": [%s]}`, message, strings.Join(actions, ","))
}

func TestChat(t *testing.T) {
	t.Run("fails without completion service", func(t *testing.T) {
		ctx := context.Background()
		repo := memory.New()
		uc := usecase.New(repo)

		board, err := uc.Board.CreateBoard(ctx, chatOwnerID, "No assistant")
		gt.NoError(t, err).Required()

		_, err = uc.Chat.Chat(ctx, usecase.ChatInput{
			BoardID: board.ID,
			UserID:  chatOwnerID,
			Message: "hello",
		})
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, usecase.ErrCompletionFailure)).True()
	})

	t.Run("rejects empty message", func(t *testing.T) {
		env := setupChatEnv(t)
		ctx := context.Background()

		_, err := env.uc.Chat.Chat(ctx, usecase.ChatInput{
			BoardID: env.board.ID,
			UserID:  chatOwnerID,
		})
		gt.Value(t, err).NotNil()
		gt.Number(t, env.fake.calls).Equal(0)
	})

	t.Run("unknown board aborts before completion", func(t *testing.T) {
		env := setupChatEnv(t)
		ctx := context.Background()

		_, err := env.uc.Chat.Chat(ctx, usecase.ChatInput{
			BoardID: "no-such-board",
			UserID:  chatOwnerID,
			Message: "hello",
		})
		gt.Bool(t, errors.Is(err, usecase.ErrBoardNotFound)).True()
		gt.Number(t, env.fake.calls).Equal(0)
	})

	t.Run("non-member aborts before completion", func(t *testing.T) {
		env := setupChatEnv(t)
		ctx := context.Background()

		_, err := env.uc.Chat.Chat(ctx, usecase.ChatInput{
			BoardID: env.board.ID,
			UserID:  "user-stranger",
			Message: "hello",
		})
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()
		gt.Number(t, env.fake.calls).Equal(0)

		messages, err := env.repo.Message().List(ctx, env.board.ID, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, messages).Length(0)
	})

	t.Run("completion error keeps the user message", func(t *testing.T) {
		env := setupChatEnv(t)
		ctx := context.Background()
		env.fake.err = errors.New("model unavailable")

		_, err := env.uc.Chat.Chat(ctx, usecase.ChatInput{
			BoardID: env.board.ID,
			UserID:  chatOwnerID,
			Message: "add a task",
		})
		gt.Bool(t, errors.Is(err, usecase.ErrCompletionFailure)).True()

		messages, err := env.repo.Message().List(ctx, env.board.ID, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, messages).Length(1)
		gt.Value(t, messages[0].Role).Equal(types.MessageRoleUser)
		gt.Value(t, messages[0].Content).Equal("add a task")
	})

	t.Run("malformed output executes nothing", func(t *testing.T) {
		env := setupChatEnv(t)
		ctx := context.Background()
		env.fake.response = "Sure, I created the task for you!"

		_, err := env.uc.Chat.Chat(ctx, usecase.ChatInput{
			BoardID: env.board.ID,
			UserID:  chatOwnerID,
			Message: "add a task",
		})
		gt.Bool(t, errors.Is(err, model.ErrMalformedOutput)).True()

		tasks, err := env.repo.Task().ListByColumn(ctx, env.board.ID, env.columns[0].ID)
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(0)
	})

	t.Run("one invalid action rejects the reply with no execution", func(t *testing.T) {
		env := setupChatEnv(t)
		ctx := context.Background()
		env.fake.response = replyJSON("Two tasks coming up.",
			fmt.Sprintf(`{"type": "create_task", "payload": {"columnId": %q, "title": "Valid"}}`, env.columns[0].ID),
			fmt.Sprintf(`{"type": "create_task", "payload": {"columnId": %q}}`, env.columns[0].ID),
		)

		_, err := env.uc.Chat.Chat(ctx, usecase.ChatInput{
			BoardID: env.board.ID,
			UserID:  chatOwnerID,
			Message: "add two tasks",
		})
		gt.Bool(t, errors.Is(err, model.ErrSchemaViolation)).True()

		tasks, err := env.repo.Task().ListByColumn(ctx, env.board.ID, env.columns[0].ID)
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(0)
	})

	t.Run("successful request records both sides of the conversation", func(t *testing.T) {
		env := setupChatEnv(t)
		ctx := context.Background()
		env.fake.response = replyJSON("Created the task.",
			fmt.Sprintf(`{"type": "create_task", "payload": {"columnId": %q, "title": "Ship it"}}`, env.columns[0].ID),
		)

		output, err := env.uc.Chat.Chat(ctx, usecase.ChatInput{
			BoardID: env.board.ID,
			UserID:  chatOwnerID,
			Message: "add a task to ship",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, output.Message).Equal("Created the task.")
		gt.Array(t, output.Actions).Length(1)
		gt.Array(t, output.ActionResults).Length(1)
		gt.Bool(t, output.ActionResults[0].Success).True()
		gt.Value(t, output.SavedMessage).NotNil()
		gt.Value(t, output.SavedMessage.Role).Equal(types.MessageRoleAssistant)

		tasks, err := env.repo.Task().ListByColumn(ctx, env.board.ID, env.columns[0].ID)
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(1)
		gt.Value(t, tasks[0].Title).Equal("Ship it")
		gt.Number(t, tasks[0].Position).Equal(0)

		messages, err := env.repo.Message().List(ctx, env.board.ID, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, messages).Length(2)
		gt.Value(t, messages[0].Role).Equal(types.MessageRoleAssistant)
		gt.Array(t, messages[0].Actions).Length(1)
		gt.Array(t, messages[0].ActionResults).Length(1)
		gt.Value(t, messages[1].Role).Equal(types.MessageRoleUser)
		gt.Value(t, messages[1].UserID).Equal(chatOwnerID)
	})

	t.Run("member can chat after being added", func(t *testing.T) {
		env := setupChatEnv(t)
		ctx := context.Background()
		env.fake.response = replyJSON("Hi.")

		memberID := types.UserID("user-member")
		gt.NoError(t, env.uc.Board.AddMember(ctx, env.board.ID, chatOwnerID, memberID)).Required()

		output, err := env.uc.Chat.Chat(ctx, usecase.ChatInput{
			BoardID: env.board.ID,
			UserID:  memberID,
			Message: "hello",
		})
		gt.NoError(t, err).Required()
		gt.Array(t, output.Actions).Length(0)
	})

	t.Run("system prompt carries board state and current user", func(t *testing.T) {
		env := setupChatEnv(t)
		ctx := context.Background()
		env.fake.response = replyJSON("Noted.")

		gt.NoError(t, env.repo.Profile().Put(ctx, &model.Profile{
			ID:       chatOwnerID,
			Username: "alice",
			Email:    "alice@example.com",
		})).Required()

		_, err := env.uc.Chat.Chat(ctx, usecase.ChatInput{
			BoardID: env.board.ID,
			UserID:  chatOwnerID,
			Message: "what can you do?",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, env.fake.lastMessage).Equal("what can you do?")
		gt.Bool(t, strings.Contains(env.fake.lastSystem, env.board.ID.String())).True()
		gt.Bool(t, strings.Contains(env.fake.lastSystem, env.columns[0].ID.String())).True()
		gt.Bool(t, strings.Contains(env.fake.lastSystem, "alice")).True()
		gt.Bool(t, strings.Contains(env.fake.lastSystem, chatOwnerID.String())).True()
	})
}
