package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/deckhand-app/deckhand/pkg/domain/interfaces"
	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/model/config"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/deckhand-app/deckhand/pkg/utils/logging"
)

// ChatUseCase drives one assistant request end to end: access gate, context
// assembly, completion, validation, execution and the conversation record.
type ChatUseCase struct {
	repo       interfaces.Repository
	completion interfaces.CompletionService
	board      *BoardUseCase
	cfg        *config.BoardConfig
}

func NewChatUseCase(repo interfaces.Repository, completion interfaces.CompletionService, board *BoardUseCase, cfg *config.BoardConfig) *ChatUseCase {
	return &ChatUseCase{
		repo:       repo,
		completion: completion,
		board:      board,
		cfg:        cfg,
	}
}

// ChatInput is one user request to the assistant
type ChatInput struct {
	BoardID types.BoardID
	UserID  types.UserID
	Message string
}

// ChatOutput is the computed response. SavedMessage is nil when the
// conversation record write failed; the rest of the output is still valid.
type ChatOutput struct {
	Message       string               `json:"message"`
	Actions       []model.Action       `json:"actions"`
	ActionResults []model.ActionResult `json:"actionResults"`
	SavedMessage  *model.Message       `json:"savedMessage"`
}

// Chat processes one assistant request. Board access failures and
// completion/validation failures abort the request; action execution
// failures and conversation write failures do not.
func (uc *ChatUseCase) Chat(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	if uc.completion == nil {
		return nil, goerr.Wrap(ErrCompletionFailure, "no completion service configured")
	}
	if input.Message == "" {
		return nil, goerr.New("message is required")
	}

	tree, err := uc.board.GetBoardTree(ctx, input.BoardID, input.UserID)
	if err != nil {
		return nil, err
	}

	// The user's message is recorded before the completion so the history
	// keeps it even when the assistant fails.
	if _, err := uc.repo.Message().Create(ctx, input.BoardID, &model.Message{
		UserID:  input.UserID,
		Role:    types.MessageRoleUser,
		Content: input.Message,
	}); err != nil {
		logging.From(ctx).Error("failed to save user message",
			"board_id", input.BoardID, "error", err)
	}

	systemPrompt, err := uc.buildChatSystemPrompt(ctx, tree, input.UserID)
	if err != nil {
		return nil, err
	}

	raw, err := uc.completion.Complete(ctx, systemPrompt, input.Message)
	if err != nil {
		return nil, goerr.Wrap(ErrCompletionFailure, "completion request failed",
			goerr.V(BoardIDKey, input.BoardID))
	}

	reply, err := model.ParseReply(raw)
	if err != nil {
		return nil, err
	}

	results := uc.executeActions(ctx, input.BoardID, reply.Actions)

	output := &ChatOutput{
		Message:       reply.Message,
		Actions:       reply.Actions,
		ActionResults: results,
	}

	saved, err := uc.repo.Message().Create(ctx, input.BoardID, &model.Message{
		Role:          types.MessageRoleAssistant,
		Content:       reply.Message,
		Actions:       reply.Actions,
		ActionResults: results,
	})
	if err != nil {
		// The computed response still goes back to the user
		logging.From(ctx).Error("failed to save assistant message",
			"board_id", input.BoardID, "error", err)
	} else {
		output.SavedMessage = saved
	}

	return output, nil
}
