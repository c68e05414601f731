package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/model/auth"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/deckhand-app/deckhand/pkg/usecase"
	"github.com/deckhand-app/deckhand/pkg/utils/errutil"
)

type chatRequest struct {
	Message string `json:"message"`
	BoardID string `json:"boardId"`
}

type chatResponse struct {
	Success       bool                 `json:"success"`
	Message       string               `json:"message"`
	Actions       []model.Action       `json:"actions"`
	ActionResults []model.ActionResult `json:"actionResults"`
	SavedMessage  *model.Message       `json:"savedMessage"`
}

// chatHandler exposes the assistant pipeline. The status contract is fixed:
// 401 unauthenticated, 400 bad input, 404 unknown board, 403 no access,
// 500 for completion or validation failures. Action execution failures are
// reported inside a 200 response.
func chatHandler(chatUC *usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromContext(r.Context())
		if token == nil {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" || req.BoardID == "" {
			writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "Missing message or boardId"})
			return
		}

		output, err := chatUC.Chat(r.Context(), usecase.ChatInput{
			BoardID: types.BoardID(req.BoardID),
			UserID:  token.Sub,
			Message: req.Message,
		})
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrBoardNotFound):
				writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "Board not found"})
			case errors.Is(err, usecase.ErrAccessDenied):
				writeJSON(r.Context(), w, http.StatusForbidden, errorResponse{Error: "Access denied to this board"})
			default:
				errutil.Handle(r.Context(), err, "chat request failed")
				writeJSON(r.Context(), w, http.StatusInternalServerError, errorResponse{
					Error:   "Internal server error",
					Details: err.Error(),
				})
			}
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, chatResponse{
			Success:       true,
			Message:       output.Message,
			Actions:       output.Actions,
			ActionResults: output.ActionResults,
			SavedMessage:  output.SavedMessage,
		})
	}
}
