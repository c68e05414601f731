package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	"github.com/deckhand-app/deckhand/pkg/domain/model/auth"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/deckhand-app/deckhand/pkg/usecase"
	"github.com/deckhand-app/deckhand/pkg/utils/errutil"
)

type createBoardRequest struct {
	Title string `json:"title"`
}

type addMemberRequest struct {
	UserID string `json:"userId"`
}

type boardListResponse struct {
	Boards []*model.Board `json:"boards"`
}

type messageListResponse struct {
	Messages []*model.Message `json:"messages"`
}

// writeBoardError maps use case failures to the shared status contract
func writeBoardError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrBoardNotFound):
		writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "Board not found"})
	case errors.Is(err, usecase.ErrAccessDenied):
		writeJSON(r.Context(), w, http.StatusForbidden, errorResponse{Error: "Access denied to this board"})
	default:
		errutil.Handle(r.Context(), err, "board request failed")
		writeJSON(r.Context(), w, http.StatusInternalServerError, errorResponse{
			Error:   "Internal server error",
			Details: err.Error(),
		})
	}
}

func createBoardHandler(boardUC *usecase.BoardUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromContext(r.Context())
		if token == nil {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		var req createBoardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
			writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "Missing title"})
			return
		}

		board, err := boardUC.CreateBoard(r.Context(), token.Sub, req.Title)
		if err != nil {
			writeBoardError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, board)
	}
}

func listBoardsHandler(boardUC *usecase.BoardUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromContext(r.Context())
		if token == nil {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		boards, err := boardUC.ListBoards(r.Context(), token.Sub)
		if err != nil {
			writeBoardError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, boardListResponse{Boards: boards})
	}
}

func getBoardHandler(boardUC *usecase.BoardUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromContext(r.Context())
		if token == nil {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		boardID := types.BoardID(chi.URLParam(r, "boardID"))
		tree, err := boardUC.GetBoardTree(r.Context(), boardID, token.Sub)
		if err != nil {
			writeBoardError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, tree)
	}
}

func listMessagesHandler(boardUC *usecase.BoardUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromContext(r.Context())
		if token == nil {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "Invalid limit"})
				return
			}
			limit = n
		}

		boardID := types.BoardID(chi.URLParam(r, "boardID"))
		messages, err := boardUC.ListMessages(r.Context(), boardID, token.Sub, limit)
		if err != nil {
			writeBoardError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, messageListResponse{Messages: messages})
	}
}

func addMemberHandler(boardUC *usecase.BoardUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromContext(r.Context())
		if token == nil {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		var req addMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "Missing userId"})
			return
		}

		boardID := types.BoardID(chi.URLParam(r, "boardID"))
		if err := boardUC.AddMember(r.Context(), boardID, token.Sub, types.UserID(req.UserID)); err != nil {
			writeBoardError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
