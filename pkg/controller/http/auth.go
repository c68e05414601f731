package http

import (
	"encoding/json"
	"net/http"

	"github.com/deckhand-app/deckhand/pkg/domain/model/auth"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/deckhand-app/deckhand/pkg/usecase"
)

type AuthUseCase = usecase.AuthUseCaseInterface

type loginRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type userMeResponse struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// authLoginHandler issues a session token pair for the given user and sets it
// as cookies. Identity assertion is delegated to the deployment's
// authenticating front proxy; this endpoint only mints the session.
func authLoginHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if authUC == nil {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "Missing userId"})
			return
		}

		token, err := authUC.IssueToken(r.Context(), types.UserID(req.UserID), req.Email, req.Name)
		if err != nil {
			writeJSON(r.Context(), w, http.StatusInternalServerError, errorResponse{Error: "Internal server error", Details: err.Error()})
			return
		}

		setAuthCookie(w, r, "token_id", string(token.ID), token)
		setAuthCookie(w, r, "token_secret", string(token.Secret), token)

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

// authLogoutHandler deletes the session and clears the cookies
func authLogoutHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if authUC != nil {
			if tokenIDCookie, err := r.Cookie("token_id"); err == nil {
				if err := authUC.Logout(r.Context(), auth.TokenID(tokenIDCookie.Value)); err != nil {
					writeJSON(r.Context(), w, http.StatusInternalServerError, errorResponse{Error: "Internal server error", Details: err.Error()})
					return
				}
			}
		}

		clearAuthCookie(w, r, "token_id")
		clearAuthCookie(w, r, "token_secret")

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

// authMeHandler returns the session behind the request
func authMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromContext(r.Context())
		if token == nil {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, userMeResponse{
			Sub:   string(token.Sub),
			Email: token.Email,
			Name:  token.Name,
		})
	}
}

func setAuthCookie(w http.ResponseWriter, r *http.Request, name, value string, token *auth.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  token.ExpiresAt,
	})
}

func clearAuthCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
