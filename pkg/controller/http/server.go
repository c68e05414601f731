package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deckhand-app/deckhand/pkg/usecase"
	"github.com/deckhand-app/deckhand/pkg/utils/errutil"
	"github.com/deckhand-app/deckhand/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	authUC AuthUseCase
}

type Options func(*Server)

func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.authUC == nil {
		s.authUC = uc.Auth
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	// Auth endpoints do not require a session
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authLoginHandler(s.authUC))
		r.Post("/logout", authLogoutHandler(s.authUC))
	})

	// Everything else requires a valid session
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(s.authUC))

		r.Get("/api/auth/me", authMeHandler())

		r.Post("/api/chat", chatHandler(s.uc.Chat))

		r.Route("/api/boards", func(r chi.Router) {
			r.Post("/", createBoardHandler(s.uc.Board))
			r.Get("/", listBoardsHandler(s.uc.Board))
			r.Get("/{boardID}", getBoardHandler(s.uc.Board))
			r.Get("/{boardID}/messages", listMessagesHandler(s.uc.Board))
			r.Post("/{boardID}/members", addMemberHandler(s.uc.Board))
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}
