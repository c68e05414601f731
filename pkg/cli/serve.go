package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/deckhand-app/deckhand/pkg/cli/config"
	httpctrl "github.com/deckhand-app/deckhand/pkg/controller/http"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
	"github.com/deckhand-app/deckhand/pkg/service/assistant"
	"github.com/deckhand-app/deckhand/pkg/usecase"
	"github.com/deckhand-app/deckhand/pkg/utils/errutil"
	"github.com/deckhand-app/deckhand/pkg/utils/logging"
	"github.com/deckhand-app/deckhand/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var noAuthUID string
	var noAuthEmail string
	var noAuthName string
	var sentryDSN string
	var sentryEnv string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var boardCfg config.Board

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("DECKHAND_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as the specified user ID (development only). Example: --no-auth=u-dev",
			Category:    "Authentication",
			Sources:     cli.EnvVars("DECKHAND_NO_AUTH"),
			Destination: &noAuthUID,
		},
		&cli.StringFlag{
			Name:        "no-auth-email",
			Usage:       "Email for the no-auth user",
			Category:    "Authentication",
			Value:       "dev@localhost",
			Sources:     cli.EnvVars("DECKHAND_NO_AUTH_EMAIL"),
			Destination: &noAuthEmail,
		},
		&cli.StringFlag{
			Name:        "no-auth-name",
			Usage:       "Display name for the no-auth user",
			Category:    "Authentication",
			Value:       "Developer",
			Sources:     cli.EnvVars("DECKHAND_NO_AUTH_NAME"),
			Destination: &noAuthName,
		},
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (empty disables it)",
			Category:    "Observability",
			Sources:     cli.EnvVars("DECKHAND_SENTRY_DSN"),
			Destination: &sentryDSN,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment tag",
			Category:    "Observability",
			Value:       "production",
			Sources:     cli.EnvVars("DECKHAND_SENTRY_ENV"),
			Destination: &sentryEnv,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, boardCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := errutil.Init(sentryDSN, sentryEnv, c.Root().Version); err != nil {
				return err
			}
			defer errutil.Flush()

			boardConfig, err := boardCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load board configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			var authUC usecase.AuthUseCaseInterface
			if noAuthUID != "" {
				logging.Default().Warn("Running in no-auth mode (development only)", "user_id", noAuthUID)
				authUC = usecase.NewNoAuthnUseCase(repo, types.UserID(noAuthUID), noAuthEmail, noAuthName)
			} else {
				authUC = usecase.NewAuthUseCase(repo)
			}

			ucOpts := []usecase.Option{
				usecase.WithAuth(authUC),
				usecase.WithBoardConfig(boardConfig),
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if llmClient != nil {
				completionSvc, err := assistant.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize assistant service")
				}
				ucOpts = append(ucOpts, usecase.WithCompletion(completionSvc))
				logging.Default().Info("Assistant service enabled")
			} else {
				logging.Default().Info("Gemini project not configured, assistant features are disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			httpHandler, err := httpctrl.New(uc, httpctrl.WithAuth(authUC))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
