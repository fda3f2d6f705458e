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

	"github.com/cadencehq/cadence/pkg/cli/config"
	httpctrl "github.com/cadencehq/cadence/pkg/controller/http"
	"github.com/cadencehq/cadence/pkg/service/worker"
	"github.com/cadencehq/cadence/pkg/usecase"
	"github.com/cadencehq/cadence/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var nudgeInterval time.Duration
	var repoCfg config.Repository
	var slackCfg config.Slack
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CADENCE_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "nudge-interval",
			Usage:       "Interval between stall nudge scans",
			Value:       time.Hour,
			Sources:     cli.EnvVars("CADENCE_NUDGE_INTERVAL"),
			Destination: &nudgeInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load planning policy")
			}

			ucOpts := []usecase.Option{
				usecase.WithPolicy(policy),
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack service")
			}
			if slackSvc != nil {
				ucOpts = append(ucOpts, usecase.WithSlack(slackSvc))
				logging.Default().Info("Slack notifications enabled")
			} else {
				logging.Default().Info("Slack not configured, digests and nudges stay local")
			}

			uc := usecase.New(repo, ucOpts...)

			// Start the stall nudge scanner only when it has somewhere
			// to deliver.
			var nudgeWorker *worker.NudgeWorker
			if slackSvc != nil {
				nudgeWorker = worker.NewNudgeWorker(uc.Nudge, nudgeInterval)
				if err := nudgeWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start nudge worker")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if nudgeWorker != nil {
					nudgeWorker.Stop()
				}

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
