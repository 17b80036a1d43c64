package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/cli/config"
	controller "github.com/secmon-lab/demografi/pkg/controller/http"
	"github.com/secmon-lab/demografi/pkg/usecase"
	"github.com/secmon-lab/demografi/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		upstreamCfg config.Upstream
		datasetCfg  config.Dataset
	)

	flags := joinFlags(
		serverCfg.Flags(),
		upstreamCfg.Flags(),
		datasetCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting demografi server",
				slog.Any("server", serverCfg),
				slog.Any("upstream", upstreamCfg),
				slog.Any("dataset", datasetCfg),
			)

			source, err := config.ConfigureSource(ctx, &upstreamCfg, &datasetCfg)
			if err != nil {
				return err
			}
			dashboard := usecase.NewDashboard(source)

			// A failing probe is only reported; requests still retry on their own
			async.Dispatch(ctx, dashboard.Probe)

			httpCfg, err := serverCfg.Configure()
			if err != nil {
				return err
			}

			server, err := controller.NewServer(ctx, httpCfg, dashboard)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting",
					slog.String("addr", serverCfg.Addr),
					slog.String("source", dashboard.SourceName()),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server failed", goerr.V("addr", serverCfg.Addr))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
