package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/assettrack/internal/app"
	"github.com/allisson/assettrack/internal/config"
)

// server is the lifecycle shared by the API and metrics servers.
type server interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer starts the API and metrics servers and blocks until SIGINT/SIGTERM or a fatal
// server error. Both servers are then shut down within DBConnMaxLifetime.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	apiServer, err := container.HTTPServer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	servers := []server{apiServer}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		servers = append(servers, metricsServer)
	}

	return serve(ctx, logger, cfg, servers...)
}

// serve runs every server until ctx is done or one of them fails, then shuts all of them down.
func serve(ctx context.Context, logger *slog.Logger, cfg *config.Config, servers ...server) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		group.Go(func() error {
			return srv.Start(groupCtx)
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		} else {
			logger.Error("server error, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
		defer shutdownCancel()

		var shutdownErrors []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, err)
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return group.Wait()
}
