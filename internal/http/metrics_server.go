package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/assettrack/internal/metrics"
)

// MetricsServer serves the Prometheus scrape endpoint on its own port so it never shares
// the API's authentication or rate limits.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer mounts GET /metrics for the provider. Scrapes are not access-logged.
func NewMetricsServer(host string, port int, logger *slog.Logger, provider *metrics.Provider) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(provider.Handler()))
	router.NoRoute(CustomLoggerMiddleware(logger), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	return &MetricsServer{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the router.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start blocks serving scrapes until Shutdown is called.
func (s *MetricsServer) Start(ctx context.Context) error {
	s.logger.Info("starting metrics server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server on %s: %w", s.server.Addr, err)
	}
	return nil
}

// Shutdown stops accepting scrapes and waits for in-flight ones.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server")
	return s.server.Shutdown(ctx)
}
