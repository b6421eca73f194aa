// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	assetHTTP "github.com/allisson/assettrack/internal/asset/http"
	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	authHTTP "github.com/allisson/assettrack/internal/auth/http"
	authUseCase "github.com/allisson/assettrack/internal/auth/usecase"
	"github.com/allisson/assettrack/internal/config"
	"github.com/allisson/assettrack/internal/metrics"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// Handlers groups the domain handlers mounted under /api.
type Handlers struct {
	Device  *assetHTTP.DeviceHandler
	Session *authHTTP.SessionHandler
}

// Authorizers groups the authorizer variants used by the router.
type Authorizers struct {
	// Routes is consulted for every asset route.
	Routes authDomain.Authorizer
	// Admin guards administrative auth endpoints.
	Admin authDomain.Authorizer
	// Session guards the read-only session endpoints.
	Session authDomain.Authorizer
}

// NewServer creates a new HTTP server.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with all middlewares and routes.
//
// Global middleware order: recovery, request id, request logging, CORS, HTTP metrics and the
// per-IP limiter. Routes under /api then pass through authentication, the per-identity
// limiter and the authorizer of their group.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	identityUseCase authUseCase.IdentityUseCase,
	authorizers Authorizers,
	metricsProvider *metrics.Provider,
	businessMetrics metrics.BusinessMetrics,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if cfg.RateLimitIPEnabled {
		router.Use(authHTTP.IPRateLimitMiddleware(
			ctx,
			cfg.RateLimitIPRequestsPerSec,
			cfg.RateLimitIPBurst,
			s.logger,
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")
	api.GET("/health/", s.healthHandler)

	api.Use(authHTTP.AuthenticationMiddleware(identityUseCase, s.logger))
	if cfg.RateLimitEnabled {
		api.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	// Session routes are open to every known role; the role table governs asset paths.
	auth := api.Group("/auth")
	{
		sessionAuthz := authHTTP.AuthorizationMiddleware(authorizers.Session, businessMetrics, s.logger)
		auth.GET("/me", sessionAuthz, handlers.Session.MeHandler)
		auth.GET("/profile", sessionAuthz, handlers.Session.ProfileHandler)
		auth.POST("/logout", handlers.Session.LogoutHandler)
		auth.GET("/roles",
			authHTTP.AuthorizationMiddleware(authorizers.Admin, businessMetrics, s.logger),
			handlers.Session.RolesHandler,
		)
	}

	assets := api.Group("")
	assets.Use(authHTTP.AuthorizationMiddleware(authorizers.Routes, businessMetrics, s.logger))
	{
		assets.POST("/devices/:id/move", handlers.Device.MoveHandler)
		assets.POST("/devices/:id/change-condition", handlers.Device.ChangeConditionHandler)
		assets.GET("/devices/:id/location", handlers.Device.GetLocationHandler)
		assets.GET("/device-location-history/", handlers.Device.ListLocationHistoryHandler)
		assets.GET("/device-condition-history/", handlers.Device.ListConditionHistoryHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports that the process is up.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
