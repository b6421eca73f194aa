// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	assetHTTP "github.com/allisson/assettrack/internal/asset/http"
	assetUseCase "github.com/allisson/assettrack/internal/asset/usecase"
	authCache "github.com/allisson/assettrack/internal/auth/cache"
	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	authHTTP "github.com/allisson/assettrack/internal/auth/http"
	authUseCase "github.com/allisson/assettrack/internal/auth/usecase"
	"github.com/allisson/assettrack/internal/config"
	"github.com/allisson/assettrack/internal/database"
	apihttp "github.com/allisson/assettrack/internal/http"
	"github.com/allisson/assettrack/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Auth
	roleTable       authDomain.RoleTable
	tokenCache      *authCache.TokenCache
	identityUseCase authUseCase.IdentityUseCase
	sessionHandler  *authHTTP.SessionHandler

	// Assets
	deviceUseCase assetUseCase.DeviceUseCase
	deviceHandler *assetHTTP.DeviceHandler

	// Servers
	httpServer    *apihttp.Server
	metricsServer *apihttp.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	txManagerInit       sync.Once
	roleTableInit       sync.Once
	tokenCacheInit      sync.Once
	identityUseCaseInit sync.Once
	sessionHandlerInit  sync.Once
	deviceUseCaseInit   sync.Once
	deviceHandlerInit   sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
		}
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with its router assembled.
func (c *Container) HTTPServer(ctx context.Context) (*apihttp.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*apihttp.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.tokenCache != nil {
		c.tokenCache.Close()
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initBusinessMetrics creates the business metrics recorder on top of the metrics provider.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the API server and assembles its router.
func (c *Container) initHTTPServer(ctx context.Context) (*apihttp.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	identityUseCase, err := c.IdentityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity use case for http server: %w", err)
	}

	sessionHandler, err := c.SessionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get session handler for http server: %w", err)
	}

	deviceHandler, err := c.DeviceHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get device handler for http server: %w", err)
	}

	roleTable, err := c.RoleTable()
	if err != nil {
		return nil, fmt.Errorf("failed to get role table for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if metricsProvider != nil {
		if err := metrics.RegisterTokenCacheGauge(
			metricsProvider.MeterProvider(),
			c.config.MetricsNamespace,
			c.TokenCache().Len,
		); err != nil {
			return nil, err
		}
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	server := apihttp.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(
		ctx,
		c.config,
		apihttp.Handlers{Device: deviceHandler, Session: sessionHandler},
		identityUseCase,
		apihttp.Authorizers{
			Routes:  authDomain.NewRoleBasedAuthorizer(roleTable),
			Admin:   authDomain.NewFullAccessAuthorizer(roleTable),
			Session: authDomain.NewReadOnlyAuthorizer(roleTable),
		},
		metricsProvider,
		businessMetrics,
	)

	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*apihttp.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}

	return apihttp.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
