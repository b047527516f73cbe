// Package app provides the dependency injection container that assembles the
// application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/newtonic3d/estimatevault/internal/config"
	"github.com/newtonic3d/estimatevault/internal/database"
	"github.com/newtonic3d/estimatevault/internal/http"
	"github.com/newtonic3d/estimatevault/internal/metrics"
)

// lazy holds a component created on first access. Both the value and the
// initialization error are memoized, so every caller sees the same outcome.
type lazy[T any] struct {
	once  sync.Once
	value T
	err   error
}

func (l *lazy[T]) get(init func() (T, error)) (T, error) {
	l.once.Do(func() {
		l.value, l.err = init()
	})
	return l.value, l.err
}

// Container holds all application dependencies and creates them lazily.
type Container struct {
	config *config.Config

	logger     lazy[*slog.Logger]
	db         lazy[*sql.DB]
	txManager  lazy[database.TxManager]
	metrics    lazy[*metrics.Provider]
	business   lazy[metrics.BusinessMetrics]
	httpServer lazy[*http.Server]
	metricsSrv lazy[*http.MetricsServer]

	cryptoComponents
	authComponents
	estimateComponents

	mu       sync.Mutex
	started  map[string]bool
	shutdown []func(context.Context) error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:  cfg,
		started: make(map[string]bool),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// onShutdown registers a cleanup step; steps run in reverse order.
func (c *Container) onShutdown(name string, fn func(context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started[name] {
		return
	}
	c.started[name] = true
	c.shutdown = append(c.shutdown, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	})
}

// Logger returns the structured JSON logger configured by LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	logger, _ := c.logger.get(func() (*slog.Logger, error) {
		return c.initLogger(), nil
	})
	return logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	return c.db.get(func() (*sql.DB, error) {
		db, err := database.Connect(context.Background(), database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.onShutdown("database", func(context.Context) error { return db.Close() })
		return db, nil
	})
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	return c.txManager.get(func() (database.TxManager, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
		}
		return database.NewTxManager(db), nil
	})
}

// MetricsProvider returns the OpenTelemetry provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	return c.metrics.get(func() (*metrics.Provider, error) {
		if !c.config.MetricsEnabled {
			return nil, nil
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics provider: %w", err)
		}
		c.onShutdown("metrics provider", provider.Shutdown)
		return provider, nil
	})
}

// BusinessMetrics returns the business metrics recorder, a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	return c.business.get(func() (metrics.BusinessMetrics, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}
		if provider == nil {
			return metrics.NewNoOpBusinessMetrics(), nil
		}
		return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	})
}

// HTTPServer returns the API server with its router configured. ctx bounds the
// background work started by middleware.
//
// A missing or invalid master secret does not fail the server: the estimate
// routes answer 503 and the reason is logged once.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	return c.httpServer.get(func() (*http.Server, error) {
		logger := c.Logger()

		db, err := c.DB()
		if err != nil {
			return nil, err
		}
		tokenUseCase, err := c.TokenUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
		}
		tokenHandler, err := c.TokenHandler()
		if err != nil {
			return nil, fmt.Errorf("failed to get token handler for http server: %w", err)
		}
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}

		estimateHandler, err := c.EstimateHandler()
		if err != nil {
			if !isVaultUnavailable(err) {
				return nil, fmt.Errorf("failed to get estimate handler for http server: %w", err)
			}
			logger.Error("estimate vault disabled", slog.Any("error", err))
			estimateHandler = nil
		}

		server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
		server.SetupRouter(ctx, c.config, http.RouterDependencies{
			TokenHandler:    tokenHandler,
			EstimateHandler: estimateHandler,
			TokenUseCase:    tokenUseCase,
			TokenService:    c.TokenService(),
			MetricsProvider: provider,
		})
		c.onShutdown("http server", server.Shutdown)
		return server, nil
	})
}

// MetricsServer returns the Prometheus server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return c.metricsSrv.get(func() (*http.MetricsServer, error) {
		provider, err := c.MetricsProvider()
		if err != nil || provider == nil {
			return nil, err
		}
		server := http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider)
		c.onShutdown("metrics server", server.Shutdown)
		return server, nil
	})
}

// Shutdown releases every initialized resource in reverse order of creation.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	steps := c.shutdown
	c.shutdown = nil
	c.mu.Unlock()

	var errs []error
	for i := len(steps) - 1; i >= 0; i-- {
		if err := steps[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}
	return nil
}

// initLogger creates a structured logger based on the log level.
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

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// repositoryFor picks the driver-specific implementation.
func repositoryFor[T any](driver string, db *sql.DB, postgres, mysql func(*sql.DB) T) (T, error) {
	switch driver {
	case database.DriverPostgres:
		return postgres(db), nil
	case database.DriverMySQL:
		return mysql(db), nil
	default:
		var zero T
		return zero, fmt.Errorf("%w: %s", database.ErrUnsupportedDriver, driver)
	}
}
