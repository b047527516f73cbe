package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/newtonic3d/estimatevault/internal/metrics"
)

// baseServer holds the listen and shutdown logic shared by the API and
// metrics servers.
type baseServer struct {
	name   string
	server *http.Server
	logger *slog.Logger
}

func newBaseServer(name, host string, port int, logger *slog.Logger) baseServer {
	return baseServer{
		name:   name,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *baseServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start listens until the server is shut down.
func (s *baseServer) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		return fmt.Errorf("%s: handler not configured", s.name)
	}

	s.logger.Info("starting "+s.name, slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start %s: %w", s.name, err)
	}

	return nil
}

// Shutdown gracefully stops the server.
func (s *baseServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down " + s.name)
	return s.server.Shutdown(ctx)
}

// MetricsServer serves Prometheus metrics on a port separate from the API, so
// scrapes never pass through API authentication or rate limits.
type MetricsServer struct {
	baseServer
}

// NewMetricsServer creates a new MetricsServer.
func NewMetricsServer(
	host string,
	port int,
	logger *slog.Logger,
	metricsProvider *metrics.Provider,
) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery())

	if metricsProvider != nil {
		router.GET("/metrics", gin.WrapH(metricsProvider.Handler()))
	}

	s := &MetricsServer{baseServer: newBaseServer("metrics server", host, port, logger)}
	s.server.Handler = router
	return s
}
