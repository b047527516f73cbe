// Package http provides the HTTP server, its router and the shared middleware.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/newtonic3d/estimatevault/internal/auth/http"
	authService "github.com/newtonic3d/estimatevault/internal/auth/service"
	authUseCase "github.com/newtonic3d/estimatevault/internal/auth/usecase"
	"github.com/newtonic3d/estimatevault/internal/config"
	"github.com/newtonic3d/estimatevault/internal/database"
	estimateHTTP "github.com/newtonic3d/estimatevault/internal/estimate/http"
	"github.com/newtonic3d/estimatevault/internal/metrics"
)

const readinessTimeout = 2 * time.Second

// Server is the API server.
type Server struct {
	baseServer
	db     *sql.DB
	router *gin.Engine
}

// NewServer creates a new HTTP server. The router is attached by SetupRouter.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		baseServer: newBaseServer("http server", host, port, logger),
		db:         db,
	}
}

// RouterDependencies groups the handlers and services the router wires together.
//
// EstimateHandler is nil when the master secret could not be loaded; the
// estimate routes then answer 503 while auth and health keep working.
type RouterDependencies struct {
	TokenHandler    *authHTTP.TokenHandler
	EstimateHandler *estimateHTTP.EstimateHandler
	TokenUseCase    authUseCase.TokenUseCase
	TokenService    authService.TokenService
	MetricsProvider *metrics.Provider
}

// SetupRouter builds the gin engine with all routes and middleware.
//
// ctx bounds background work started by middleware, such as rate limiter cleanup.
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, deps RouterDependencies) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cors := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); cors != nil {
		router.Use(cors)
	}

	if cfg.MetricsEnabled && deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler(deps.EstimateHandler != nil))

	v1 := router.Group("/v1")

	tokenRoutes := []gin.HandlerFunc{}
	if cfg.RateLimitTokenEnabled {
		tokenRoutes = append(tokenRoutes, authHTTP.TokenRateLimitMiddleware(
			ctx, cfg.RateLimitTokenRequestsPerSec, cfg.RateLimitTokenBurst, s.logger,
		))
	}
	v1.POST("/token", append(tokenRoutes, deps.TokenHandler.IssueTokenHandler)...)

	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(deps.TokenUseCase, deps.TokenService, s.logger))
	if cfg.RateLimitEnabled {
		authenticated.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	authenticated.DELETE("/token", deps.TokenHandler.RevokeTokenHandler)

	s.registerEstimateRoutes(authenticated, deps.EstimateHandler)

	s.router = router
	s.server.Handler = router
}

// registerEstimateRoutes mounts the estimate vault routes, or a 503 stub for
// each of them when the vault is not available.
func (s *Server) registerEstimateRoutes(group *gin.RouterGroup, handler *estimateHTTP.EstimateHandler) {
	if handler == nil {
		unavailable := estimateHTTP.VaultUnavailableHandler(s.logger)
		group.PUT("/quotes/:id/estimate", unavailable)
		group.GET("/quotes/:id/estimate", unavailable)
		group.POST("/quotes/:id/file-references", unavailable)
		group.POST("/file-references/resolve", unavailable)
		group.POST("/estimates/calculate", unavailable)
		return
	}

	group.PUT("/quotes/:id/estimate", handler.SealHandler)
	group.GET("/quotes/:id/estimate", handler.RetrieveHandler)
	group.POST("/quotes/:id/file-references", handler.IssueFileReferenceHandler)
	group.POST("/file-references/resolve", handler.ResolveFileReferenceHandler)
	group.POST("/estimates/calculate", handler.CalculateHandler)
}

// healthHandler reports liveness. It never touches dependencies.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database is reachable. A missing vault
// is reported but does not make the service unready.
func (s *Server) readinessHandler(vaultAvailable bool) gin.HandlerFunc {
	vaultStatus := "ok"
	if !vaultAvailable {
		vaultStatus = "unavailable"
	}

	return func(c *gin.Context) {
		components := gin.H{"vault": vaultStatus}

		if database.Ping(c.Request.Context(), s.db, readinessTimeout) != nil {
			components["database"] = "error"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"components": components,
			})
			return
		}

		components["database"] = "ok"
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"components": components,
		})
	}
}
