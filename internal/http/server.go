// Package http provides the HTTP server for the value protection API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/envseal/internal/auth/http"
	authService "github.com/allisson/envseal/internal/auth/service"
	"github.com/allisson/envseal/internal/config"
	cryptoHTTP "github.com/allisson/envseal/internal/crypto/http"
	"github.com/allisson/envseal/internal/metrics"
)

// Server represents the HTTP server for the value protection API.
type Server struct {
	server           *http.Server
	logger           *slog.Logger
	secretConfigured bool
}

// NewServer creates a new HTTP server with all routes and middleware wired.
// The /v1 API group requires bearer authentication when an API token hash is
// configured; without one the API is open and a warning is logged.
func NewServer(
	cfg *config.Config,
	cryptoHandler *cryptoHTTP.CryptoHandler,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
	secretConfigured bool,
	logger *slog.Logger,
) *Server {
	gin.SetMode(cfg.GetGinMode())

	s := &Server{
		logger:           logger,
		secretConfigured: secretConfigured,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.APITokenHash != "" {
		v1.Use(authHTTP.AuthenticationMiddleware(tokenService, cfg.APITokenHash, logger))
	} else {
		logger.Warn("API_TOKEN_HASH not configured - the API accepts unauthenticated requests")
	}
	if cfg.RateLimitEnabled {
		v1.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}

	v1.POST("/encrypt", cryptoHandler.EncryptHandler)
	v1.POST("/decrypt", cryptoHandler.DecryptHandler)
	v1.POST("/keys", cryptoHandler.GenerateKeyHandler)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
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

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve protection requests,
// which requires a resolved master secret.
func (s *Server) readinessHandler(c *gin.Context) {
	if !s.secretConfigured {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"components": gin.H{
				"master_secret": "error",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"components": gin.H{
			"master_secret": "ok",
		},
	})
}
