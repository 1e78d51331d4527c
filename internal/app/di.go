// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authService "github.com/allisson/envseal/internal/auth/service"
	"github.com/allisson/envseal/internal/config"
	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
	cryptoHTTP "github.com/allisson/envseal/internal/crypto/http"
	cryptoService "github.com/allisson/envseal/internal/crypto/service"
	"github.com/allisson/envseal/internal/envfile"
	apperrors "github.com/allisson/envseal/internal/errors"
	"github.com/allisson/envseal/internal/http"
	"github.com/allisson/envseal/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	pipelineMetrics metrics.PipelineMetrics

	// Services
	engine       cryptoService.Engine
	kmsService   cryptoService.KMSService
	tokenService authService.TokenService
	masterSecret *cryptoDomain.SecretKey
	codec        *envfile.Codec
	fileStore    *envfile.FileStore

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	metricsProviderInit sync.Once
	pipelineMetricsInit sync.Once
	engineInit          sync.Once
	kmsServiceInit      sync.Once
	tokenServiceInit    sync.Once
	masterSecretInit    sync.Once
	codecInit           sync.Once
	fileStoreInit       sync.Once
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

// Engine returns the authenticated encryption engine.
func (c *Container) Engine() cryptoService.Engine {
	c.engineInit.Do(func() {
		c.engine = cryptoService.NewEngine()
	})
	return c.engine
}

// KMSService returns the KMS keeper service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// TokenService returns the API token service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// MasterSecret resolves and returns the master secret.
//
// Resolution order: the plain base64 MASTER_SECRET wins; otherwise the
// KMS-wrapped form is unwrapped through the configured keeper. Returns an
// error when neither form is configured.
func (c *Container) MasterSecret(ctx context.Context) (*cryptoDomain.SecretKey, error) {
	c.masterSecretInit.Do(func() {
		secret, err := c.initMasterSecret(ctx)
		if err != nil {
			c.initErrors["masterSecret"] = err
			return
		}
		c.masterSecret = secret
	})
	if storedErr, exists := c.initErrors["masterSecret"]; exists {
		return nil, storedErr
	}
	return c.masterSecret, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// PipelineMetrics returns the pipeline metrics recorder.
// Falls back to a no-op implementation when metrics are disabled.
func (c *Container) PipelineMetrics() (metrics.PipelineMetrics, error) {
	var err error
	c.pipelineMetricsInit.Do(func() {
		var provider *metrics.Provider
		provider, err = c.MetricsProvider()
		if err != nil {
			c.initErrors["pipelineMetrics"] = err
			return
		}
		if provider == nil {
			c.pipelineMetrics = metrics.NewNoOpPipelineMetrics()
			return
		}
		c.pipelineMetrics, err = metrics.NewPipelineMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["pipelineMetrics"] = err
		}
	})
	if storedErr, exists := c.initErrors["pipelineMetrics"]; exists {
		return nil, storedErr
	}
	return c.pipelineMetrics, nil
}

// Codec returns the configuration-file codec.
func (c *Container) Codec() *envfile.Codec {
	c.codecInit.Do(func() {
		c.codec = envfile.NewCodec(c.Engine(), c.Logger())
	})
	return c.codec
}

// FileStore returns the local filesystem secret store.
func (c *Container) FileStore() *envfile.FileStore {
	c.fileStoreInit.Do(func() {
		c.fileStore = envfile.NewFileStore()
	})
	return c.fileStore
}

// HTTPServer returns the API server with all routes and middleware wired.
// Resolving the master secret is part of server construction; the server
// never starts without one.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown gracefully releases all container resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Wipe the master secret last; servers holding it are already stopped.
	if c.masterSecret != nil {
		c.masterSecret.Destroy()
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates the application logger based on the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
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

// initMasterSecret resolves the master secret from configuration.
func (c *Container) initMasterSecret(ctx context.Context) (*cryptoDomain.SecretKey, error) {
	if c.config.MasterSecret != "" {
		return cryptoDomain.DecodeSecretKey(c.config.MasterSecret)
	}

	if c.config.MasterSecretWrapped != "" {
		if c.config.MasterSecretKeeperURI == "" {
			return nil, apperrors.Wrap(
				apperrors.ErrInvalidInput,
				"MASTER_SECRET_WRAPPED requires MASTER_SECRET_KEEPER_URI",
			)
		}
		return cryptoService.UnwrapMasterSecret(
			ctx,
			c.KMSService(),
			c.config.MasterSecretKeeperURI,
			c.config.MasterSecretWrapped,
		)
	}

	return nil, apperrors.Wrap(
		apperrors.ErrInvalidInput,
		"no master secret configured, set MASTER_SECRET or MASTER_SECRET_WRAPPED",
	)
}

// initHTTPServer assembles the API server and its handler dependencies.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	secret, err := c.MasterSecret(ctx)
	if err != nil {
		return nil, err
	}

	pipelineMetrics, err := c.PipelineMetrics()
	if err != nil {
		return nil, err
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	cryptoHandler := cryptoHTTP.NewCryptoHandler(c.Engine(), secret, pipelineMetrics, c.Logger())

	return http.NewServer(
		c.config,
		cryptoHandler,
		c.TokenService(),
		provider,
		secret != nil,
		c.Logger(),
	), nil
}
