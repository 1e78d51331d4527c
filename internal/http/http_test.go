package http

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/allisson/envseal/internal/auth/service"
	"github.com/allisson/envseal/internal/config"
	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
	cryptoHTTP "github.com/allisson/envseal/internal/crypto/http"
	"github.com/allisson/envseal/internal/crypto/http/dto"
	cryptoService "github.com/allisson/envseal/internal/crypto/service"
	"github.com/allisson/envseal/internal/metrics"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type serverOptions struct {
	tokenHash        string
	rateLimit        bool
	secretConfigured bool
}

// createTestServer builds a full server with a real engine and a throwaway
// master secret. Returns the server and the plain API token when auth is on.
func createTestServer(t *testing.T, opts serverOptions) *Server {
	t.Helper()

	raw := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	secret, err := cryptoDomain.NewSecretKey(raw)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := cryptoHTTP.NewCryptoHandler(
		cryptoService.NewEngine(),
		secret,
		metrics.NewNoOpPipelineMetrics(),
		logger,
	)

	cfg := &config.Config{
		ServerHost:              "localhost",
		ServerPort:              8080,
		LogLevel:                "info",
		APITokenHash:            opts.tokenHash,
		RateLimitEnabled:        opts.rateLimit,
		RateLimitRequestsPerSec: 100,
		RateLimitBurst:          100,
	}

	return NewServer(cfg, handler, authService.NewTokenService(), nil, opts.secretConfigured, logger)
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	return request
}

func TestServer_HealthEndpoint(t *testing.T) {
	server := createTestServer(t, serverOptions{secretConfigured: true})

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestServer_ReadinessEndpoint(t *testing.T) {
	t.Run("ready with master secret", func(t *testing.T) {
		server := createTestServer(t, serverOptions{secretConfigured: true})

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not ready without master secret", func(t *testing.T) {
		server := createTestServer(t, serverOptions{secretConfigured: false})

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not_ready", response["status"])

		components, ok := response["components"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "error", components["master_secret"])
	})
}

func TestServer_EncryptDecryptRoundTrip(t *testing.T) {
	server := createTestServer(t, serverOptions{secretConfigured: true})
	handler := server.GetHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, jsonRequest(http.MethodPost, "/v1/encrypt", dto.EncryptRequest{Value: "api-key"}))
	require.Equal(t, http.StatusOK, w.Code)

	var encryptResponse dto.EncryptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &encryptResponse))
	assert.NotContains(t, encryptResponse.Envelope, "api-key")

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, jsonRequest(http.MethodPost, "/v1/decrypt", dto.DecryptRequest{Envelope: encryptResponse.Envelope}))
	require.Equal(t, http.StatusOK, w.Code)

	var decryptResponse dto.DecryptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decryptResponse))
	assert.Equal(t, "api-key", decryptResponse.Value)
}

func TestServer_GenerateKeyEndpoint(t *testing.T) {
	server := createTestServer(t, serverOptions{secretConfigured: true})

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, jsonRequest(http.MethodPost, "/v1/keys", dto.GenerateKeyRequest{Bits: 256}))

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.GenerateKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Key)
	assert.Equal(t, 256, response.Bits)
}

func TestServer_Authentication(t *testing.T) {
	tokenService := authService.NewTokenService()
	plain, hashed, err := tokenService.GenerateToken()
	require.NoError(t, err)

	server := createTestServer(t, serverOptions{tokenHash: hashed, secretConfigured: true})
	handler := server.GetHandler()

	t.Run("request without token is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, jsonRequest(http.MethodPost, "/v1/encrypt", dto.EncryptRequest{Value: "x"}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("request with valid token succeeds", func(t *testing.T) {
		request := jsonRequest(http.MethodPost, "/v1/encrypt", dto.EncryptRequest{Value: "x"})
		request.Header.Set("Authorization", "Bearer "+plain)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, request)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("health stays open", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsServer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := metrics.NewProvider("envseal")
	require.NoError(t, err)

	server := NewMetricsServer("localhost", 8081, logger, provider)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
