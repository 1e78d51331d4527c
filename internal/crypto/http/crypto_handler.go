// Package http provides HTTP handlers for the value protection API.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
	"github.com/allisson/envseal/internal/crypto/http/dto"
	cryptoService "github.com/allisson/envseal/internal/crypto/service"
	"github.com/allisson/envseal/internal/httputil"
	"github.com/allisson/envseal/internal/metrics"
	customValidation "github.com/allisson/envseal/internal/validation"
)

// CryptoHandler handles HTTP requests for value protection operations.
// The master secret is resolved once at startup and injected here; individual
// requests never carry key material.
type CryptoHandler struct {
	engine          cryptoService.Engine
	secret          *cryptoDomain.SecretKey
	pipelineMetrics metrics.PipelineMetrics
	logger          *slog.Logger
}

// NewCryptoHandler creates a new crypto handler with required dependencies.
func NewCryptoHandler(
	engine cryptoService.Engine,
	secret *cryptoDomain.SecretKey,
	pipelineMetrics metrics.PipelineMetrics,
	logger *slog.Logger,
) *CryptoHandler {
	return &CryptoHandler{
		engine:          engine,
		secret:          secret,
		pipelineMetrics: pipelineMetrics,
		logger:          logger,
	}
}

// EncryptHandler protects a single value under the master secret.
// POST /v1/encrypt
// Returns 200 OK with the JSON envelope text.
func (h *CryptoHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	start := time.Now()

	envelope, err := h.engine.Encrypt(req.Value, h.secret)
	if err != nil {
		h.recordOperation(c, "encrypt", start, "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	encoded, err := envelope.Encode()
	if err != nil {
		h.recordOperation(c, "encrypt", start, "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.recordOperation(c, "encrypt", start, "success")
	c.JSON(http.StatusOK, dto.EncryptResponse{Envelope: encoded})
}

// DecryptHandler recovers the value protected by an envelope.
// POST /v1/decrypt
// Returns 200 OK with the original value, or 422 when integrity
// verification rejects the envelope.
func (h *CryptoHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	start := time.Now()

	value, err := h.engine.Decrypt(req.Envelope, h.secret)
	if err != nil {
		h.recordOperation(c, "decrypt", start, "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.recordOperation(c, "decrypt", start, "success")
	c.JSON(http.StatusOK, dto.DecryptResponse{Value: value})
}

// GenerateKeyHandler generates a fresh random key.
// POST /v1/keys
// Returns 200 OK with base64 key material. The generated key is returned to
// the caller and never retained by the server.
func (h *CryptoHandler) GenerateKeyHandler(c *gin.Context) {
	var req dto.GenerateKeyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	bits := req.Bits
	if bits == 0 {
		bits = cryptoDomain.DefaultKeyBits
	}

	start := time.Now()

	key, err := cryptoService.GenerateKey(bits)
	if err != nil {
		h.recordOperation(c, "generate_key", start, "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.recordOperation(c, "generate_key", start, "success")
	c.JSON(http.StatusOK, dto.GenerateKeyResponse{Key: key, Bits: bits})
}

// recordOperation records count and duration for one crypto API operation.
func (h *CryptoHandler) recordOperation(c *gin.Context, operation string, start time.Time, status string) {
	ctx := c.Request.Context()
	h.pipelineMetrics.RecordOperation(ctx, "crypto", operation, status)
	h.pipelineMetrics.RecordDuration(ctx, "crypto", operation, time.Since(start), status)
}
