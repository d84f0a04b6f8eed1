// Package http provides HTTP handlers for bootstrap key management operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
	"github.com/allisson/iot-onboarding/internal/bootstrapkey/http/dto"
	bootstrapkeyUseCase "github.com/allisson/iot-onboarding/internal/bootstrapkey/usecase"
	"github.com/allisson/iot-onboarding/internal/httputil"
	customValidation "github.com/allisson/iot-onboarding/internal/validation"
)

// BootstrapKeyHandler handles HTTP requests for bootstrap key management operations.
type BootstrapKeyHandler struct {
	keyUseCase bootstrapkeyUseCase.BootstrapKeyUseCase
	logger     *slog.Logger
}

// NewBootstrapKeyHandler creates a new bootstrap key handler with required dependencies.
func NewBootstrapKeyHandler(
	keyUseCase bootstrapkeyUseCase.BootstrapKeyUseCase,
	logger *slog.Logger,
) *BootstrapKeyHandler {
	return &BootstrapKeyHandler{
		keyUseCase: keyUseCase,
		logger:     logger,
	}
}

// CreateHandler creates a new bootstrap key.
// POST /private/v1/admin/keys
// Returns 201 Created with the plain text key, revealed only this once.
func (h *BootstrapKeyHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateBootstrapKeyRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Create input for use case
	input := &domain.CreateBootstrapKeyInput{
		Group:         req.Group,
		ExpiresInDays: req.ExpiresInDays,
	}

	// Call use case
	output, err := h.keyUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response with plain secret
	response := dto.CreateBootstrapKeyResponse{
		ID:        output.Key.ID,
		Key:       output.PlainSecret,
		KeyHint:   output.Key.SecretHint,
		Group:     output.Key.Group,
		CreatedAt: output.Key.CreatedAt,
		ExpiresAt: output.Key.ExpiresAt,
		IsActive:  output.Key.IsActive,
	}

	c.JSON(http.StatusCreated, response)
}

// GetHandler retrieves a single bootstrap key by ID.
// GET /private/v1/admin/keys/:id
// Returns 200 OK with key data (no secret or hash), 404 if the key doesn't exist.
func (h *BootstrapKeyHandler) GetHandler(c *gin.Context) {
	keyID, err := parseKeyID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	key, err := h.keyUseCase.Get(c.Request.Context(), keyID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response
	c.JSON(http.StatusOK, dto.MapBootstrapKeyToResponse(key))
}

// ListHandler retrieves bootstrap keys with pagination support.
// GET /private/v1/admin/keys?skip=0&limit=10
// Returns 200 OK with keys ordered newest first (no secrets or hashes).
func (h *BootstrapKeyHandler) ListHandler(c *gin.Context) {
	// Parse skip and limit query parameters
	pagination, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	keys, err := h.keyUseCase.List(c.Request.Context(), pagination.Limit, pagination.Skip)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response
	c.JSON(http.StatusOK, dto.MapBootstrapKeysToListResponse(keys))
}

// SetActivationHandler arms or disarms a bootstrap key.
// PUT /private/v1/admin/keys/:id
// Returns 200 OK with updated key data. Re-arming an expired key returns 409.
func (h *BootstrapKeyHandler) SetActivationHandler(c *gin.Context) {
	keyID, err := parseKeyID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.SetKeyActivationRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	key, err := h.keyUseCase.SetActive(c.Request.Context(), keyID, *req.ActivationFlag)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response
	c.JSON(http.StatusOK, dto.MapBootstrapKeyToResponse(key))
}

// DeleteHandler permanently removes a bootstrap key.
// DELETE /private/v1/admin/keys/:id
// Returns 204 No Content.
func (h *BootstrapKeyHandler) DeleteHandler(c *gin.Context) {
	keyID, err := parseKeyID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	if err := h.keyUseCase.Delete(c.Request.Context(), keyID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}

// parseKeyID extracts and validates the key ID path parameter.
func parseKeyID(c *gin.Context) (int64, error) {
	keyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || keyID < 1 {
		return 0, fmt.Errorf("invalid key ID format: must be a positive integer")
	}
	return keyID, nil
}
