// Package http provides the public HTTP endpoint for device registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	bootstrapkeyDomain "github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
	"github.com/allisson/iot-onboarding/internal/httputil"
	"github.com/allisson/iot-onboarding/internal/registration/http/dto"
	registrationUseCase "github.com/allisson/iot-onboarding/internal/registration/usecase"
	customValidation "github.com/allisson/iot-onboarding/internal/validation"
)

// BootstrapKeyHeader carries the plain text bootstrap secret on registration requests.
const BootstrapKeyHeader = "X-Bootstrap-Key"

// RegistrationHandler handles HTTP requests for public device registration.
type RegistrationHandler struct {
	registrationUseCase registrationUseCase.RegistrationUseCase
	logger              *slog.Logger
}

// NewRegistrationHandler creates a new registration handler with required dependencies.
func NewRegistrationHandler(
	useCase registrationUseCase.RegistrationUseCase,
	logger *slog.Logger,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUseCase: useCase,
		logger:              logger,
	}
}

// RegisterHandler exchanges a bootstrap key for a full device identity.
// POST /public/v1/register
// Returns 200 OK with the certificate and private key, delivered only this once.
// Any authentication failure returns the same 401 body regardless of cause.
func (h *RegistrationHandler) RegisterHandler(c *gin.Context) {
	presentedSecret := c.GetHeader(BootstrapKeyHeader)
	if presentedSecret == "" {
		httputil.HandleErrorGin(c, bootstrapkeyDomain.ErrInvalidBootstrapKey, h.logger)
		return
	}

	var req dto.RegisterDeviceRequest

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
	identity, err := h.registrationUseCase.Register(c.Request.Context(), presentedSecret, req.DeviceID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response with the one-time private key
	c.JSON(http.StatusOK, dto.MapIdentityToResponse(identity))
}
