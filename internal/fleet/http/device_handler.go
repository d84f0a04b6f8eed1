// Package http provides HTTP handlers for fleet inspection and revocation.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/iot-onboarding/internal/fleet/http/dto"
	fleetService "github.com/allisson/iot-onboarding/internal/fleet/service"
	"github.com/allisson/iot-onboarding/internal/httputil"
	customValidation "github.com/allisson/iot-onboarding/internal/validation"
)

// DeviceHandler handles HTTP requests for fleet management operations.
// It proxies reads and revocations to the device registry gateway.
type DeviceHandler struct {
	gateway fleetService.Gateway
	logger  *slog.Logger
}

// NewDeviceHandler creates a new device handler with required dependencies.
func NewDeviceHandler(gateway fleetService.Gateway, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// ListHandler retrieves all registered devices from the device registry.
// GET /private/v1/admin/devices
// Returns 200 OK with the full registry contents.
func (h *DeviceHandler) ListHandler(c *gin.Context) {
	devices, err := h.gateway.ListDevices(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDevicesToListResponse(devices))
}

// RevokeHandler revokes a device certificate in the device registry.
// POST /private/v1/admin/devices/revoke
// Returns 204 No Content. The registry keeps the revoked certificate for audit.
func (h *DeviceHandler) RevokeHandler(c *gin.Context) {
	var req dto.RevokeCertificateRequest

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

	// Call gateway
	if err := h.gateway.RevokeCertificate(c.Request.Context(), req.CertificateID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}
