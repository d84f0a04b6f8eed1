// Package dto contains data transfer objects for device registration HTTP requests and responses.
package dto

import (
	"github.com/jellydator/validation"

	customValidation "github.com/allisson/iot-onboarding/internal/validation"
)

// RegisterDeviceRequest represents the payload for registering a device.
type RegisterDeviceRequest struct {
	DeviceID string `json:"device_id"`
}

// Validate validates the RegisterDeviceRequest fields.
func (r RegisterDeviceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DeviceID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 128),
		),
	)
}
