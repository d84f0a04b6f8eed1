// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// CreateBootstrapKeyRequest contains the parameters for creating a new bootstrap key.
type CreateBootstrapKeyRequest struct {
	Group         *string `json:"group"`
	ExpiresInDays int     `json:"expires_in_days"`
}

// Validate checks if the create bootstrap key request is valid.
func (r *CreateBootstrapKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Group,
			validation.NilOrNotEmpty,
			validation.Length(1, 255),
		),
		validation.Field(&r.ExpiresInDays,
			validation.Min(0),
			validation.Max(365),
		),
	)
}

// SetKeyActivationRequest contains the parameters for arming or disarming a key.
type SetKeyActivationRequest struct {
	ActivationFlag *bool `json:"activation_flag"`
}

// Validate checks if the activation request is valid.
func (r *SetKeyActivationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ActivationFlag,
			validation.NotNil,
		),
	)
}
