// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/iot-onboarding/internal/validation"
)

// RevokeCertificateRequest contains the parameters for revoking a device certificate.
type RevokeCertificateRequest struct {
	CertificateID string `json:"certificate_id"`
}

// Validate checks if the revoke certificate request is valid.
func (r *RevokeCertificateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CertificateID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}
