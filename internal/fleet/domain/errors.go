// Package domain defines core domain models and errors for fleet management.
package domain

import (
	"github.com/allisson/iot-onboarding/internal/errors"
)

// Fleet-specific error definitions.
var (
	// ErrProvisioningFailed indicates the device registry could not complete
	// an identity operation. Surfaced to callers as an internal error.
	ErrProvisioningFailed = errors.New("device provisioning failed")

	// ErrCertificateNotFound indicates the certificate does not exist in the registry.
	ErrCertificateNotFound = errors.Wrap(errors.ErrNotFound, "certificate not found")
)
