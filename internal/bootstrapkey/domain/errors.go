// Package domain defines core domain models and errors for bootstrap keys.
package domain

import (
	"github.com/allisson/iot-onboarding/internal/errors"
)

// Bootstrap-key-specific error definitions.
var (
	// ErrBootstrapKeyNotFound indicates the bootstrap key does not exist.
	ErrBootstrapKeyNotFound = errors.Wrap(errors.ErrNotFound, "bootstrap key not found")

	// ErrBootstrapKeyExpired indicates the key's expiry has passed and the requested
	// state change is not allowed.
	ErrBootstrapKeyExpired = errors.Wrap(errors.ErrExpired, "bootstrap key expired")

	// ErrInvalidBootstrapKey indicates the presented secret did not match any usable key.
	// Deliberately indistinguishable from an expired or deactivated key.
	ErrInvalidBootstrapKey = errors.Wrap(errors.ErrUnauthorized, "invalid or expired bootstrap key")
)
