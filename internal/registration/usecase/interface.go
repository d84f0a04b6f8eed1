// Package usecase implements the device registration flow: bootstrap secret
// validation, identity provisioning, and single-use key consumption.
package usecase

import (
	"context"

	fleetDomain "github.com/allisson/iot-onboarding/internal/fleet/domain"
)

// RegistrationUseCase defines the interface for the device registration flow.
type RegistrationUseCase interface {
	// Register exchanges a valid bootstrap secret for a full device identity.
	// Authentication failures return ErrInvalidBootstrapKey before any gateway
	// call; gateway failures leave the bootstrap key untouched.
	Register(ctx context.Context, presentedSecret, deviceID string) (*fleetDomain.ProvisionedIdentity, error)
}
