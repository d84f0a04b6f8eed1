// Package service implements the gateway to the AWS IoT Core device registry.
package service

import (
	"context"

	"github.com/allisson/iot-onboarding/internal/fleet/domain"
)

// Gateway defines the operations this service needs from the device registry.
// The AWS implementation talks to IoT Core; tests substitute a mock.
type Gateway interface {
	// ProvisionDevice mints a certificate with a fresh key pair, ensures a
	// thing exists for the device, and wires certificate, thing, and policy
	// together. Re-provisioning an existing device reuses its thing and
	// attaches a new certificate alongside any previous ones.
	ProvisionDevice(ctx context.Context, deviceID string) (*domain.ProvisionedIdentity, error)

	// ListDevices returns every registered thing, following registry pagination.
	ListDevices(ctx context.Context) ([]*domain.Device, error)

	// RevokeCertificate marks a certificate REVOKED and detaches it from all
	// things it is attached to. The certificate itself is kept for audit.
	RevokeCertificate(ctx context.Context, certificateID string) error
}
