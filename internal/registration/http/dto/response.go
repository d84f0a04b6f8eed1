package dto

import (
	fleetDomain "github.com/allisson/iot-onboarding/internal/fleet/domain"
)

// RegisterDeviceResponse represents the identity returned to a freshly registered device.
// The private key is delivered exactly once in this response and is never persisted.
type RegisterDeviceResponse struct {
	CertificatePem string `json:"certificate_pem"`
	PrivateKey     string `json:"private_key"`
	CertificateID  string `json:"certificate_id"`
	ThingName      string `json:"thing_name"`
	ThingArn       string `json:"thing_arn"`
}

// MapIdentityToResponse converts a ProvisionedIdentity to a RegisterDeviceResponse.
func MapIdentityToResponse(identity *fleetDomain.ProvisionedIdentity) *RegisterDeviceResponse {
	return &RegisterDeviceResponse{
		CertificatePem: identity.CertificatePem,
		PrivateKey:     identity.PrivateKey,
		CertificateID:  identity.CertificateID,
		ThingName:      identity.ThingName,
		ThingArn:       identity.ThingArn,
	}
}
