// Package domain defines the core domain models for fleet management.
// A device's operational identity lives in AWS IoT Core; this service holds no
// local copy, so every fleet read reflects the registry directly.
package domain

// Device represents a registered thing in the device registry.
type Device struct {
	ThingName  string
	ThingArn   string
	Attributes map[string]string
}

// ProvisionedIdentity carries the full X.509 identity minted for a device.
// The private key exists only in this value and the registration response;
// it is never persisted.
type ProvisionedIdentity struct {
	CertificatePem string
	PrivateKey     string `json:"-"`
	CertificateID  string
	ThingName      string
	ThingArn       string
}
