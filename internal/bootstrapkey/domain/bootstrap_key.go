// Package domain defines the core domain models for bootstrap key management.
// A bootstrap key is a single-use onboarding credential whose plaintext is shown
// exactly once at creation time; only an Argon2id hash and a short hint are stored.
package domain

import (
	"time"
)

// BootstrapKey represents a provisioning credential handed to a device before it
// has an X.509 identity.
type BootstrapKey struct {
	// ID is the store-assigned identifier, monotonically increasing with creation order.
	ID int64
	// SecretHash is the Argon2id hash of the plaintext secret. The plaintext itself
	// is never persisted.
	SecretHash string `json:"-"`
	// SecretHint holds the last four characters of the plaintext secret so operators
	// can correlate a key in hand with a stored record.
	SecretHint string
	// Group is an optional operator label for fleet segmentation (nil if unset).
	Group *string
	// CreatedAt is the UTC timestamp when the key was created.
	CreatedAt time.Time
	// ExpiresAt is the UTC timestamp after which the key stops validating.
	// A nil value means the key never expires.
	ExpiresAt *time.Time
	// IsActive reports whether the key is currently armed for use.
	IsActive bool
}

// CreateBootstrapKeyInput holds operator-provided fields for key creation.
type CreateBootstrapKeyInput struct {
	// Group is an optional operator label for fleet segmentation.
	Group *string
	// ExpiresInDays is the key lifetime in days starting at creation.
	// Zero selects the default lifetime.
	ExpiresInDays int
}

// CreateBootstrapKeyOutput carries the result of key creation, including the
// plaintext secret. This is the only moment the plaintext is available.
type CreateBootstrapKeyOutput struct {
	Key *BootstrapKey
	// PlainSecret is the one-time-revealed bootstrap secret.
	PlainSecret string
}

// IsExpired reports whether the key's expiry has passed at the given instant.
// Keys without an expiry never expire.
func (b *BootstrapKey) IsExpired(now time.Time) bool {
	if b.ExpiresAt == nil {
		return false
	}
	return !now.Before(*b.ExpiresAt)
}

// IsUsable reports whether the key may authenticate a registration at the given
// instant. A key is usable only when it is active and not expired.
func (b *BootstrapKey) IsUsable(now time.Time) bool {
	return b.IsActive && !b.IsExpired(now)
}
