// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
)

// CreateBootstrapKeyResponse contains the result of creating a new bootstrap key.
// SECURITY: The key is only returned once and must be delivered to the device securely.
type CreateBootstrapKeyResponse struct {
	ID        int64      `json:"id"`
	Key       string     `json:"key"` //nolint:gosec // returned once on creation
	KeyHint   string     `json:"key_hint"`
	Group     *string    `json:"group"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsActive  bool       `json:"is_active"`
}

// BootstrapKeyResponse represents a bootstrap key in API responses.
// Neither the plaintext secret nor its hash ever appears here.
type BootstrapKeyResponse struct {
	ID        int64      `json:"id"`
	KeyHint   string     `json:"key_hint"`
	Group     *string    `json:"group"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsActive  bool       `json:"is_active"`
}

// MapBootstrapKeyToResponse converts a domain bootstrap key to an API response.
func MapBootstrapKeyToResponse(key *domain.BootstrapKey) BootstrapKeyResponse {
	return BootstrapKeyResponse{
		ID:        key.ID,
		KeyHint:   key.SecretHint,
		Group:     key.Group,
		CreatedAt: key.CreatedAt,
		ExpiresAt: key.ExpiresAt,
		IsActive:  key.IsActive,
	}
}

// ListBootstrapKeysResponse represents a paginated list of bootstrap keys in API responses.
type ListBootstrapKeysResponse struct {
	Data []BootstrapKeyResponse `json:"data"`
}

// MapBootstrapKeysToListResponse converts a slice of domain keys to a list API response.
func MapBootstrapKeysToListResponse(keys []*domain.BootstrapKey) ListBootstrapKeysResponse {
	keyResponses := make([]BootstrapKeyResponse, 0, len(keys))
	for _, key := range keys {
		keyResponses = append(keyResponses, MapBootstrapKeyToResponse(key))
	}
	return ListBootstrapKeysResponse{
		Data: keyResponses,
	}
}
