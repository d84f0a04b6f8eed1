// Package usecase implements business logic orchestration for bootstrap key
// lifecycle management and secret validation.
package usecase

import (
	"context"

	"github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
)

// BootstrapKeyRepository defines the interface for BootstrapKey persistence operations.
type BootstrapKeyRepository interface {
	Create(ctx context.Context, key *domain.BootstrapKey) error
	Get(ctx context.Context, id int64) (*domain.BootstrapKey, error)
	List(ctx context.Context, limit int, offset int) ([]*domain.BootstrapKey, error)
	ListActiveByHint(ctx context.Context, hint string) ([]*domain.BootstrapKey, error)
	SetActive(ctx context.Context, id int64, isActive bool) error
	Delete(ctx context.Context, id int64) error
}

// BootstrapKeyUseCase defines the interface for bootstrap key lifecycle management.
type BootstrapKeyUseCase interface {
	// Create generates a new bootstrap key and returns it together with the
	// plaintext secret. The plaintext is revealed exactly once.
	Create(ctx context.Context, input *domain.CreateBootstrapKeyInput) (*domain.CreateBootstrapKeyOutput, error)
	Get(ctx context.Context, id int64) (*domain.BootstrapKey, error)
	List(ctx context.Context, limit int, offset int) ([]*domain.BootstrapKey, error)
	// SetActive arms or disarms a key. Re-arming an expired key is rejected.
	SetActive(ctx context.Context, id int64, isActive bool) (*domain.BootstrapKey, error)
	Delete(ctx context.Context, id int64) error
}

// KeyValidator defines the interface for validating presented bootstrap secrets.
type KeyValidator interface {
	// Validate checks a plaintext secret against the stored usable keys and
	// returns the matching key. Returns ErrInvalidBootstrapKey when no usable
	// key matches; the error never distinguishes unknown, expired, and
	// deactivated keys. Validate has no side effects.
	Validate(ctx context.Context, plainSecret string) (*domain.BootstrapKey, error)
}
