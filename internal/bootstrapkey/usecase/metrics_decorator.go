package usecase

import (
	"context"
	"time"

	"github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
	"github.com/allisson/iot-onboarding/internal/metrics"
)

// bootstrapKeyUseCaseWithMetrics decorates BootstrapKeyUseCase with metrics instrumentation.
type bootstrapKeyUseCaseWithMetrics struct {
	next    BootstrapKeyUseCase
	metrics metrics.BusinessMetrics
}

// NewBootstrapKeyUseCaseWithMetrics wraps a BootstrapKeyUseCase with metrics recording.
func NewBootstrapKeyUseCaseWithMetrics(
	useCase BootstrapKeyUseCase,
	m metrics.BusinessMetrics,
) BootstrapKeyUseCase {
	return &bootstrapKeyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for key creation operations.
func (b *bootstrapKeyUseCaseWithMetrics) Create(
	ctx context.Context,
	input *domain.CreateBootstrapKeyInput,
) (*domain.CreateBootstrapKeyOutput, error) {
	start := time.Now()
	output, err := b.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	b.metrics.RecordOperation(ctx, "bootstrapkey", "key_create", status)
	b.metrics.RecordDuration(ctx, "bootstrapkey", "key_create", time.Since(start), status)

	return output, err
}

// Get records metrics for key retrieval operations.
func (b *bootstrapKeyUseCaseWithMetrics) Get(
	ctx context.Context,
	id int64,
) (*domain.BootstrapKey, error) {
	start := time.Now()
	key, err := b.next.Get(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	b.metrics.RecordOperation(ctx, "bootstrapkey", "key_get", status)
	b.metrics.RecordDuration(ctx, "bootstrapkey", "key_get", time.Since(start), status)

	return key, err
}

// List records metrics for key listing operations.
func (b *bootstrapKeyUseCaseWithMetrics) List(
	ctx context.Context,
	limit int,
	offset int,
) ([]*domain.BootstrapKey, error) {
	start := time.Now()
	keys, err := b.next.List(ctx, limit, offset)

	status := "success"
	if err != nil {
		status = "error"
	}

	b.metrics.RecordOperation(ctx, "bootstrapkey", "key_list", status)
	b.metrics.RecordDuration(ctx, "bootstrapkey", "key_list", time.Since(start), status)

	return keys, err
}

// SetActive records metrics for key activation state changes.
func (b *bootstrapKeyUseCaseWithMetrics) SetActive(
	ctx context.Context,
	id int64,
	isActive bool,
) (*domain.BootstrapKey, error) {
	start := time.Now()
	key, err := b.next.SetActive(ctx, id, isActive)

	status := "success"
	if err != nil {
		status = "error"
	}

	b.metrics.RecordOperation(ctx, "bootstrapkey", "key_set_active", status)
	b.metrics.RecordDuration(ctx, "bootstrapkey", "key_set_active", time.Since(start), status)

	return key, err
}

// Delete records metrics for key deletion operations.
func (b *bootstrapKeyUseCaseWithMetrics) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := b.next.Delete(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	b.metrics.RecordOperation(ctx, "bootstrapkey", "key_delete", status)
	b.metrics.RecordDuration(ctx, "bootstrapkey", "key_delete", time.Since(start), status)

	return err
}

// keyValidatorWithMetrics decorates KeyValidator with metrics instrumentation.
type keyValidatorWithMetrics struct {
	next    KeyValidator
	metrics metrics.BusinessMetrics
}

// NewKeyValidatorWithMetrics wraps a KeyValidator with metrics recording.
func NewKeyValidatorWithMetrics(validator KeyValidator, m metrics.BusinessMetrics) KeyValidator {
	return &keyValidatorWithMetrics{
		next:    validator,
		metrics: m,
	}
}

// Validate records metrics for secret validation operations.
func (k *keyValidatorWithMetrics) Validate(
	ctx context.Context,
	plainSecret string,
) (*domain.BootstrapKey, error) {
	start := time.Now()
	key, err := k.next.Validate(ctx, plainSecret)

	status := "success"
	if err != nil {
		status = "error"
	}

	k.metrics.RecordOperation(ctx, "bootstrapkey", "key_validate", status)
	k.metrics.RecordDuration(ctx, "bootstrapkey", "key_validate", time.Since(start), status)

	return key, err
}
