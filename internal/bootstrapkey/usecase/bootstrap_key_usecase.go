package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
	"github.com/allisson/iot-onboarding/internal/bootstrapkey/service"
	"github.com/allisson/iot-onboarding/internal/database"
	apperrors "github.com/allisson/iot-onboarding/internal/errors"
)

const (
	defaultExpiresInDays = 30
	maxExpiresInDays     = 365
)

// bootstrapKeyUseCase implements BootstrapKeyUseCase for managing onboarding credentials.
type bootstrapKeyUseCase struct {
	txManager     database.TxManager
	keyRepo       BootstrapKeyRepository
	secretService service.SecretService
}

// Create generates and persists a new BootstrapKey with a random secret.
// Returns the stored key and the plain text secret. The plain secret is only
// returned once and must be securely delivered to the device by the caller.
func (b *bootstrapKeyUseCase) Create(
	ctx context.Context,
	input *domain.CreateBootstrapKeyInput,
) (*domain.CreateBootstrapKeyOutput, error) {
	expiresInDays := input.ExpiresInDays
	if expiresInDays == 0 {
		expiresInDays = defaultExpiresInDays
	}
	if expiresInDays < 1 || expiresInDays > maxExpiresInDays {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("expires_in_days must be between 1 and %d", maxExpiresInDays),
		)
	}

	// Generate a secure random secret
	plainSecret, hashedSecret, err := b.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(expiresInDays) * 24 * time.Hour)

	key := &domain.BootstrapKey{
		SecretHash: hashedSecret,
		SecretHint: b.secretService.Hint(plainSecret),
		Group:      input.Group,
		CreatedAt:  now,
		ExpiresAt:  &expiresAt,
		IsActive:   true,
	}

	if err := b.keyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	return &domain.CreateBootstrapKeyOutput{
		Key:         key,
		PlainSecret: plainSecret,
	}, nil
}

// Get retrieves a bootstrap key by ID.
// Returns ErrBootstrapKeyNotFound if the key doesn't exist.
func (b *bootstrapKeyUseCase) Get(ctx context.Context, id int64) (*domain.BootstrapKey, error) {
	return b.keyRepo.Get(ctx, id)
}

// List retrieves bootstrap keys ordered by ID descending with pagination support.
// Returns empty slice if no keys found.
func (b *bootstrapKeyUseCase) List(
	ctx context.Context,
	limit int,
	offset int,
) ([]*domain.BootstrapKey, error) {
	return b.keyRepo.List(ctx, limit, offset)
}

// SetActive arms or disarms a bootstrap key and returns its updated state.
// Re-arming a key whose expiry has passed is rejected with ErrBootstrapKeyExpired:
// expired credentials stay dead, the operator must mint a new one.
func (b *bootstrapKeyUseCase) SetActive(
	ctx context.Context,
	id int64,
	isActive bool,
) (*domain.BootstrapKey, error) {
	var key *domain.BootstrapKey

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		key, err = b.keyRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if isActive && key.IsExpired(time.Now().UTC()) {
			return domain.ErrBootstrapKeyExpired
		}

		if key.IsActive == isActive {
			return nil
		}

		if err := b.keyRepo.SetActive(ctx, id, isActive); err != nil {
			return err
		}
		key.IsActive = isActive
		return nil
	})
	if err != nil {
		return nil, err
	}

	return key, nil
}

// Delete permanently removes a bootstrap key.
// Returns ErrBootstrapKeyNotFound if the key doesn't exist.
func (b *bootstrapKeyUseCase) Delete(ctx context.Context, id int64) error {
	return b.keyRepo.Delete(ctx, id)
}

// NewBootstrapKeyUseCase creates a new BootstrapKeyUseCase with the provided dependencies.
func NewBootstrapKeyUseCase(
	txManager database.TxManager,
	keyRepo BootstrapKeyRepository,
	secretService service.SecretService,
) BootstrapKeyUseCase {
	return &bootstrapKeyUseCase{
		txManager:     txManager,
		keyRepo:       keyRepo,
		secretService: secretService,
	}
}
