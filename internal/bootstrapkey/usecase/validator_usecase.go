package usecase

import (
	"context"
	"time"

	"github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
	"github.com/allisson/iot-onboarding/internal/bootstrapkey/service"
)

// keyValidator implements KeyValidator using hint-narrowed candidate lookup.
//
// The stored hint (last characters of the plaintext) narrows the candidate set
// to a handful of rows before the slow Argon2id verification runs, so validation
// cost stays flat as the key population grows.
type keyValidator struct {
	keyRepo       BootstrapKeyRepository
	secretService service.SecretService
}

// Validate checks a presented plaintext secret against stored usable keys.
// Returns the matching key, or ErrInvalidBootstrapKey when nothing matches.
// The error is uniform across unknown, expired, and deactivated keys so the
// response never leaks which case applied. Validate never mutates state;
// consumption on successful registration is the caller's decision.
func (k *keyValidator) Validate(
	ctx context.Context,
	plainSecret string,
) (*domain.BootstrapKey, error) {
	if plainSecret == "" {
		return nil, domain.ErrInvalidBootstrapKey
	}

	hint := k.secretService.Hint(plainSecret)
	candidates, err := k.keyRepo.ListActiveByHint(ctx, hint)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, key := range candidates {
		if !key.IsUsable(now) {
			continue
		}
		if k.secretService.CompareSecret(plainSecret, key.SecretHash) {
			return key, nil
		}
	}

	return nil, domain.ErrInvalidBootstrapKey
}

// NewKeyValidator creates a new KeyValidator with the provided dependencies.
func NewKeyValidator(
	keyRepo BootstrapKeyRepository,
	secretService service.SecretService,
) KeyValidator {
	return &keyValidator{
		keyRepo:       keyRepo,
		secretService: secretService,
	}
}
