package usecase

import (
	"context"
	"log/slog"

	bootstrapkeyUseCase "github.com/allisson/iot-onboarding/internal/bootstrapkey/usecase"
	"github.com/allisson/iot-onboarding/internal/database"
	fleetDomain "github.com/allisson/iot-onboarding/internal/fleet/domain"
	fleetService "github.com/allisson/iot-onboarding/internal/fleet/service"
)

type registrationUseCase struct {
	txManager    database.TxManager
	keyValidator bootstrapkeyUseCase.KeyValidator
	keyRepo      bootstrapkeyUseCase.BootstrapKeyRepository
	gateway      fleetService.Gateway
	consumeOnUse bool
	logger       *slog.Logger
}

func (r *registrationUseCase) Register(ctx context.Context, presentedSecret, deviceID string) (*fleetDomain.ProvisionedIdentity, error) {
	key, err := r.keyValidator.Validate(ctx, presentedSecret)
	if err != nil {
		return nil, err
	}

	identity, err := r.gateway.ProvisionDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if r.consumeOnUse {
		err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
			return r.keyRepo.SetActive(ctx, key.ID, false)
		})
		if err != nil {
			// The device already holds a valid identity at this point, so the
			// registration is reported as successful. The key stays active
			// until an operator deactivates it.
			r.logger.Error("failed to consume bootstrap key after provisioning",
				"key_id", key.ID,
				"thing_name", identity.ThingName,
				"error", err,
			)
		}
	}

	return identity, nil
}

// NewRegistrationUseCase returns a RegistrationUseCase.
func NewRegistrationUseCase(
	txManager database.TxManager,
	keyValidator bootstrapkeyUseCase.KeyValidator,
	keyRepo bootstrapkeyUseCase.BootstrapKeyRepository,
	gateway fleetService.Gateway,
	consumeOnUse bool,
	logger *slog.Logger,
) RegistrationUseCase {
	return &registrationUseCase{
		txManager:    txManager,
		keyValidator: keyValidator,
		keyRepo:      keyRepo,
		gateway:      gateway,
		consumeOnUse: consumeOnUse,
		logger:       logger,
	}
}
