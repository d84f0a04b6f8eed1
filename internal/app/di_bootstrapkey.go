package app

import (
	"fmt"
	"sync"

	bootstrapkeyHTTP "github.com/allisson/iot-onboarding/internal/bootstrapkey/http"
	bootstrapkeyRepository "github.com/allisson/iot-onboarding/internal/bootstrapkey/repository"
	bootstrapkeyService "github.com/allisson/iot-onboarding/internal/bootstrapkey/service"
	bootstrapkeyUseCase "github.com/allisson/iot-onboarding/internal/bootstrapkey/usecase"
)

// bootstrapKeyContainer holds the bootstrap key domain components.
type bootstrapKeyContainer struct {
	secretService bootstrapkeyService.SecretService
	keyRepo       bootstrapkeyUseCase.BootstrapKeyRepository
	keyUseCase    bootstrapkeyUseCase.BootstrapKeyUseCase
	keyValidator  bootstrapkeyUseCase.KeyValidator
	keyHandler    *bootstrapkeyHTTP.BootstrapKeyHandler

	secretServiceInit sync.Once
	keyRepoInit       sync.Once
	keyUseCaseInit    sync.Once
	keyValidatorInit  sync.Once
	keyHandlerInit    sync.Once
}

// SecretService returns the bootstrap secret service instance.
func (c *Container) SecretService() bootstrapkeyService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = bootstrapkeyService.NewSecretService()
	})
	return c.secretService
}

// BootstrapKeyRepository returns the bootstrap key repository instance.
func (c *Container) BootstrapKeyRepository() (bootstrapkeyUseCase.BootstrapKeyRepository, error) {
	c.keyRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["keyRepo"] = fmt.Errorf(
				"failed to get database for bootstrap key repository: %w", err)
			return
		}

		// Select the appropriate repository based on the database driver
		switch c.config.DBDriver {
		case "mysql":
			c.keyRepo = bootstrapkeyRepository.NewMySQLBootstrapKeyRepository(db)
		case "postgres":
			c.keyRepo = bootstrapkeyRepository.NewPostgreSQLBootstrapKeyRepository(db)
		default:
			c.initErrors["keyRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["keyRepo"]; exists {
		return nil, storedErr
	}
	return c.keyRepo, nil
}

// BootstrapKeyUseCase returns the bootstrap key use case instance.
func (c *Container) BootstrapKeyUseCase() (bootstrapkeyUseCase.BootstrapKeyUseCase, error) {
	c.keyUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["keyUseCase"] = fmt.Errorf(
				"failed to get tx manager for bootstrap key use case: %w", err)
			return
		}

		keyRepo, err := c.BootstrapKeyRepository()
		if err != nil {
			c.initErrors["keyUseCase"] = fmt.Errorf(
				"failed to get repository for bootstrap key use case: %w", err)
			return
		}

		useCase := bootstrapkeyUseCase.NewBootstrapKeyUseCase(txManager, keyRepo, c.SecretService())

		// Wrap with metrics if enabled
		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["keyUseCase"] = fmt.Errorf(
					"failed to get business metrics for bootstrap key use case: %w", err)
				return
			}
			useCase = bootstrapkeyUseCase.NewBootstrapKeyUseCaseWithMetrics(useCase, businessMetrics)
		}

		c.keyUseCase = useCase
	})
	if storedErr, exists := c.initErrors["keyUseCase"]; exists {
		return nil, storedErr
	}
	return c.keyUseCase, nil
}

// KeyValidator returns the bootstrap key validator instance.
func (c *Container) KeyValidator() (bootstrapkeyUseCase.KeyValidator, error) {
	c.keyValidatorInit.Do(func() {
		keyRepo, err := c.BootstrapKeyRepository()
		if err != nil {
			c.initErrors["keyValidator"] = fmt.Errorf(
				"failed to get repository for key validator: %w", err)
			return
		}

		validator := bootstrapkeyUseCase.NewKeyValidator(keyRepo, c.SecretService())

		// Wrap with metrics if enabled
		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["keyValidator"] = fmt.Errorf(
					"failed to get business metrics for key validator: %w", err)
				return
			}
			validator = bootstrapkeyUseCase.NewKeyValidatorWithMetrics(validator, businessMetrics)
		}

		c.keyValidator = validator
	})
	if storedErr, exists := c.initErrors["keyValidator"]; exists {
		return nil, storedErr
	}
	return c.keyValidator, nil
}

// BootstrapKeyHandler returns the bootstrap key HTTP handler instance.
func (c *Container) BootstrapKeyHandler() (*bootstrapkeyHTTP.BootstrapKeyHandler, error) {
	c.keyHandlerInit.Do(func() {
		useCase, err := c.BootstrapKeyUseCase()
		if err != nil {
			c.initErrors["keyHandler"] = fmt.Errorf(
				"failed to get use case for bootstrap key handler: %w", err)
			return
		}
		c.keyHandler = bootstrapkeyHTTP.NewBootstrapKeyHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["keyHandler"]; exists {
		return nil, storedErr
	}
	return c.keyHandler, nil
}
