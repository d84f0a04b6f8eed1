package app

import (
	"context"
	"fmt"
	"sync"

	registrationHTTP "github.com/allisson/iot-onboarding/internal/registration/http"
	registrationUseCase "github.com/allisson/iot-onboarding/internal/registration/usecase"
)

// registrationContainer holds the registration domain components.
type registrationContainer struct {
	registrationUC      registrationUseCase.RegistrationUseCase
	registrationHandler *registrationHTTP.RegistrationHandler

	registrationUCInit      sync.Once
	registrationHandlerInit sync.Once
}

// RegistrationUseCase returns the device registration use case instance.
func (c *Container) RegistrationUseCase(ctx context.Context) (registrationUseCase.RegistrationUseCase, error) {
	c.registrationUCInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["registrationUseCase"] = fmt.Errorf(
				"failed to get tx manager for registration use case: %w", err)
			return
		}

		keyValidator, err := c.KeyValidator()
		if err != nil {
			c.initErrors["registrationUseCase"] = fmt.Errorf(
				"failed to get key validator for registration use case: %w", err)
			return
		}

		keyRepo, err := c.BootstrapKeyRepository()
		if err != nil {
			c.initErrors["registrationUseCase"] = fmt.Errorf(
				"failed to get repository for registration use case: %w", err)
			return
		}

		gateway, err := c.Gateway(ctx)
		if err != nil {
			c.initErrors["registrationUseCase"] = fmt.Errorf(
				"failed to get gateway for registration use case: %w", err)
			return
		}

		useCase := registrationUseCase.NewRegistrationUseCase(
			txManager,
			keyValidator,
			keyRepo,
			gateway,
			c.config.BootstrapKeyConsumeOnUse,
			c.Logger(),
		)

		// Wrap with metrics if enabled
		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["registrationUseCase"] = fmt.Errorf(
					"failed to get business metrics for registration use case: %w", err)
				return
			}
			useCase = registrationUseCase.NewRegistrationUseCaseWithMetrics(useCase, businessMetrics)
		}

		c.registrationUC = useCase
	})
	if storedErr, exists := c.initErrors["registrationUseCase"]; exists {
		return nil, storedErr
	}
	return c.registrationUC, nil
}

// RegistrationHandler returns the registration HTTP handler instance.
func (c *Container) RegistrationHandler(ctx context.Context) (*registrationHTTP.RegistrationHandler, error) {
	c.registrationHandlerInit.Do(func() {
		useCase, err := c.RegistrationUseCase(ctx)
		if err != nil {
			c.initErrors["registrationHandler"] = fmt.Errorf(
				"failed to get use case for registration handler: %w", err)
			return
		}
		c.registrationHandler = registrationHTTP.NewRegistrationHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["registrationHandler"]; exists {
		return nil, storedErr
	}
	return c.registrationHandler, nil
}
