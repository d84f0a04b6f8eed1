package app

import (
	"context"
	"fmt"
	"sync"

	fleetHTTP "github.com/allisson/iot-onboarding/internal/fleet/http"
	fleetService "github.com/allisson/iot-onboarding/internal/fleet/service"
)

// fleetContainer holds the fleet domain components.
type fleetContainer struct {
	gateway       fleetService.Gateway
	deviceHandler *fleetHTTP.DeviceHandler

	gatewayInit       sync.Once
	deviceHandlerInit sync.Once
}

// Gateway returns the fleet provisioning gateway instance.
func (c *Container) Gateway(ctx context.Context) (fleetService.Gateway, error) {
	c.gatewayInit.Do(func() {
		gateway, err := fleetService.NewIoTGateway(ctx, c.config, c.Logger())
		if err != nil {
			c.initErrors["gateway"] = fmt.Errorf("failed to create fleet gateway: %w", err)
			return
		}

		var wrapped fleetService.Gateway = gateway

		// Wrap with metrics if enabled
		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["gateway"] = fmt.Errorf(
					"failed to get business metrics for fleet gateway: %w", err)
				return
			}
			wrapped = fleetService.NewGatewayWithMetrics(wrapped, businessMetrics)
		}

		c.gateway = wrapped
	})
	if storedErr, exists := c.initErrors["gateway"]; exists {
		return nil, storedErr
	}
	return c.gateway, nil
}

// DeviceHandler returns the fleet HTTP handler instance.
func (c *Container) DeviceHandler(ctx context.Context) (*fleetHTTP.DeviceHandler, error) {
	c.deviceHandlerInit.Do(func() {
		gateway, err := c.Gateway(ctx)
		if err != nil {
			c.initErrors["deviceHandler"] = fmt.Errorf(
				"failed to get gateway for device handler: %w", err)
			return
		}
		c.deviceHandler = fleetHTTP.NewDeviceHandler(gateway, c.Logger())
	})
	if storedErr, exists := c.initErrors["deviceHandler"]; exists {
		return nil, storedErr
	}
	return c.deviceHandler, nil
}
