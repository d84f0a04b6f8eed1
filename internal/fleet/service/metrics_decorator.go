package service

import (
	"context"
	"time"

	"github.com/allisson/iot-onboarding/internal/fleet/domain"
	"github.com/allisson/iot-onboarding/internal/metrics"
)

// gatewayWithMetrics decorates Gateway with metrics instrumentation.
type gatewayWithMetrics struct {
	next    Gateway
	metrics metrics.BusinessMetrics
}

// NewGatewayWithMetrics wraps a Gateway with metrics recording.
func NewGatewayWithMetrics(gateway Gateway, m metrics.BusinessMetrics) Gateway {
	return &gatewayWithMetrics{
		next:    gateway,
		metrics: m,
	}
}

// ProvisionDevice records metrics for device provisioning operations.
func (g *gatewayWithMetrics) ProvisionDevice(
	ctx context.Context,
	deviceID string,
) (*domain.ProvisionedIdentity, error) {
	start := time.Now()
	identity, err := g.next.ProvisionDevice(ctx, deviceID)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "fleet", "device_provision", status)
	g.metrics.RecordDuration(ctx, "fleet", "device_provision", time.Since(start), status)

	return identity, err
}

// ListDevices records metrics for fleet listing operations.
func (g *gatewayWithMetrics) ListDevices(ctx context.Context) ([]*domain.Device, error) {
	start := time.Now()
	devices, err := g.next.ListDevices(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "fleet", "device_list", status)
	g.metrics.RecordDuration(ctx, "fleet", "device_list", time.Since(start), status)

	return devices, err
}

// RevokeCertificate records metrics for certificate revocation operations.
func (g *gatewayWithMetrics) RevokeCertificate(ctx context.Context, certificateID string) error {
	start := time.Now()
	err := g.next.RevokeCertificate(ctx, certificateID)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "fleet", "certificate_revoke", status)
	g.metrics.RecordDuration(ctx, "fleet", "certificate_revoke", time.Since(start), status)

	return err
}
