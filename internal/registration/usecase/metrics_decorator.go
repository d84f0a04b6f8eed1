package usecase

import (
	"context"
	"time"

	fleetDomain "github.com/allisson/iot-onboarding/internal/fleet/domain"
	"github.com/allisson/iot-onboarding/internal/metrics"
)

// registrationUseCaseWithMetrics decorates RegistrationUseCase with metrics instrumentation.
type registrationUseCaseWithMetrics struct {
	next    RegistrationUseCase
	metrics metrics.BusinessMetrics
}

// NewRegistrationUseCaseWithMetrics wraps a RegistrationUseCase with metrics recording.
func NewRegistrationUseCaseWithMetrics(
	useCase RegistrationUseCase,
	m metrics.BusinessMetrics,
) RegistrationUseCase {
	return &registrationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for device registration operations.
func (r *registrationUseCaseWithMetrics) Register(
	ctx context.Context,
	presentedSecret string,
	deviceID string,
) (*fleetDomain.ProvisionedIdentity, error) {
	start := time.Now()
	identity, err := r.next.Register(ctx, presentedSecret, deviceID)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "registration", "device_register", status)
	r.metrics.RecordDuration(ctx, "registration", "device_register", time.Since(start), status)

	return identity, err
}
