// Package mocks contains mock implementations for registration HTTP handler testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	fleetDomain "github.com/allisson/iot-onboarding/internal/fleet/domain"
)

// MockRegistrationUseCase is a mock implementation of usecase.RegistrationUseCase.
type MockRegistrationUseCase struct {
	mock.Mock
}

// Register mocks the Register method.
func (m *MockRegistrationUseCase) Register(
	ctx context.Context,
	presentedSecret string,
	deviceID string,
) (*fleetDomain.ProvisionedIdentity, error) {
	args := m.Called(ctx, presentedSecret, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleetDomain.ProvisionedIdentity), args.Error(1)
}
