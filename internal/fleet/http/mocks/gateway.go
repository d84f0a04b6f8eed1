// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/iot-onboarding/internal/fleet/domain"
)

// MockGateway is a mock implementation of the device registry Gateway for testing.
type MockGateway struct {
	mock.Mock
}

// ProvisionDevice mocks the ProvisionDevice method of Gateway.
func (m *MockGateway) ProvisionDevice(
	ctx context.Context,
	deviceID string,
) (*domain.ProvisionedIdentity, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProvisionedIdentity), args.Error(1)
}

// ListDevices mocks the ListDevices method of Gateway.
func (m *MockGateway) ListDevices(ctx context.Context) ([]*domain.Device, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Device), args.Error(1)
}

// RevokeCertificate mocks the RevokeCertificate method of Gateway.
func (m *MockGateway) RevokeCertificate(ctx context.Context, certificateID string) error {
	args := m.Called(ctx, certificateID)
	return args.Error(0)
}
