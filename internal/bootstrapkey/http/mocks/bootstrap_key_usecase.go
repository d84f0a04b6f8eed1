// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
)

// MockBootstrapKeyUseCase is a mock implementation of BootstrapKeyUseCase for testing.
type MockBootstrapKeyUseCase struct {
	mock.Mock
}

// Create mocks the Create method of BootstrapKeyUseCase.
func (m *MockBootstrapKeyUseCase) Create(
	ctx context.Context,
	input *domain.CreateBootstrapKeyInput,
) (*domain.CreateBootstrapKeyOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateBootstrapKeyOutput), args.Error(1)
}

// Get mocks the Get method of BootstrapKeyUseCase.
func (m *MockBootstrapKeyUseCase) Get(ctx context.Context, id int64) (*domain.BootstrapKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BootstrapKey), args.Error(1)
}

// List mocks the List method of BootstrapKeyUseCase.
func (m *MockBootstrapKeyUseCase) List(
	ctx context.Context,
	limit int,
	offset int,
) ([]*domain.BootstrapKey, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BootstrapKey), args.Error(1)
}

// SetActive mocks the SetActive method of BootstrapKeyUseCase.
func (m *MockBootstrapKeyUseCase) SetActive(
	ctx context.Context,
	id int64,
	isActive bool,
) (*domain.BootstrapKey, error) {
	args := m.Called(ctx, id, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BootstrapKey), args.Error(1)
}

// Delete mocks the Delete method of BootstrapKeyUseCase.
func (m *MockBootstrapKeyUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockKeyValidator is a mock implementation of KeyValidator for testing.
type MockKeyValidator struct {
	mock.Mock
}

// Validate mocks the Validate method of KeyValidator.
func (m *MockKeyValidator) Validate(
	ctx context.Context,
	plainSecret string,
) (*domain.BootstrapKey, error) {
	args := m.Called(ctx, plainSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BootstrapKey), args.Error(1)
}
