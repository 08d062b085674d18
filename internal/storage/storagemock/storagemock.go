// Package storagemock has mocks for the storage package.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wardenhq/warden/internal/model"
)

// MockRepository is a mock implementation of storage.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateSandbox(ctx context.Context, s model.Sandbox) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) GetSandbox(ctx context.Context, id string) (*model.Sandbox, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*model.Sandbox)
	return res, args.Error(1)
}

func (m *MockRepository) GetSandboxByName(ctx context.Context, name string) (*model.Sandbox, error) {
	args := m.Called(ctx, name)
	res, _ := args.Get(0).(*model.Sandbox)
	return res, args.Error(1)
}

func (m *MockRepository) ListSandboxes(ctx context.Context) ([]model.Sandbox, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]model.Sandbox)
	return res, args.Error(1)
}

func (m *MockRepository) UpdateSandbox(ctx context.Context, s model.Sandbox) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) DeleteSandbox(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
