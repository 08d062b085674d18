// Package sandboxmock has mocks for the sandbox package.
package sandboxmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wardenhq/warden/internal/model"
)

// MockEngine is a mock implementation of sandbox.Engine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Check(ctx context.Context) []model.CheckResult {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]model.CheckResult)
	return res
}

func (m *MockEngine) CreateContainer(ctx context.Context, req model.CreateContainerRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockEngine) Exec(ctx context.Context, req model.ExecRequest) (*model.ExecResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*model.ExecResult)
	return res, args.Error(1)
}

func (m *MockEngine) UploadCredentials(ctx context.Context, containerID string, plan model.CredentialUploadPlan) (*model.CredentialUploadResult, error) {
	args := m.Called(ctx, containerID, plan)
	res, _ := args.Get(0).(*model.CredentialUploadResult)
	return res, args.Error(1)
}

func (m *MockEngine) RemoveContainer(ctx context.Context, containerID string) error {
	args := m.Called(ctx, containerID)
	return args.Error(0)
}
