package exec_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden/internal/app/exec"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/sandbox/sandboxmock"
	"github.com/wardenhq/warden/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		cfg    exec.ServiceConfig
		expErr bool
	}{
		"Valid configuration should create service successfully": {
			cfg: exec.ServiceConfig{
				Engine:     &sandboxmock.MockEngine{},
				Repository: &storagemock.MockRepository{},
			},
			expErr: false,
		},

		"Missing engine should fail": {
			cfg: exec.ServiceConfig{
				Repository: &storagemock.MockRepository{},
			},
			expErr: true,
		},

		"Missing repository should fail": {
			cfg: exec.ServiceConfig{
				Engine: &sandboxmock.MockEngine{},
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			svc, err := exec.NewService(test.cfg)

			if test.expErr {
				assert.Error(err)
				assert.Nil(svc)
			} else {
				assert.NoError(err)
				assert.NotNil(svc)
			}
		})
	}
}

func TestServiceRun(t *testing.T) {
	runningSandbox := &model.Sandbox{
		ID:          "id-1",
		Name:        "otter",
		ContainerID: "container-1",
		Status:      model.SandboxStatusRunning,
	}

	tests := map[string]struct {
		req    exec.Request
		mock   func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository)
		expRes *model.ExecResult
		expErr bool
	}{
		"Executing attached on a running sandbox should succeed": {
			req: exec.Request{
				NameOrID: "otter",
				Command:  []string{"echo", "hello"},
			},
			mock: func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {
				mRepo.On("GetSandboxByName", mock.Anything, "otter").Once().Return(runningSandbox, nil)
				mEngine.On("Exec", mock.Anything, mock.MatchedBy(func(req model.ExecRequest) bool {
					return req.ContainerID == "container-1" && req.Mode == model.ExecModeAttached
				})).Once().Return(&model.ExecResult{ExecID: "e1", ExitCode: 0}, nil)
			},
			expRes: &model.ExecResult{ExecID: "e1", ExitCode: 0},
		},

		"A non-zero exit code is a success carrying the code": {
			req: exec.Request{
				NameOrID: "otter",
				Command:  []string{"false"},
				Detached: true,
			},
			mock: func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {
				mRepo.On("GetSandboxByName", mock.Anything, "otter").Once().Return(runningSandbox, nil)
				mEngine.On("Exec", mock.Anything, mock.MatchedBy(func(req model.ExecRequest) bool {
					return req.Mode == model.ExecModeDetached
				})).Once().Return(&model.ExecResult{ExecID: "e2", ExitCode: 1}, nil)
			},
			expRes: &model.ExecResult{ExecID: "e2", ExitCode: 1},
		},

		"An unknown name should fall back to ID lookup": {
			req: exec.Request{
				NameOrID: "id-1",
				Command:  []string{"true"},
			},
			mock: func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {
				mRepo.On("GetSandboxByName", mock.Anything, "id-1").Once().Return(nil, fmt.Errorf("nope: %w", model.ErrNotFound))
				mRepo.On("GetSandbox", mock.Anything, "id-1").Once().Return(runningSandbox, nil)
				mEngine.On("Exec", mock.Anything, mock.Anything).Once().Return(&model.ExecResult{ExecID: "e3"}, nil)
			},
			expRes: &model.ExecResult{ExecID: "e3"},
		},

		"A missing sandbox should fail": {
			req: exec.Request{
				NameOrID: "ghost",
				Command:  []string{"true"},
			},
			mock: func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {
				mRepo.On("GetSandboxByName", mock.Anything, "ghost").Once().Return(nil, fmt.Errorf("nope: %w", model.ErrNotFound))
				mRepo.On("GetSandbox", mock.Anything, "ghost").Once().Return(nil, fmt.Errorf("nope: %w", model.ErrNotFound))
			},
			expErr: true,
		},

		"A stopped sandbox should fail": {
			req: exec.Request{
				NameOrID: "otter",
				Command:  []string{"true"},
			},
			mock: func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {
				stopped := *runningSandbox
				stopped.Status = model.SandboxStatusStopped
				mRepo.On("GetSandboxByName", mock.Anything, "otter").Once().Return(&stopped, nil)
			},
			expErr: true,
		},

		"An engine failure should be propagated": {
			req: exec.Request{
				NameOrID: "otter",
				Command:  []string{"true"},
			},
			mock: func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {
				mRepo.On("GetSandboxByName", mock.Anything, "otter").Once().Return(runningSandbox, nil)
				mEngine.On("Exec", mock.Anything, mock.Anything).Once().
					Return(nil, model.ExecFailedError{ContainerID: "container-1", Message: "boom"})
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mEngine := &sandboxmock.MockEngine{}
			mRepo := &storagemock.MockRepository{}
			test.mock(mEngine, mRepo)

			svc, err := exec.NewService(exec.ServiceConfig{Engine: mEngine, Repository: mRepo})
			require.NoError(err)

			res, err := svc.Run(context.TODO(), test.req)

			if test.expErr {
				assert.Error(err)
			} else {
				require.NoError(err)
				assert.Equal(test.expRes, res)
			}
			mEngine.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}
