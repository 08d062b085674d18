package credsinject_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden/internal/app/credsinject"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/sandbox/sandboxmock"
	"github.com/wardenhq/warden/internal/storage/storagemock"
)

type plannerFunc func(copyClaude, copyCodex bool) (*model.CredentialUploadPlan, error)

func (f plannerFunc) Plan(copyClaude, copyCodex bool) (*model.CredentialUploadPlan, error) {
	return f(copyClaude, copyCodex)
}

func TestServiceRun(t *testing.T) {
	runningSandbox := &model.Sandbox{
		ID:          "id-1",
		Name:        "otter",
		ContainerID: "container-1",
		Status:      model.SandboxStatusRunning,
	}

	tests := map[string]struct {
		req     credsinject.Request
		planner credsinject.CredentialPlanner
		mock    func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository)
		expRes  *model.CredentialUploadResult
		expErr  bool
	}{
		"Injecting selected credentials into a running sandbox should succeed": {
			req: credsinject.Request{
				NameOrID: "otter",
				Options:  model.CredentialOptions{CopyClaude: true, CopyCodex: true},
			},
			planner: plannerFunc(func(copyClaude, copyCodex bool) (*model.CredentialUploadPlan, error) {
				return &model.CredentialUploadPlan{
					Archive:                []byte("tar"),
					ExpectedContainerPaths: []string{"/root/.claude", "/root/.codex"},
				}, nil
			}),
			mock: func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {
				mRepo.On("GetSandboxByName", mock.Anything, "otter").Once().Return(runningSandbox, nil)
				mEngine.On("UploadCredentials", mock.Anything, "container-1", mock.Anything).Once().
					Return(&model.CredentialUploadResult{ExpectedContainerPaths: []string{"/root/.claude", "/root/.codex"}}, nil)
			},
			expRes: &model.CredentialUploadResult{ExpectedContainerPaths: []string{"/root/.claude", "/root/.codex"}},
		},

		"Selecting no source should fail before any lookup": {
			req: credsinject.Request{NameOrID: "otter"},
			planner: plannerFunc(func(bool, bool) (*model.CredentialUploadPlan, error) {
				return &model.CredentialUploadPlan{}, nil
			}),
			mock:   func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {},
			expErr: true,
		},

		"A stopped sandbox should fail": {
			req: credsinject.Request{
				NameOrID: "otter",
				Options:  model.CredentialOptions{CopyClaude: true},
			},
			planner: plannerFunc(func(bool, bool) (*model.CredentialUploadPlan, error) {
				return &model.CredentialUploadPlan{}, nil
			}),
			mock: func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {
				stopped := *runningSandbox
				stopped.Status = model.SandboxStatusStopped
				mRepo.On("GetSandboxByName", mock.Anything, "otter").Once().Return(&stopped, nil)
			},
			expErr: true,
		},

		"A planner failure should be propagated": {
			req: credsinject.Request{
				NameOrID: "otter",
				Options:  model.CredentialOptions{CopyClaude: true},
			},
			planner: plannerFunc(func(bool, bool) (*model.CredentialUploadPlan, error) {
				return nil, fmt.Errorf("home is unreadable")
			}),
			mock: func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {
				mRepo.On("GetSandboxByName", mock.Anything, "otter").Once().Return(runningSandbox, nil)
			},
			expErr: true,
		},

		"An upload failure should be propagated": {
			req: credsinject.Request{
				NameOrID: "otter",
				Options:  model.CredentialOptions{CopyCodex: true},
			},
			planner: plannerFunc(func(bool, bool) (*model.CredentialUploadPlan, error) {
				return &model.CredentialUploadPlan{Archive: []byte("tar")}, nil
			}),
			mock: func(mEngine *sandboxmock.MockEngine, mRepo *storagemock.MockRepository) {
				mRepo.On("GetSandboxByName", mock.Anything, "otter").Once().Return(runningSandbox, nil)
				mEngine.On("UploadCredentials", mock.Anything, "container-1", mock.Anything).Once().
					Return(nil, model.UploadFailedError{ContainerID: "container-1", Message: "sealed"})
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

			svc, err := credsinject.NewService(credsinject.ServiceConfig{
				Engine:     mEngine,
				Repository: mRepo,
				Planner:    test.planner,
			})
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
