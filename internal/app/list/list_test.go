package list_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden/internal/app/list"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	running := model.Sandbox{ID: "id-1", Name: "otter", Status: model.SandboxStatusRunning}
	stopped := model.Sandbox{ID: "id-2", Name: "beaver", Status: model.SandboxStatusStopped}
	statusRunning := model.SandboxStatusRunning

	tests := map[string]struct {
		req    list.Request
		mock   func(mRepo *storagemock.MockRepository)
		expRes []model.Sandbox
		expErr bool
	}{
		"Listing without filter should return everything": {
			req: list.Request{},
			mock: func(mRepo *storagemock.MockRepository) {
				mRepo.On("ListSandboxes", mock.Anything).Once().Return([]model.Sandbox{running, stopped}, nil)
			},
			expRes: []model.Sandbox{running, stopped},
		},

		"Listing with a status filter should narrow the result": {
			req: list.Request{StatusFilter: &statusRunning},
			mock: func(mRepo *storagemock.MockRepository) {
				mRepo.On("ListSandboxes", mock.Anything).Once().Return([]model.Sandbox{running, stopped}, nil)
			},
			expRes: []model.Sandbox{running},
		},

		"A repository failure should be propagated": {
			req: list.Request{},
			mock: func(mRepo *storagemock.MockRepository) {
				mRepo.On("ListSandboxes", mock.Anything).Once().Return(nil, fmt.Errorf("db is locked"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mRepo := &storagemock.MockRepository{}
			test.mock(mRepo)

			svc, err := list.NewService(list.ServiceConfig{Repository: mRepo})
			require.NoError(err)

			res, err := svc.Run(context.TODO(), test.req)

			if test.expErr {
				assert.Error(err)
			} else {
				require.NoError(err)
				assert.Equal(test.expRes, res)
			}
			mRepo.AssertExpectations(t)
		})
	}
}
