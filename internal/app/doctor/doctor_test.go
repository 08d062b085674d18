package doctor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden/internal/app/doctor"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/sandbox/sandboxmock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock   func(mEngine *sandboxmock.MockEngine)
		expRes []model.CheckResult
	}{
		"A healthy engine should yield OK checks": {
			mock: func(mEngine *sandboxmock.MockEngine) {
				mEngine.On("Check", mock.Anything).Once().Return([]model.CheckResult{
					{ID: "engine_ping", Message: "engine answered the liveness probe", Status: model.CheckStatusOK},
				})
			},
			expRes: []model.CheckResult{
				{ID: "engine_ping", Message: "engine answered the liveness probe", Status: model.CheckStatusOK},
			},
		},

		"A broken engine should yield error checks, not a failure": {
			mock: func(mEngine *sandboxmock.MockEngine) {
				mEngine.On("Check", mock.Anything).Once().Return([]model.CheckResult{
					{ID: "engine_ping", Message: "engine did not answer the liveness probe: gone", Status: model.CheckStatusError},
				})
			},
			expRes: []model.CheckResult{
				{ID: "engine_ping", Message: "engine did not answer the liveness probe: gone", Status: model.CheckStatusError},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mEngine := &sandboxmock.MockEngine{}
			test.mock(mEngine)

			svc, err := doctor.NewService(doctor.ServiceConfig{Engine: mEngine})
			require.NoError(err)

			results := svc.Run(context.TODO())

			assert.Equal(test.expRes, results)
			mEngine.AssertExpectations(t)
		})
	}
}
