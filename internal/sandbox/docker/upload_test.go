package docker_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/sandbox/docker"
	"github.com/wardenhq/warden/internal/sandbox/docker/dockermock"
)

func TestEngineUploadCredentials(t *testing.T) {
	tests := map[string]struct {
		plan   model.CredentialUploadPlan
		mock   func(m *dockermock.MockClient)
		expRes *model.CredentialUploadResult
		expErr error
	}{
		"An empty plan should succeed without touching the engine": {
			plan:   model.CredentialUploadPlan{},
			mock:   func(m *dockermock.MockClient) {},
			expRes: &model.CredentialUploadResult{},
		},

		"A plan with one source should upload the archive in a single call": {
			plan: model.CredentialUploadPlan{
				Archive:                []byte("tar-bytes"),
				ExpectedContainerPaths: []string{"/root/.codex"},
			},
			mock: func(m *dockermock.MockClient) {
				m.On("CopyToContainer", mock.Anything, "c1", "/root", mock.Anything, mock.Anything).Once().Return(nil)
			},
			expRes: &model.CredentialUploadResult{ExpectedContainerPaths: []string{"/root/.codex"}},
		},

		"An engine rejection should be reported as an upload failure": {
			plan: model.CredentialUploadPlan{
				Archive:                []byte("tar-bytes"),
				ExpectedContainerPaths: []string{"/root/.claude"},
			},
			mock: func(m *dockermock.MockClient) {
				m.On("CopyToContainer", mock.Anything, "c1", "/root", mock.Anything, mock.Anything).Once().
					Return(fmt.Errorf("filesystem is sealed"))
			},
			expErr: model.UploadFailedError{ContainerID: "c1", Message: "filesystem is sealed"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mClient := &dockermock.MockClient{}
			test.mock(mClient)

			engine, err := docker.NewEngine(docker.EngineConfig{Client: mClient})
			require.NoError(err)

			res, err := engine.UploadCredentials(context.TODO(), "c1", test.plan)

			if test.expErr != nil {
				assert.Equal(test.expErr, err)
			} else {
				require.NoError(err)
				assert.Equal(test.expRes, res)
			}
			mClient.AssertExpectations(t)
		})
	}
}
