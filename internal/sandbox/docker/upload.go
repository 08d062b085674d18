package docker

import (
	"bytes"
	"context"

	"github.com/docker/docker/api/types/container"

	"github.com/wardenhq/warden/internal/creds"
	"github.com/wardenhq/warden/internal/model"
)

// UploadCredentials uploads a planned credential archive into the container
// with a single engine call. An empty plan means there is nothing to upload
// and succeeds without touching the engine.
func (e *Engine) UploadCredentials(ctx context.Context, containerID string, plan model.CredentialUploadPlan) (*model.CredentialUploadResult, error) {
	if plan.Empty() {
		e.logger.Debugf("Empty credential plan for container %s, nothing to upload", containerID)
		return &model.CredentialUploadResult{}, nil
	}

	err := e.client.CopyToContainer(ctx, containerID, creds.ContainerCredentialRoot, bytes.NewReader(plan.Archive), container.CopyToContainerOptions{})
	if err != nil {
		return nil, model.UploadFailedError{ContainerID: containerID, Message: err.Error()}
	}

	e.logger.Infof("Uploaded credentials to container %s: %v", containerID, plan.ExpectedContainerPaths)

	return &model.CredentialUploadResult{ExpectedContainerPaths: plan.ExpectedContainerPaths}, nil
}
