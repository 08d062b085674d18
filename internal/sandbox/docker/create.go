package docker

import (
	"context"
	"strings"

	"github.com/docker/docker/api/types/container"

	"github.com/wardenhq/warden/internal/model"
)

const devFusePath = "/dev/fuse"

// CreateContainer validates the request, translates the security profile into
// an engine host configuration, then creates and starts the container. It
// returns the engine-assigned container ID.
func (e *Engine) CreateContainer(ctx context.Context, req model.CreateContainerRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	config := &container.Config{
		Image: strings.TrimSpace(req.Image),
		Cmd:   req.Cmd,
		Env:   envSlice(req.Env),
	}

	resp, err := e.client.ContainerCreate(ctx, config, buildHostConfig(req.Security, req.Resources), nil, nil, req.Name)
	if err != nil {
		return "", model.CreateFailedError{Message: err.Error()}
	}

	if err := e.client.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return "", model.CreateFailedError{Message: err.Error()}
	}

	e.logger.Infof("Created container %s from image %s", resp.ID, config.Image)

	return resp.ID, nil
}

// buildHostConfig translates the security profile. Privileged mode sets the
// single engine flag and nothing else: the minimal-mode facets (FUSE device,
// SYS_ADMIN capability, SELinux label) are never combined with it. In minimal
// mode the FUSE and SELinux facets are independent of each other.
func buildHostConfig(sec model.SecurityOptions, res model.ResourceLimits) *container.HostConfig {
	hostConfig := &container.HostConfig{
		Resources: container.Resources{
			Memory:   res.MemoryBytes,
			NanoCPUs: res.NanoCPUs,
		},
	}

	if sec.Privileged {
		hostConfig.Privileged = true
		return hostConfig
	}

	if sec.MountDevFuse {
		hostConfig.CapAdd = []string{"SYS_ADMIN"}
		hostConfig.Resources.Devices = []container.DeviceMapping{{
			PathOnHost:        devFusePath,
			PathInContainer:   devFusePath,
			CgroupPermissions: "rwm",
		}}
	}

	if sec.SELinuxLabel == model.SELinuxDisableForContainer {
		hostConfig.SecurityOpt = []string{"label=disable"}
	}

	return hostConfig
}
