// Package docker implements sandbox orchestration on top of the Docker
// engine API (also served by Podman's compatibility endpoint).
package docker

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/wardenhq/warden/internal/log"
	"github.com/wardenhq/warden/internal/model"
)

// Client is the narrowed interface of the Docker API client that the engine
// uses. This allows mocking the client for testing; any implementation
// satisfying this surface is acceptable.
type Client interface {
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	ContainerExecCreate(ctx context.Context, containerID string, options container.ExecOptions) (container.ExecCreateResponse, error)
	ContainerExecAttach(ctx context.Context, execID string, options container.ExecAttachOptions) (types.HijackedResponse, error)
	ContainerExecStart(ctx context.Context, execID string, options container.ExecStartOptions) error
	ContainerExecInspect(ctx context.Context, execID string) (container.ExecInspect, error)
	ContainerExecResize(ctx context.Context, execID string, options container.ResizeOptions) error
	CopyToContainer(ctx context.Context, containerID, dstPath string, content io.Reader, options container.CopyToContainerOptions) error
	Ping(ctx context.Context) (types.Ping, error)
}

// EngineConfig is the configuration for the Docker engine.
type EngineConfig struct {
	// Client is required. The connection is borrowed: the engine never closes
	// it, ownership stays with the caller.
	Client Client
	// Terminal is the local terminal capability for attached exec sessions.
	// Defaults to the real terminal on stdout.
	Terminal Terminal
	// Stdin/Stdout/Stderr are the local streams for attached exec sessions.
	// Default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("client is required")
	}
	if c.Terminal == nil {
		c.Terminal = NewLocalTerminal()
	}
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "sandbox.Docker"})
	return nil
}

// Engine is the Docker implementation of the sandbox.Engine interface.
type Engine struct {
	client   Client
	terminal Terminal
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	logger   log.Logger
}

// NewEngine creates a new Docker engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		client:   cfg.Client,
		terminal: cfg.Terminal,
		stdin:    cfg.Stdin,
		stdout:   cfg.Stdout,
		stderr:   cfg.Stderr,
		logger:   cfg.Logger,
	}, nil
}

// Check performs preflight checks against the engine.
func (e *Engine) Check(ctx context.Context) []model.CheckResult {
	var results []model.CheckResult

	if _, err := e.client.Ping(ctx); err != nil {
		results = append(results, model.CheckResult{
			ID:      "engine_ping",
			Message: fmt.Sprintf("engine did not answer the liveness probe: %s", err),
			Status:  model.CheckStatusError,
		})
		return results
	}

	results = append(results, model.CheckResult{
		ID:      "engine_ping",
		Message: "engine answered the liveness probe",
		Status:  model.CheckStatusOK,
	})

	return results
}

// RemoveContainer force-removes a sandbox container. Removal is idempotent.
func (e *Engine) RemoveContainer(ctx context.Context, containerID string) error {
	err := e.client.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true})
	if err != nil {
		return fmt.Errorf("could not remove container %s: %w", containerID, err)
	}

	e.logger.Debugf("Removed container: %s", containerID)
	return nil
}

// envSlice renders an env map into the engine's KEY=VALUE list form.
func envSlice(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	return out
}
