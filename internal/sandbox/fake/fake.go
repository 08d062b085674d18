// Package fake provides an in-memory sandbox engine for testing without a
// real container engine.
package fake

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wardenhq/warden/internal/log"
	"github.com/wardenhq/warden/internal/model"
)

// EngineConfig is the configuration for the fake engine.
type EngineConfig struct {
	Logger log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "sandbox.Fake"})
	return nil
}

// Engine is a fake implementation of the sandbox engine. It simulates
// container lifecycle and exec sessions without touching a container engine.
// Every exec finishes instantly with exit code zero.
type Engine struct {
	containers map[string]model.CreateContainerRequest
	uploads    map[string][]string
	mu         sync.RWMutex
	logger     log.Logger
}

// NewEngine creates a new fake engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		containers: map[string]model.CreateContainerRequest{},
		uploads:    map[string][]string{},
		logger:     cfg.Logger,
	}, nil
}

// Check always reports a healthy engine.
func (e *Engine) Check(ctx context.Context) []model.CheckResult {
	return []model.CheckResult{{
		ID:      "engine_ping",
		Message: "fake engine is always healthy",
		Status:  model.CheckStatusOK,
	}}
}

// CreateContainer registers a simulated container and returns its ID.
func (e *Engine) CreateContainer(ctx context.Context, req model.CreateContainerRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id := "fake-" + strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String())
	e.containers[id] = req

	e.logger.Debugf("Created fake container %s (image %s)", id, req.Image)

	return id, nil
}

// Exec simulates a command execution in a registered container.
func (e *Engine) Exec(ctx context.Context, req model.ExecRequest) (*model.ExecResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.containers[req.ContainerID]; !ok {
		return nil, fmt.Errorf("container %s does not exist: %w", req.ContainerID, model.ErrNotFound)
	}

	return &model.ExecResult{
		ExecID:   "fake-exec-" + strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()),
		ExitCode: 0,
	}, nil
}

// UploadCredentials records the upload and echoes back the planned paths.
func (e *Engine) UploadCredentials(ctx context.Context, containerID string, plan model.CredentialUploadPlan) (*model.CredentialUploadResult, error) {
	if plan.Empty() {
		return &model.CredentialUploadResult{}, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.containers[containerID]; !ok {
		return nil, fmt.Errorf("container %s does not exist: %w", containerID, model.ErrNotFound)
	}

	e.uploads[containerID] = append(e.uploads[containerID], plan.ExpectedContainerPaths...)

	return &model.CredentialUploadResult{ExpectedContainerPaths: plan.ExpectedContainerPaths}, nil
}

// RemoveContainer drops a simulated container.
func (e *Engine) RemoveContainer(ctx context.Context, containerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.containers[containerID]; !ok {
		return fmt.Errorf("container %s does not exist: %w", containerID, model.ErrNotFound)
	}

	delete(e.containers, containerID)
	delete(e.uploads, containerID)

	return nil
}

// Uploads returns the credential paths uploaded into a container. Test helper.
func (e *Engine) Uploads(containerID string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return append([]string{}, e.uploads[containerID]...)
}
