// Package run implements the application service that launches an agent
// sandbox: create the container, register it, and inject credentials.
package run

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wardenhq/warden/internal/log"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/sandbox"
	"github.com/wardenhq/warden/internal/storage"
)

// CredentialPlanner builds credential upload plans from the host home.
type CredentialPlanner interface {
	Plan(copyClaude, copyCodex bool) (*model.CredentialUploadPlan, error)
}

// ServiceConfig is the configuration for the run service.
type ServiceConfig struct {
	Engine     sandbox.Engine
	Repository storage.Repository
	Planner    CredentialPlanner
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Planner == nil {
		return fmt.Errorf("planner is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Run"})
	return nil
}

// Service handles sandbox launch business logic.
type Service struct {
	engine  sandbox.Engine
	repo    storage.Repository
	planner CredentialPlanner
	logger  log.Logger
}

// NewService creates a new run service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine:  cfg.Engine,
		repo:    cfg.Repository,
		planner: cfg.Planner,
		logger:  cfg.Logger,
	}, nil
}

// Request contains the parameters for launching a sandbox.
type Request struct {
	Profile model.LaunchProfile
}

// Run launches a new sandbox from a launch profile. The container is created
// and started, registered, and credentials are injected before the sandbox is
// handed to the caller. A failure after the container started removes it so
// no unregistered container is left behind.
func (s *Service) Run(ctx context.Context, req Request) (*model.Sandbox, error) {
	if err := req.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	name := req.Profile.Name
	if name == "" {
		name = "warden-" + strings.ToLower(id)
	}

	_, err := s.repo.GetSandboxByName(ctx, name)
	if err == nil {
		return nil, fmt.Errorf("sandbox with name %q already exists: %w", name, model.ErrAlreadyExists)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("could not check name uniqueness: %w", err)
	}

	containerID, err := s.engine.CreateContainer(ctx, model.CreateContainerRequest{
		Image:     req.Profile.Image,
		Name:      name,
		Cmd:       req.Profile.Cmd,
		Env:       req.Profile.Env,
		Security:  req.Profile.Security,
		Resources: req.Profile.Resources,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create sandbox container: %w", err)
	}

	now := time.Now().UTC()
	sb := model.Sandbox{
		ID:          id,
		Name:        name,
		ContainerID: containerID,
		Image:       req.Profile.Image,
		Security:    req.Profile.Security,
		Status:      model.SandboxStatusRunning,
		CreatedAt:   now,
		StartedAt:   &now,
	}

	if err := s.repo.CreateSandbox(ctx, sb); err != nil {
		s.cleanupContainer(ctx, containerID)
		return nil, fmt.Errorf("could not save sandbox: %w", err)
	}

	if err := s.injectCredentials(ctx, containerID, req.Profile.Credentials); err != nil {
		s.cleanupContainer(ctx, containerID)
		if delErr := s.repo.DeleteSandbox(ctx, id); delErr != nil {
			s.logger.Warningf("Could not remove sandbox record %s after failed launch: %s", id, delErr)
		}
		return nil, err
	}

	s.logger.Infof("Launched sandbox %s (%s)", name, containerID)

	return &sb, nil
}

func (s *Service) injectCredentials(ctx context.Context, containerID string, opts model.CredentialOptions) error {
	if !opts.CopyClaude && !opts.CopyCodex {
		return nil
	}

	plan, err := s.planner.Plan(opts.CopyClaude, opts.CopyCodex)
	if err != nil {
		return fmt.Errorf("could not plan credential upload: %w", err)
	}

	res, err := s.engine.UploadCredentials(ctx, containerID, *plan)
	if err != nil {
		return fmt.Errorf("could not upload credentials: %w", err)
	}

	if len(res.ExpectedContainerPaths) > 0 {
		s.logger.Debugf("Injected credentials into %s: %v", containerID, res.ExpectedContainerPaths)
	}

	return nil
}

func (s *Service) cleanupContainer(ctx context.Context, containerID string) {
	if err := s.engine.RemoveContainer(ctx, containerID); err != nil {
		s.logger.Warningf("Could not remove container %s after failed launch: %s", containerID, err)
	}
}
