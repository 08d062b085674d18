// Package remove implements the application service that tears down
// registered sandboxes.
package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/wardenhq/warden/internal/log"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/sandbox"
	"github.com/wardenhq/warden/internal/storage"
)

// ServiceConfig is the configuration for the remove service.
type ServiceConfig struct {
	Engine     sandbox.Engine
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Remove"})
	return nil
}

// Service handles sandbox teardown.
type Service struct {
	engine sandbox.Engine
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine: cfg.Engine,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request contains the parameters for removing a sandbox.
type Request struct {
	NameOrID string
	// Force drops the registry record even when the container removal fails,
	// e.g. because the container is already gone.
	Force bool
}

// Run removes the sandbox container and drops the registry record.
func (s *Service) Run(ctx context.Context, req Request) error {
	sb, err := s.resolve(ctx, req.NameOrID)
	if err != nil {
		return err
	}

	if err := s.engine.RemoveContainer(ctx, sb.ContainerID); err != nil {
		if !req.Force {
			return fmt.Errorf("could not remove container: %w", err)
		}
		s.logger.Warningf("Could not remove container %s, dropping record anyway: %s", sb.ContainerID, err)
	}

	if err := s.repo.DeleteSandbox(ctx, sb.ID); err != nil {
		return fmt.Errorf("could not delete sandbox record: %w", err)
	}

	s.logger.Infof("Removed sandbox %s", sb.Name)
	return nil
}

// resolve finds a sandbox by name first, by ID second.
func (s *Service) resolve(ctx context.Context, nameOrID string) (*model.Sandbox, error) {
	sb, err := s.repo.GetSandboxByName(ctx, nameOrID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			sb, err = s.repo.GetSandbox(ctx, nameOrID)
		}
		if err != nil {
			return nil, fmt.Errorf("could not find sandbox: %w", err)
		}
	}
	return sb, nil
}
