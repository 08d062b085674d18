// Package exec implements the application service that runs commands inside
// registered sandboxes.
package exec

import (
	"context"
	"errors"
	"fmt"

	"github.com/wardenhq/warden/internal/log"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/sandbox"
	"github.com/wardenhq/warden/internal/storage"
)

// ServiceConfig is the configuration for the exec service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Exec"})
	return nil
}

// Service handles command execution in sandboxes.
type Service struct {
	engine sandbox.Engine
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new exec service.
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

// Request contains the parameters for executing a command.
type Request struct {
	NameOrID string
	Command  []string
	Env      map[string]string
	// Detached starts the command without attaching the local terminal.
	Detached bool
	// TTY allocates a pseudo-terminal for attached sessions.
	TTY bool
}

// Run executes a command in a registered sandbox and returns the result once
// the remote process exits.
func (s *Service) Run(ctx context.Context, req Request) (*model.ExecResult, error) {
	sb, err := s.resolve(ctx, req.NameOrID)
	if err != nil {
		return nil, err
	}

	if sb.Status != model.SandboxStatusRunning {
		return nil, fmt.Errorf("sandbox %s is not running (status: %s): %w", sb.Name, sb.Status, model.ErrNotValid)
	}

	mode := model.ExecModeAttached
	if req.Detached {
		mode = model.ExecModeDetached
	}

	result, err := s.engine.Exec(ctx, model.ExecRequest{
		ContainerID: sb.ContainerID,
		Command:     req.Command,
		Env:         req.Env,
		Mode:        mode,
		TTY:         req.TTY,
	})
	if err != nil {
		return nil, fmt.Errorf("could not execute command: %w", err)
	}

	s.logger.Debugf("Command in sandbox %s finished with exit code %d", sb.Name, result.ExitCode)

	return result, nil
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
