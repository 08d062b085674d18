// Package credsinject implements the application service that copies host
// agent credentials into an already-running sandbox.
package credsinject

import (
	"context"
	"errors"
	"fmt"

	"github.com/wardenhq/warden/internal/log"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/sandbox"
	"github.com/wardenhq/warden/internal/storage"
)

// CredentialPlanner builds credential upload plans from the host home.
type CredentialPlanner interface {
	Plan(copyClaude, copyCodex bool) (*model.CredentialUploadPlan, error)
}

// ServiceConfig is the configuration for the credential injection service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.CredsInject"})
	return nil
}

// Service handles credential injection into running sandboxes.
type Service struct {
	engine  sandbox.Engine
	repo    storage.Repository
	planner CredentialPlanner
	logger  log.Logger
}

// NewService creates a new credential injection service.
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

// Request contains the parameters for injecting credentials.
type Request struct {
	NameOrID string
	Options  model.CredentialOptions
}

// Run plans and uploads the selected credentials into the sandbox. It returns
// the container paths the upload is expected to materialize.
func (s *Service) Run(ctx context.Context, req Request) (*model.CredentialUploadResult, error) {
	if !req.Options.CopyClaude && !req.Options.CopyCodex {
		return nil, fmt.Errorf("no credential source selected: %w", model.ErrNotValid)
	}

	sb, err := s.resolve(ctx, req.NameOrID)
	if err != nil {
		return nil, err
	}

	if sb.Status != model.SandboxStatusRunning {
		return nil, fmt.Errorf("sandbox %s is not running (status: %s): %w", sb.Name, sb.Status, model.ErrNotValid)
	}

	plan, err := s.planner.Plan(req.Options.CopyClaude, req.Options.CopyCodex)
	if err != nil {
		return nil, fmt.Errorf("could not plan credential upload: %w", err)
	}

	result, err := s.engine.UploadCredentials(ctx, sb.ContainerID, *plan)
	if err != nil {
		return nil, fmt.Errorf("could not upload credentials: %w", err)
	}

	s.logger.Infof("Injected credentials into sandbox %s: %v", sb.Name, result.ExpectedContainerPaths)

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
