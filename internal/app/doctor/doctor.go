// Package doctor implements the application service that runs preflight
// checks against the container engine.
package doctor

import (
	"context"
	"fmt"

	"github.com/wardenhq/warden/internal/log"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/sandbox"
)

// ServiceConfig is the configuration for the doctor service.
type ServiceConfig struct {
	Engine sandbox.Engine
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Doctor"})
	return nil
}

// Service runs environment preflight checks.
type Service struct {
	engine sandbox.Engine
	logger log.Logger
}

// NewService creates a new doctor service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine: cfg.Engine,
		logger: cfg.Logger,
	}, nil
}

// Run runs all preflight checks and returns the results. It never fails: the
// checks themselves carry the error states.
func (s *Service) Run(ctx context.Context) []model.CheckResult {
	results := s.engine.Check(ctx)

	ok, warnings, errs := model.CountByStatus(results)
	s.logger.Debugf("Preflight checks: %d ok, %d warnings, %d errors", ok, warnings, errs)

	return results
}
