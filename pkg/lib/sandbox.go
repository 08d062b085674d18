package lib

import (
	"context"
	"errors"
	"fmt"

	"github.com/wardenhq/warden/internal/app/list"
	"github.com/wardenhq/warden/internal/app/remove"
	"github.com/wardenhq/warden/internal/app/run"
	"github.com/wardenhq/warden/internal/model"
)

// LaunchSandbox launches a new sandbox from a launch profile: the container
// is created and started, registered, and the selected credentials are
// injected before the sandbox is returned.
//
// Returns [ErrAlreadyExists] if the name is taken, or [ErrNotValid] if the
// profile is invalid.
func (c *Client) LaunchSandbox(ctx context.Context, profile LaunchProfile) (*Sandbox, error) {
	eng, closeEngine, err := c.newEngine(ctx, execStreams{})
	if err != nil {
		return nil, err
	}
	defer closeEngine()

	planner, err := c.newPlanner()
	if err != nil {
		return nil, mapError(err)
	}

	svc, err := run.NewService(run.ServiceConfig{
		Engine:     eng,
		Repository: c.repo,
		Planner:    planner,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	sb, err := svc.Run(ctx, run.Request{Profile: toInternalProfile(profile)})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalSandbox(*sb)
	return &result, nil
}

// RemoveSandbox removes a sandbox: the container is removed and the registry
// record is dropped. If force is true, the record is dropped even when the
// container removal fails (e.g. the container is already gone).
//
// Returns [ErrNotFound] if the sandbox does not exist.
func (c *Client) RemoveSandbox(ctx context.Context, nameOrID string, force bool) error {
	eng, closeEngine, err := c.newEngine(ctx, execStreams{})
	if err != nil {
		return err
	}
	defer closeEngine()

	svc, err := remove.NewService(remove.ServiceConfig{
		Engine:     eng,
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	err = svc.Run(ctx, remove.Request{
		NameOrID: nameOrID,
		Force:    force,
	})
	if err != nil {
		return mapError(err)
	}

	return nil
}

// ListSandboxes lists sandboxes with optional filtering, newest first.
// Pass nil opts for all sandboxes.
func (c *Client) ListSandboxes(ctx context.Context, opts *ListSandboxesOpts) ([]Sandbox, error) {
	svc, err := list.NewService(list.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, list.Request{
		StatusFilter: toInternalStatusFilter(opts),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalSandboxList(result), nil
}

// GetSandbox retrieves a sandbox by name or ID.
//
// Returns [ErrNotFound] if the sandbox does not exist.
func (c *Client) GetSandbox(ctx context.Context, nameOrID string) (*Sandbox, error) {
	sb, err := c.getInternalSandbox(ctx, nameOrID)
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalSandbox(*sb)
	return &out, nil
}

// getInternalSandbox resolves a sandbox from the registry by name first, by
// ID second.
func (c *Client) getInternalSandbox(ctx context.Context, nameOrID string) (*model.Sandbox, error) {
	sb, err := c.repo.GetSandboxByName(ctx, nameOrID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			sb, err = c.repo.GetSandbox(ctx, nameOrID)
		}
		if err != nil {
			return nil, fmt.Errorf("could not find sandbox: %w", err)
		}
	}
	return sb, nil
}
