package lib

import (
	"context"
	"fmt"

	"github.com/wardenhq/warden/internal/app/credsinject"
	"github.com/wardenhq/warden/internal/model"
)

// UploadCredentials copies the selected host credential directories
// (~/.claude, ~/.codex) into a running sandbox.
//
// At least one credential source must be selected. Host directories that do
// not exist are skipped silently; the returned result lists the container
// paths that were actually populated. An empty result is a success, not an
// error.
//
// Returns [ErrNotFound] if the sandbox does not exist, or [ErrNotValid] if
// the sandbox is not running or no source is selected.
func (c *Client) UploadCredentials(ctx context.Context, nameOrID string, opts CredentialOptions) (*CredentialUploadResult, error) {
	eng, closeEngine, err := c.newEngine(ctx, execStreams{})
	if err != nil {
		return nil, err
	}
	defer closeEngine()

	planner, err := c.newPlanner()
	if err != nil {
		return nil, mapError(err)
	}

	svc, err := credsinject.NewService(credsinject.ServiceConfig{
		Engine:     eng,
		Repository: c.repo,
		Planner:    planner,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, credsinject.Request{
		NameOrID: nameOrID,
		Options: model.CredentialOptions{
			CopyClaude: opts.CopyClaude,
			CopyCodex:  opts.CopyCodex,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &CredentialUploadResult{ContainerPaths: result.ExpectedContainerPaths}, nil
}
