package lib

import (
	"context"
	"fmt"

	appexec "github.com/wardenhq/warden/internal/app/exec"
)

// Exec executes a command inside a running sandbox and blocks until the
// remote process exits.
//
// The command must be non-empty. Use opts to configure environment variables,
// I/O streams, and attachment mode. Pass nil opts for defaults (attached
// session with discarded output).
//
// The sandbox must be in [SandboxStatusRunning] state.
//
// Returns [ErrNotFound] if the sandbox does not exist, or [ErrNotValid] if
// the sandbox is not running or the command is empty. A non-zero exit code of
// the remote command is not an error; inspect [ExecResult.ExitCode].
func (c *Client) Exec(ctx context.Context, nameOrID string, command []string, opts *ExecOpts) (*ExecResult, error) {
	if opts == nil {
		opts = &ExecOpts{}
	}

	eng, closeEngine, err := c.newEngine(ctx, execStreams{
		stdin:  opts.Stdin,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
	})
	if err != nil {
		return nil, err
	}
	defer closeEngine()

	svc, err := appexec.NewService(appexec.ServiceConfig{
		Engine:     eng,
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, appexec.Request{
		NameOrID: nameOrID,
		Command:  command,
		Env:      opts.Env,
		Detached: opts.Detached,
		TTY:      opts.TTY,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &ExecResult{ExecID: result.ExecID, ExitCode: result.ExitCode}, nil
}
