package docker

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/wardenhq/warden/internal/model"
)

// execPollInterval is the sleep between exit-code polls after the session
// streams are done (attached) or the session was started detached.
const execPollInterval = 100 * time.Millisecond

// Exec runs a command in a running container. Attached sessions stream the
// remote process to the configured local streams, forwarding terminal resizes
// when a TTY was allocated. Detached sessions are fire-and-poll. Both modes
// return the engine-reported exit code once the session stops running.
func (e *Engine) Exec(ctx context.Context, req model.ExecRequest) (*model.ExecResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tty := req.TTYEnabled()
	created, err := e.client.ContainerExecCreate(ctx, req.ContainerID, container.ExecOptions{
		Cmd:          req.Command,
		Env:          envSlice(req.Env),
		Tty:          tty,
		AttachStdin:  req.Attached(),
		AttachStdout: req.Attached(),
		AttachStderr: req.Attached(),
	})
	if err != nil {
		return nil, model.ExecFailedError{ContainerID: req.ContainerID, Message: err.Error()}
	}

	e.logger.Debugf("Created exec %s in container %s (tty=%t)", created.ID, req.ContainerID, tty)

	if req.Attached() {
		if err := e.runAttached(ctx, created.ID, req.ContainerID, tty); err != nil {
			return nil, err
		}
	} else {
		err := e.client.ContainerExecStart(ctx, created.ID, container.ExecStartOptions{Detach: true})
		if err != nil {
			return nil, model.ExecFailedError{ContainerID: req.ContainerID, Message: err.Error()}
		}
	}

	exitCode, err := e.waitExecDone(ctx, created.ID, req.ContainerID)
	if err != nil {
		return nil, err
	}

	return &model.ExecResult{ExecID: created.ID, ExitCode: exitCode}, nil
}

// runAttached drives an attached session to stream completion: it attaches to
// the exec (which also starts it), pumps local stdin into the remote process,
// forwards terminal resizes, and returns once the remote output streams close.
func (e *Engine) runAttached(ctx context.Context, execID, containerID string, tty bool) error {
	attach, err := e.client.ContainerExecAttach(ctx, execID, container.ExecAttachOptions{Tty: tty})
	if err != nil {
		return model.ExecFailedError{ContainerID: containerID, Message: err.Error()}
	}
	defer attach.Close()

	// The hijacked connection must carry a readable stream, otherwise there is
	// nothing to attach to and waiting on output would hang forever.
	if attach.Reader == nil {
		return model.ExecFailedError{ContainerID: containerID, Message: "engine returned no output stream to attach to"}
	}

	var resizes <-chan struct{}
	if tty {
		// Size the remote PTY before any output arrives so full-screen
		// programs render correctly from the first frame.
		if err := e.resize(ctx, execID, containerID); err != nil {
			return err
		}
		resizes = e.terminal.ResizeNotifications(ctx)

		if restore, err := e.terminal.MakeRaw(); err == nil {
			defer restore()
		}
	}

	// Local stdin flows into the remote process until it is exhausted, then
	// the write side closes so the remote sees EOF. Pump errors are not
	// session errors: closing the attach tears the copy down on our exit path.
	go func() {
		_, _ = io.Copy(attach.Conn, e.stdin)
		_ = attach.CloseWrite()
	}()

	outDone := make(chan error, 1)
	go func() {
		if tty {
			// With a TTY the streams are merged into the raw stream.
			_, err := io.Copy(e.stdout, attach.Reader)
			outDone <- err
			return
		}
		// Without a TTY the engine multiplexes stdout/stderr into one stream.
		_, err := stdcopy.StdCopy(e.stdout, e.stderr, attach.Reader)
		outDone <- err
	}()

	for {
		select {
		case err := <-outDone:
			if err != nil {
				return model.ExecFailedError{ContainerID: containerID, Message: fmt.Sprintf("streaming output failed: %s", err)}
			}
			return nil
		case <-resizes:
			if err := e.resize(ctx, execID, containerID); err != nil {
				return err
			}
		case <-ctx.Done():
			return model.ExecFailedError{ContainerID: containerID, Message: ctx.Err().Error()}
		}
	}
}

// resize propagates the current local terminal size to the remote PTY. A
// failed resize aborts the session: a TTY session with a wrongly-sized remote
// PTY corrupts every full-screen program running in it.
func (e *Engine) resize(ctx context.Context, execID, containerID string) error {
	height, width, ok := e.terminal.Size()
	if !ok {
		return nil
	}

	err := e.client.ContainerExecResize(ctx, execID, container.ResizeOptions{Height: height, Width: width})
	if err != nil {
		return model.ExecFailedError{ContainerID: containerID, Message: fmt.Sprintf("could not resize remote terminal: %s", err)}
	}

	return nil
}

// waitExecDone polls the exec session until the engine reports it stopped
// running, then returns the exit code. The first inspect happens immediately,
// subsequent ones after a fixed interval.
func (e *Engine) waitExecDone(ctx context.Context, execID, containerID string) (int, error) {
	for {
		inspect, err := e.client.ContainerExecInspect(ctx, execID)
		if err != nil {
			return 0, model.ExecFailedError{ContainerID: containerID, Message: fmt.Sprintf("could not inspect exec session: %s", err)}
		}

		if !inspect.Running {
			e.logger.Debugf("Exec %s finished with exit code %d", execID, inspect.ExitCode)
			return inspect.ExitCode, nil
		}

		select {
		case <-ctx.Done():
			return 0, model.ExecFailedError{ContainerID: containerID, Message: ctx.Err().Error()}
		case <-time.After(execPollInterval):
		}
	}
}
