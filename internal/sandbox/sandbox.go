package sandbox

import (
	"context"

	"github.com/wardenhq/warden/internal/model"
)

// Engine is the interface for sandbox container orchestration. It borrows an
// engine connection for the duration of one operation and keeps no state
// across operations.
type Engine interface {
	// Check performs preflight checks and returns the results.
	Check(ctx context.Context) []model.CheckResult

	// CreateContainer creates and starts a sandbox container, translating the
	// security profile into engine host configuration.
	CreateContainer(ctx context.Context, req model.CreateContainerRequest) (containerID string, err error)

	// Exec runs a command in a running sandbox container, attached (streaming
	// to the local terminal) or detached (polled to completion).
	Exec(ctx context.Context, req model.ExecRequest) (*model.ExecResult, error)

	// UploadCredentials uploads a prepared credential archive into the
	// container in a single engine call. An empty plan is a success and
	// performs no call.
	UploadCredentials(ctx context.Context, containerID string, plan model.CredentialUploadPlan) (*model.CredentialUploadResult, error)

	// RemoveContainer force-removes a sandbox container.
	RemoveContainer(ctx context.Context, containerID string) error
}
