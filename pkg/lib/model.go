package lib

import (
	"errors"
	"io"
	"time"

	"github.com/wardenhq/warden/internal/model"
)

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource with the same name already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when the input or operation is invalid.
	ErrNotValid = errors.New("not valid")
)

// EngineType identifies the sandbox engine implementation.
type EngineType string

const (
	// EngineDocker uses a real container engine over its Unix socket (Docker
	// or a compatible daemon such as Podman with the Docker API enabled).
	EngineDocker EngineType = "docker"

	// EngineFake uses an in-memory simulation (no real containers).
	// Use this for unit testing without infrastructure dependencies.
	EngineFake EngineType = "fake"
)

// SandboxStatus represents the lifecycle state of a sandbox.
type SandboxStatus string

const (
	// SandboxStatusRunning indicates the sandbox container is running.
	SandboxStatusRunning SandboxStatus = "running"
	// SandboxStatusStopped indicates the sandbox container has exited.
	SandboxStatusStopped SandboxStatus = "stopped"
	// SandboxStatusFailed indicates the sandbox encountered an unrecoverable error.
	SandboxStatusFailed SandboxStatus = "failed"
)

// SELinuxLabelMode controls the SELinux labeling of a sandbox container.
type SELinuxLabelMode string

const (
	// SELinuxKeepDefault leaves the engine's default labeling untouched.
	SELinuxKeepDefault SELinuxLabelMode = "keep-default"
	// SELinuxDisableForContainer disables SELinux separation for the container.
	SELinuxDisableForContainer SELinuxLabelMode = "disable"
)

// SecurityOptions is the security profile applied when creating a sandbox
// container. When Privileged is true the remaining facets are ignored: host
// policy already governs a privileged container.
type SecurityOptions struct {
	// Privileged runs the container with full host privileges.
	Privileged bool
	// MountDevFuse exposes /dev/fuse and grants SYS_ADMIN so the sandbox can
	// mount overlay workspaces.
	MountDevFuse bool
	// SELinuxLabel controls SELinux labeling. The zero value means
	// [SELinuxKeepDefault].
	SELinuxLabel SELinuxLabelMode
}

// DefaultSecurityOptions returns the minimal-mode profile with FUSE enabled,
// which is what agent sandboxes need for overlay workspaces.
func DefaultSecurityOptions() SecurityOptions {
	return SecurityOptions{
		MountDevFuse: true,
		SELinuxLabel: SELinuxKeepDefault,
	}
}

// ResourceLimits caps the resources of a sandbox container. Zero values mean
// unlimited.
type ResourceLimits struct {
	// MemoryBytes is the memory limit in bytes.
	MemoryBytes int64
	// NanoCPUs is the CPU quota in units of 1e-9 CPUs.
	NanoCPUs int64
}

// CredentialOptions selects which host credential directories get copied into
// a sandbox.
type CredentialOptions struct {
	// CopyClaude copies ~/.claude into the sandbox.
	CopyClaude bool
	// CopyCodex copies ~/.codex into the sandbox.
	CopyCodex bool
}

// LaunchProfile describes a sandbox to launch.
//
// Image is required. Name is optional; when empty a unique name is generated.
type LaunchProfile struct {
	// Name is the sandbox name. Must be unique. Generated when empty.
	Name string
	// Image is the container image reference (required).
	Image string
	// Cmd is the container entry command. Empty means the image default.
	Cmd []string
	// Env contains environment variables set on the container.
	Env map[string]string
	// Security is the container security profile. The zero value is minimal
	// mode without FUSE; see [DefaultSecurityOptions].
	Security SecurityOptions
	// Resources caps the container resources. Zero values mean unlimited.
	Resources ResourceLimits
	// Credentials selects host credentials to inject after launch.
	Credentials CredentialOptions
}

// Sandbox represents a sandbox instance returned by the SDK.
//
// This is a read-only snapshot of the sandbox state at the time of the API
// call. Use [Client.GetSandbox] to get the latest state.
type Sandbox struct {
	// ID is the unique identifier (ULID) assigned at launch.
	ID string
	// Name is the human-friendly name.
	Name string
	// ContainerID is the engine-assigned container identifier.
	ContainerID string
	// Image is the container image the sandbox was launched from.
	Image string
	// Security is the security profile the sandbox was launched with.
	Security SecurityOptions
	// Status is the current lifecycle state.
	Status SandboxStatus
	// CreatedAt is when the sandbox was launched.
	CreatedAt time.Time
	// StartedAt is when the sandbox container started. Nil if never started.
	StartedAt *time.Time
	// StoppedAt is when the sandbox container stopped. Nil if never stopped.
	StoppedAt *time.Time
}

// ListSandboxesOpts configures sandbox listing.
//
// Pass nil to [Client.ListSandboxes] to list all sandboxes.
type ListSandboxesOpts struct {
	// Status filters sandboxes by status. Nil means all statuses.
	Status *SandboxStatus
}

// ExecOpts configures command execution inside a sandbox.
//
// Pass nil to [Client.Exec] to use defaults (detached, no extra env,
// discarded output).
type ExecOpts struct {
	// Env contains additional environment variables for this execution only.
	Env map[string]string
	// Stdin is the standard input stream for attached sessions. Nil means no input.
	Stdin io.Reader
	// Stdout receives the command's standard output. Nil means output is discarded.
	Stdout io.Writer
	// Stderr receives the command's standard error. Nil means output is discarded.
	Stderr io.Writer
	// TTY allocates a pseudo-terminal. Only honored for attached sessions.
	TTY bool
	// Detached starts the command without stream attachment. The call still
	// blocks until the remote process exits.
	Detached bool
}

// ExecResult contains the result of a command execution.
type ExecResult struct {
	// ExecID is the engine-assigned exec session identifier.
	ExecID string
	// ExitCode is the exit status of the executed command.
	// 0 indicates success, non-zero indicates failure.
	ExitCode int
}

// CredentialUploadResult contains the result of a credential upload.
type CredentialUploadResult struct {
	// ContainerPaths are the container paths the upload populated, in
	// claude-then-codex order. Empty when no host credentials were found.
	ContainerPaths []string
}

// CheckStatus represents the status of a preflight check.
type CheckStatus string

const (
	// CheckStatusOK indicates the check passed.
	CheckStatusOK CheckStatus = "ok"
	// CheckStatusWarning indicates the check passed with a warning.
	CheckStatusWarning CheckStatus = "warning"
	// CheckStatusError indicates the check failed.
	CheckStatusError CheckStatus = "error"
)

// CheckResult represents the result of a single preflight check.
type CheckResult struct {
	// ID is a unique identifier for the check (e.g. "engine_ping").
	ID string
	// Message is a human-readable description of the result.
	Message string
	// Status is the check status.
	Status CheckStatus
}

// --- Internal conversion helpers ---

func toInternalProfile(p LaunchProfile) model.LaunchProfile {
	return model.LaunchProfile{
		Name:  p.Name,
		Image: p.Image,
		Cmd:   p.Cmd,
		Env:   p.Env,
		Security: model.SecurityOptions{
			Privileged:   p.Security.Privileged,
			MountDevFuse: p.Security.MountDevFuse,
			SELinuxLabel: toInternalSELinuxLabel(p.Security.SELinuxLabel),
		},
		Resources: model.ResourceLimits{
			MemoryBytes: p.Resources.MemoryBytes,
			NanoCPUs:    p.Resources.NanoCPUs,
		},
		Credentials: model.CredentialOptions{
			CopyClaude: p.Credentials.CopyClaude,
			CopyCodex:  p.Credentials.CopyCodex,
		},
	}
}

func toInternalSELinuxLabel(m SELinuxLabelMode) model.SELinuxLabelMode {
	if m == "" {
		return model.SELinuxKeepDefault
	}
	return model.SELinuxLabelMode(m)
}

func fromInternalSandbox(s model.Sandbox) Sandbox {
	return Sandbox{
		ID:          s.ID,
		Name:        s.Name,
		ContainerID: s.ContainerID,
		Image:       s.Image,
		Security: SecurityOptions{
			Privileged:   s.Security.Privileged,
			MountDevFuse: s.Security.MountDevFuse,
			SELinuxLabel: SELinuxLabelMode(s.Security.SELinuxLabel),
		},
		Status:    SandboxStatus(s.Status),
		CreatedAt: s.CreatedAt,
		StartedAt: s.StartedAt,
		StoppedAt: s.StoppedAt,
	}
}

func fromInternalSandboxList(ss []model.Sandbox) []Sandbox {
	result := make([]Sandbox, len(ss))
	for i, s := range ss {
		result[i] = fromInternalSandbox(s)
	}
	return result
}

func toInternalStatusFilter(opts *ListSandboxesOpts) *model.SandboxStatus {
	if opts == nil || opts.Status == nil {
		return nil
	}
	s := model.SandboxStatus(*opts.Status)
	return &s
}

func fromInternalCheckResults(results []model.CheckResult) []CheckResult {
	out := make([]CheckResult, len(results))
	for i, r := range results {
		out[i] = CheckResult{
			ID:      r.ID,
			Message: r.Message,
			Status:  CheckStatus(r.Status),
		}
	}
	return out
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case errors.Is(err, model.ErrAlreadyExists):
		return joinErrors(err, ErrAlreadyExists)
	case errors.Is(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	default:
		return err
	}
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
