package model

import (
	"strings"
)

// ExecMode selects how an exec session is driven.
type ExecMode string

const (
	// ExecModeAttached connects the local terminal streams to the remote process.
	ExecModeAttached ExecMode = "attached"
	// ExecModeDetached starts the command without stream attachment; the
	// session is polled until completion.
	ExecModeDetached ExecMode = "detached"
)

// ExecRequest describes a command execution inside a running container.
type ExecRequest struct {
	ContainerID string
	Command     []string
	Env         map[string]string
	Mode        ExecMode
	// TTY requests a pseudo-terminal. It only takes effect in attached mode,
	// use TTYEnabled to read the effective value.
	TTY bool
}

// Validate checks the request before any engine call is made.
func (r ExecRequest) Validate() error {
	if strings.TrimSpace(r.ContainerID) == "" {
		return MissingRequiredError{Field: "container_id"}
	}
	if len(r.Command) == 0 {
		return MissingRequiredError{Field: "command"}
	}
	// Later tokens may be blank (legit empty arguments), the first one may not.
	if strings.TrimSpace(r.Command[0]) == "" {
		return InvalidValueError{Field: "command", Reason: "first token is blank"}
	}
	switch r.Mode {
	case ExecModeAttached, ExecModeDetached:
	default:
		return InvalidValueError{Field: "mode", Reason: "must be attached or detached"}
	}
	return nil
}

// Attached returns true when the session streams to the local terminal.
func (r ExecRequest) Attached() bool { return r.Mode == ExecModeAttached }

// TTYEnabled returns the effective TTY setting: a TTY is never allocated for
// detached sessions.
func (r ExecRequest) TTYEnabled() bool { return r.Attached() && r.TTY }

// ExecResult is the outcome of a completed exec session. ExitCode is the raw
// engine-reported integer, callers are responsible for normalizing it into a
// process-exit-code range.
type ExecResult struct {
	ExecID   string
	ExitCode int
}
