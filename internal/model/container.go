package model

import (
	"strings"
)

// ResourceLimits caps the resources of a sandbox container. Zero values mean
// unlimited.
type ResourceLimits struct {
	// MemoryBytes is the memory limit in bytes.
	MemoryBytes int64
	// NanoCPUs is the CPU quota in units of 1e-9 CPUs.
	NanoCPUs int64
}

// CreateContainerRequest describes a sandbox container to create. Request
// values are built per operation and carry no state after the call.
type CreateContainerRequest struct {
	Image     string
	Name      string
	Cmd       []string
	Env       map[string]string
	Security  SecurityOptions
	Resources ResourceLimits
}

// Validate checks the request before any engine call is made.
func (r CreateContainerRequest) Validate() error {
	if strings.TrimSpace(r.Image) == "" {
		return MissingRequiredError{Field: "image"}
	}
	if r.Resources.MemoryBytes < 0 {
		return InvalidValueError{Field: "memory", Reason: "must not be negative"}
	}
	if r.Resources.NanoCPUs < 0 {
		return InvalidValueError{Field: "cpus", Reason: "must not be negative"}
	}
	return nil
}
