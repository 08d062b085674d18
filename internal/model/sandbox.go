package model

import (
	"fmt"
	"time"
)

// SandboxStatus represents the status of a sandbox.
type SandboxStatus string

const (
	// SandboxStatusRunning indicates the sandbox container is running.
	SandboxStatusRunning SandboxStatus = "running"
	// SandboxStatusStopped indicates the sandbox container has exited.
	SandboxStatusStopped SandboxStatus = "stopped"
	// SandboxStatusFailed indicates the sandbox failed.
	SandboxStatusFailed SandboxStatus = "failed"
)

// Sandbox is the registry record for a launched agent sandbox. The engine
// connection and container are owned by the calling layer; this record only
// lets users address the container by name later on.
type Sandbox struct {
	ID          string
	Name        string
	ContainerID string
	Image       string
	Security    SecurityOptions
	Status      SandboxStatus
	CreatedAt   time.Time
	StartedAt   *time.Time
	StoppedAt   *time.Time
}

// Validate validates the sandbox record.
func (s Sandbox) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	if s.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	if s.ContainerID == "" {
		return fmt.Errorf("container id is required: %w", ErrNotValid)
	}
	if s.Image == "" {
		return fmt.Errorf("image is required: %w", ErrNotValid)
	}
	return nil
}
