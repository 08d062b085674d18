package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
)

// ConnectionFailedError is returned when the container engine can't be reached
// and no more specific cause could be identified.
type ConnectionFailedError struct {
	Message string
}

func (e ConnectionFailedError) Error() string {
	return fmt.Sprintf("could not connect to container engine: %s", e.Message)
}

// SocketNotFoundError is returned when the engine socket path doesn't exist.
type SocketNotFoundError struct {
	Path string
}

func (e SocketNotFoundError) Error() string {
	return fmt.Sprintf("container engine socket not found: %s", e.Path)
}

// PermissionDeniedError is returned when the engine socket exists but the
// current user can't access it.
type PermissionDeniedError struct {
	Path string
}

func (e PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied on container engine socket: %s", e.Path)
}

// HealthCheckFailedError is returned when the engine liveness probe fails.
type HealthCheckFailedError struct {
	Message string
}

func (e HealthCheckFailedError) Error() string {
	return fmt.Sprintf("container engine health check failed: %s", e.Message)
}

// HealthCheckTimeoutError is returned when the engine liveness probe doesn't
// answer within the deadline.
type HealthCheckTimeoutError struct {
	Seconds int
}

func (e HealthCheckTimeoutError) Error() string {
	return fmt.Sprintf("container engine health check timed out after %ds", e.Seconds)
}

// CreateFailedError is returned when the engine rejects a container creation.
type CreateFailedError struct {
	Message string
}

func (e CreateFailedError) Error() string {
	return fmt.Sprintf("could not create container: %s", e.Message)
}

// UploadFailedError is returned when a credential archive upload fails.
type UploadFailedError struct {
	ContainerID string
	Message     string
}

func (e UploadFailedError) Error() string {
	return fmt.Sprintf("could not upload to container %s: %s", e.ContainerID, e.Message)
}

// ExecFailedError is returned when an exec session fails for any reason other
// than the command exiting with a non-zero code.
type ExecFailedError struct {
	ContainerID string
	Message     string
}

func (e ExecFailedError) Error() string {
	return fmt.Sprintf("exec in container %s failed: %s", e.ContainerID, e.Message)
}

// MissingRequiredError is returned when a required request field is blank.
// It is raised locally, before any engine call.
type MissingRequiredError struct {
	Field string
}

func (e MissingRequiredError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

func (e MissingRequiredError) Unwrap() error { return ErrNotValid }

// InvalidValueError is returned when a request field has an unusable value.
// It is raised locally, before any engine call.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for field %q: %s", e.Field, e.Reason)
}

func (e InvalidValueError) Unwrap() error { return ErrNotValid }
