package model

import (
	"strings"
)

// CredentialUploadRequest describes which host credential directories should
// be injected into a container.
type CredentialUploadRequest struct {
	ContainerID string
	HostHomeDir string
	CopyClaude  bool
	CopyCodex   bool
}

// Validate checks the request before any filesystem or engine access.
func (r CredentialUploadRequest) Validate() error {
	if strings.TrimSpace(r.ContainerID) == "" {
		return MissingRequiredError{Field: "container_id"}
	}
	if strings.TrimSpace(r.HostHomeDir) == "" {
		return MissingRequiredError{Field: "host_home_dir"}
	}
	return nil
}

// CredentialUploadPlan is the prepared archive for a credential upload.
// ExpectedContainerPaths only contains toggles that are both enabled and
// present as host directories, always in claude-then-codex order.
type CredentialUploadPlan struct {
	Archive                []byte
	ExpectedContainerPaths []string
}

// Empty returns true when no credential source was selected and present, in
// which case no upload call should be made.
func (p CredentialUploadPlan) Empty() bool { return len(p.ExpectedContainerPaths) == 0 }

// CredentialUploadResult is the outcome of a credential injection. An empty
// path list is a success, not an error.
type CredentialUploadResult struct {
	ExpectedContainerPaths []string
}
