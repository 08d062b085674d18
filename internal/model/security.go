package model

// SELinuxLabelMode controls the SELinux labeling of a sandbox container.
type SELinuxLabelMode string

const (
	// SELinuxKeepDefault leaves the engine's default labeling untouched.
	SELinuxKeepDefault SELinuxLabelMode = "keep-default"
	// SELinuxDisableForContainer disables SELinux separation for the container.
	SELinuxDisableForContainer SELinuxLabelMode = "disable"
)

// SecurityOptions is the security profile applied when creating a sandbox
// container.
//
// When Privileged is true the minimal-mode facets (MountDevFuse and
// SELinuxLabel) are still computed by callers but never materialized into the
// engine request: host policy already governs a privileged container, and
// overlaying minimal-mode hardening on it would be misleading.
type SecurityOptions struct {
	Privileged   bool
	MountDevFuse bool
	SELinuxLabel SELinuxLabelMode
}

// DefaultSecurityOptions returns the minimal-mode profile with FUSE enabled,
// which is what agent sandboxes need for overlay workspaces.
func DefaultSecurityOptions() SecurityOptions {
	return SecurityOptions{
		Privileged:   false,
		MountDevFuse: true,
		SELinuxLabel: SELinuxKeepDefault,
	}
}
