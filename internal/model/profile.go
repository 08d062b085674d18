package model

// CredentialOptions selects which host credential directories get copied into
// a sandbox after creation.
type CredentialOptions struct {
	CopyClaude bool
	CopyCodex  bool
}

// LaunchProfile is a reusable sandbox launch description, typically loaded
// from a YAML file.
type LaunchProfile struct {
	Name        string
	Image       string
	Cmd         []string
	Env         map[string]string
	Security    SecurityOptions
	Resources   ResourceLimits
	Credentials CredentialOptions
}

// Validate validates the launch profile.
func (p LaunchProfile) Validate() error {
	if p.Image == "" {
		return MissingRequiredError{Field: "image"}
	}
	switch p.Security.SELinuxLabel {
	case SELinuxKeepDefault, SELinuxDisableForContainer:
	default:
		return InvalidValueError{Field: "selinux_label", Reason: "must be keep-default or disable"}
	}
	return nil
}
