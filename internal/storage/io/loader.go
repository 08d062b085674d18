package io

import (
	"context"
	"fmt"
	"io/fs"
	"math"

	"github.com/docker/go-units"
	"gopkg.in/yaml.v3"

	"github.com/wardenhq/warden/internal/model"
)

// ProfileYAMLRepository loads sandbox launch profiles from YAML files.
type ProfileYAMLRepository struct {
	fs fs.FS
}

// NewProfileYAMLRepository creates a new YAML profile repository.
func NewProfileYAMLRepository(filesystem fs.FS) *ProfileYAMLRepository {
	return &ProfileYAMLRepository{fs: filesystem}
}

// GetProfile loads a launch profile from a YAML file and returns a validated
// domain model.
func (r *ProfileYAMLRepository) GetProfile(ctx context.Context, path string) (model.LaunchProfile, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.LaunchProfile{}, fmt.Errorf("reading profile file: %w", err)
	}

	if ctx.Err() != nil {
		return model.LaunchProfile{}, ctx.Err()
	}

	var profile LaunchProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return model.LaunchProfile{}, fmt.Errorf("parsing YAML: %w", err)
	}

	mProfile, err := profile.toModel()
	if err != nil {
		return model.LaunchProfile{}, fmt.Errorf("invalid profile: %w", err)
	}
	if err := mProfile.Validate(); err != nil {
		return model.LaunchProfile{}, fmt.Errorf("invalid profile: %w", err)
	}

	return mProfile, nil
}

// LaunchProfile represents the YAML structure for a sandbox launch profile.
type LaunchProfile struct {
	Name        string             `yaml:"name"`
	Image       string             `yaml:"image"`
	Cmd         []string           `yaml:"cmd"`
	Env         map[string]string  `yaml:"env"`
	Security    *SecurityConfig    `yaml:"security,omitempty"`
	Resources   *ResourcesConfig   `yaml:"resources,omitempty"`
	Credentials *CredentialsConfig `yaml:"credentials,omitempty"`
}

// SecurityConfig represents the YAML structure for the security profile.
type SecurityConfig struct {
	Privileged   bool   `yaml:"privileged"`
	MountDevFuse *bool  `yaml:"mount_dev_fuse,omitempty"`
	SELinuxLabel string `yaml:"selinux_label,omitempty"`
}

// ResourcesConfig represents the YAML structure for resource limits. Memory
// accepts human-readable sizes ("512m", "2g").
type ResourcesConfig struct {
	Memory string  `yaml:"memory,omitempty"`
	CPUs   float64 `yaml:"cpus,omitempty"`
}

// CredentialsConfig represents the YAML structure for credential injection.
type CredentialsConfig struct {
	Claude bool `yaml:"claude"`
	Codex  bool `yaml:"codex"`
}

func (p LaunchProfile) toModel() (model.LaunchProfile, error) {
	profile := model.LaunchProfile{
		Name:     p.Name,
		Image:    p.Image,
		Cmd:      p.Cmd,
		Env:      p.Env,
		Security: model.DefaultSecurityOptions(),
	}

	if p.Security != nil {
		profile.Security.Privileged = p.Security.Privileged
		if p.Security.MountDevFuse != nil {
			profile.Security.MountDevFuse = *p.Security.MountDevFuse
		}
		if p.Security.SELinuxLabel != "" {
			profile.Security.SELinuxLabel = model.SELinuxLabelMode(p.Security.SELinuxLabel)
		}
	}

	if p.Resources != nil {
		if p.Resources.Memory != "" {
			mem, err := units.RAMInBytes(p.Resources.Memory)
			if err != nil {
				return model.LaunchProfile{}, fmt.Errorf("memory: %w", err)
			}
			profile.Resources.MemoryBytes = mem
		}
		if p.Resources.CPUs < 0 {
			return model.LaunchProfile{}, fmt.Errorf("cpus must not be negative")
		}
		profile.Resources.NanoCPUs = int64(math.Round(p.Resources.CPUs * 1e9))
	}

	if p.Credentials != nil {
		profile.Credentials = model.CredentialOptions{
			CopyClaude: p.Credentials.Claude,
			CopyCodex:  p.Credentials.Codex,
		}
	}

	return profile, nil
}
