// Package creds plans credential injection into agent sandboxes: it selects
// the host credential directories to copy and builds the tar archive that is
// uploaded into the container in a single engine call.
package creds

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/wardenhq/warden/internal/log"
	"github.com/wardenhq/warden/internal/model"
)

const (
	// ClaudeDir is the Claude Code credential directory under the host home.
	ClaudeDir = ".claude"
	// CodexDir is the Codex credential directory under the host home.
	CodexDir = ".codex"

	// ContainerCredentialRoot is the fixed container path the archive is
	// uploaded to. There is no per-file upload.
	ContainerCredentialRoot = "/root"

	defaultDirMode  = 0o755
	defaultFileMode = 0o644
)

// PlannerConfig is the configuration for the credential planner.
type PlannerConfig struct {
	// FS is the filesystem rooted at the host home directory. Scoping the
	// filesystem capability to the home keeps the planner from reading
	// anything else on the host.
	FS fs.FS
	// Logger is optional, defaults to log.Noop.
	Logger log.Logger
}

func (c *PlannerConfig) defaults() error {
	if c.FS == nil {
		return fmt.Errorf("fs is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "creds.Planner"})
	return nil
}

// Planner builds credential upload plans from a host home directory.
type Planner struct {
	fsys   fs.FS
	logger log.Logger
}

// NewPlanner creates a new credential planner.
func NewPlanner(cfg PlannerConfig) (*Planner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Planner{
		fsys:   cfg.FS,
		logger: cfg.Logger,
	}, nil
}

// NewHomePlanner creates a planner scoped to the given host home directory.
func NewHomePlanner(homeDir string, logger log.Logger) (*Planner, error) {
	if homeDir == "" {
		return nil, fmt.Errorf("home directory is required")
	}

	return NewPlanner(PlannerConfig{
		FS:     os.DirFS(homeDir),
		Logger: logger,
	})
}

// Plan selects the credential sources and builds the archive. For each source
// that is enabled: a missing host directory is silently skipped, a host path
// that exists but is not a directory is a fatal error, and a directory is
// included. Included paths are recorded in fixed claude-then-codex order. An
// empty selection yields an empty plan, which is a success.
func (p *Planner) Plan(copyClaude, copyCodex bool) (*model.CredentialUploadPlan, error) {
	sources := []struct {
		name    string
		enabled bool
	}{
		{name: ClaudeDir, enabled: copyClaude},
		{name: CodexDir, enabled: copyCodex},
	}

	var included []string
	for _, src := range sources {
		if !src.enabled {
			continue
		}

		info, err := fs.Stat(p.fsys, src.name)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			p.logger.Debugf("Credential directory %s not present, skipping", src.name)
			continue
		case err != nil:
			return nil, fmt.Errorf("could not inspect %s: %w", src.name, err)
		case !info.IsDir():
			return nil, fmt.Errorf("%s exists but is not a directory: %w", src.name, model.ErrNotValid)
		}

		included = append(included, src.name)
	}

	if len(included) == 0 {
		return &model.CredentialUploadPlan{}, nil
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, dir := range included {
		if err := p.archiveDir(tw, dir); err != nil {
			return nil, fmt.Errorf("could not archive %s: %w", dir, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("could not finish archive: %w", err)
	}

	paths := make([]string, 0, len(included))
	for _, dir := range included {
		paths = append(paths, path.Join(ContainerCredentialRoot, dir))
	}

	p.logger.Debugf("Planned credential archive: %d bytes, %v", buf.Len(), paths)

	return &model.CredentialUploadPlan{
		Archive:                buf.Bytes(),
		ExpectedContainerPaths: paths,
	}, nil
}

// archiveDir writes one directory entry then recurses depth-first. fs.ReadDir
// returns entries sorted by filename at every level, so the archive is
// byte-identical for identical inputs.
func (p *Planner) archiveDir(tw *tar.Writer, dir string) error {
	info, err := fs.Stat(p.fsys, dir)
	if err := tw.WriteHeader(dirHeader(dir, info, err)); err != nil {
		return err
	}

	entries, err := fs.ReadDir(p.fsys, dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		child := path.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := p.archiveDir(tw, child); err != nil {
				return err
			}
			continue
		}
		if err := p.archiveFile(tw, child, entry); err != nil {
			return err
		}
	}

	return nil
}

func (p *Planner) archiveFile(tw *tar.Writer, name string, entry fs.DirEntry) error {
	content, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		return err
	}

	info, err := entry.Info()
	hdr := fileHeader(name, int64(len(content)), info, err)
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if _, err := tw.Write(content); err != nil {
		return err
	}

	return nil
}

// dirHeader builds the tar header for a directory: trailing slash name and
// the host permission bits masked to the 12 POSIX mode bits, default 0755
// when the host mode is unavailable.
func dirHeader(name string, info fs.FileInfo, statErr error) *tar.Header {
	hdr := &tar.Header{
		Typeflag: tar.TypeDir,
		Name:     name + "/",
		Mode:     defaultDirMode,
	}
	if statErr == nil {
		if h, err := tar.FileInfoHeader(info, ""); err == nil {
			hdr.Mode = h.Mode
		}
	}
	return hdr
}

// fileHeader is the file counterpart of dirHeader, default mode 0644.
func fileHeader(name string, size int64, info fs.FileInfo, statErr error) *tar.Header {
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Size:     size,
		Mode:     defaultFileMode,
	}
	if statErr == nil {
		if h, err := tar.FileInfoHeader(info, ""); err == nil {
			hdr.Mode = h.Mode
		}
	}
	return hdr
}
