package creds

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tarEntry struct {
	name string
	mode int64
	typ  byte
}

func readEntries(t *testing.T, archive []byte) []tarEntry {
	t.Helper()

	var entries []tarEntry
	tr := tar.NewReader(bytes.NewReader(archive))
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		entries = append(entries, tarEntry{name: hdr.Name, mode: hdr.Mode, typ: hdr.Typeflag})
	}
	return entries
}

func TestPlannerPlan(t *testing.T) {
	tests := map[string]struct {
		fsys       fstest.MapFS
		copyClaude bool
		copyCodex  bool
		expPaths   []string
		expEntries []tarEntry
		expUpload  bool
		expErr     bool
	}{
		"Both directories present and enabled should include claude then codex": {
			fsys: fstest.MapFS{
				".claude":                  &fstest.MapFile{Mode: fs.ModeDir | 0o700},
				".claude/settings.json":    &fstest.MapFile{Data: []byte(`{}`), Mode: 0o600},
				".codex":                   &fstest.MapFile{Mode: fs.ModeDir | 0o755},
				".codex/auth.json":         &fstest.MapFile{Data: []byte(`{"t":1}`), Mode: 0o600},
				".codex/sessions":          &fstest.MapFile{Mode: fs.ModeDir | 0o700},
				".codex/sessions/last.log": &fstest.MapFile{Data: []byte("x"), Mode: 0o644},
			},
			copyClaude: true,
			copyCodex:  true,
			expPaths:   []string{"/root/.claude", "/root/.codex"},
			expEntries: []tarEntry{
				{name: ".claude/", mode: 0o700, typ: tar.TypeDir},
				{name: ".claude/settings.json", mode: 0o600, typ: tar.TypeReg},
				{name: ".codex/", mode: 0o755, typ: tar.TypeDir},
				{name: ".codex/auth.json", mode: 0o600, typ: tar.TypeReg},
				{name: ".codex/sessions/", mode: 0o700, typ: tar.TypeDir},
				{name: ".codex/sessions/last.log", mode: 0o644, typ: tar.TypeReg},
			},
			expUpload: true,
		},

		"Entries should be depth-first and lexicographic at every level": {
			fsys: fstest.MapFS{
				".claude":             &fstest.MapFile{Mode: fs.ModeDir | 0o755},
				".claude/zz.txt":      &fstest.MapFile{Data: []byte("z"), Mode: 0o644},
				".claude/aa":          &fstest.MapFile{Mode: fs.ModeDir | 0o755},
				".claude/aa/deep.txt": &fstest.MapFile{Data: []byte("d"), Mode: 0o644},
				".claude/mm.txt":      &fstest.MapFile{Data: []byte("m"), Mode: 0o644},
			},
			copyClaude: true,
			expPaths:   []string{"/root/.claude"},
			expEntries: []tarEntry{
				{name: ".claude/", mode: 0o755, typ: tar.TypeDir},
				{name: ".claude/aa/", mode: 0o755, typ: tar.TypeDir},
				{name: ".claude/aa/deep.txt", mode: 0o644, typ: tar.TypeReg},
				{name: ".claude/mm.txt", mode: 0o644, typ: tar.TypeReg},
				{name: ".claude/zz.txt", mode: 0o644, typ: tar.TypeReg},
			},
			expUpload: true,
		},

		"Only codex present with both toggles enabled should include only codex": {
			fsys: fstest.MapFS{
				".codex":           &fstest.MapFile{Mode: fs.ModeDir | 0o700},
				".codex/auth.json": &fstest.MapFile{Data: []byte(`{}`), Mode: 0o600},
			},
			copyClaude: true,
			copyCodex:  true,
			expPaths:   []string{"/root/.codex"},
			expEntries: []tarEntry{
				{name: ".codex/", mode: 0o700, typ: tar.TypeDir},
				{name: ".codex/auth.json", mode: 0o600, typ: tar.TypeReg},
			},
			expUpload: true,
		},

		"Present directory with a disabled toggle should not be included": {
			fsys: fstest.MapFS{
				".claude":               &fstest.MapFile{Mode: fs.ModeDir | 0o700},
				".claude/settings.json": &fstest.MapFile{Data: []byte(`{}`), Mode: 0o600},
			},
			copyClaude: false,
			copyCodex:  true,
			expPaths:   nil,
			expUpload:  false,
		},

		"No source present should yield an empty plan, which is a success": {
			fsys:       fstest.MapFS{},
			copyClaude: true,
			copyCodex:  true,
			expPaths:   nil,
			expUpload:  false,
		},

		"A credential path that is a regular file should fail": {
			fsys: fstest.MapFS{
				".claude": &fstest.MapFile{Data: []byte("not a dir"), Mode: 0o644},
			},
			copyClaude: true,
			expErr:     true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			planner, err := NewPlanner(PlannerConfig{FS: test.fsys})
			require.NoError(err)

			plan, err := planner.Plan(test.copyClaude, test.copyCodex)

			if test.expErr {
				assert.Error(err)
				return
			}

			require.NoError(err)
			assert.Equal(test.expPaths, plan.ExpectedContainerPaths)
			assert.Equal(!test.expUpload, plan.Empty())

			if test.expUpload {
				assert.Equal(test.expEntries, readEntries(t, plan.Archive))
			} else {
				assert.Empty(plan.Archive)
			}
		})
	}
}

func TestPlannerDeterministicOutput(t *testing.T) {
	fsys := fstest.MapFS{
		".claude":               &fstest.MapFile{Mode: fs.ModeDir | 0o700},
		".claude/settings.json": &fstest.MapFile{Data: []byte(`{}`), Mode: 0o600},
		".claude/projects":      &fstest.MapFile{Mode: fs.ModeDir | 0o755},
		".claude/projects/a.md": &fstest.MapFile{Data: []byte("a"), Mode: 0o644},
	}

	planner, err := NewPlanner(PlannerConfig{FS: fsys})
	require.NoError(t, err)

	first, err := planner.Plan(true, false)
	require.NoError(t, err)
	second, err := planner.Plan(true, false)
	require.NoError(t, err)

	// Byte-identical output for identical inputs.
	assert.Equal(t, first.Archive, second.Archive)
}
