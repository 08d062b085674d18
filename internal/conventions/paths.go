package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default warden data directory name (relative to home).
	DefaultDataDir = ".warden"
	// DBFile is the sandbox registry database filename.
	DBFile = "warden.db"
)

// DataDir returns the warden data directory under the given home directory.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir)
}

// DBPath returns the default sandbox registry database path under the given
// home directory.
func DBPath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), DBFile)
}
