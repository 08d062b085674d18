package engine

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/wardenhq/warden/internal/model"
)

// Classify maps a transport error into a semantic engine error. The
// filesystem path is extracted from the socket URI; remote schemes yield no
// path and always degrade to a generic connection failure.
//
// errors.Is walks the error's full cause chain, not just its immediate value:
// client and serialization wrapper layers often bury the real I/O cause
// several levels deep.
func Classify(err error, socketURI string) error {
	if path, ok := socketPath(socketURI); ok {
		switch {
		case errors.Is(err, fs.ErrPermission):
			return model.PermissionDeniedError{Path: path}
		case errors.Is(err, fs.ErrNotExist):
			return model.SocketNotFoundError{Path: path}
		}
	}

	return model.ConnectionFailedError{Message: err.Error()}
}

// socketPath extracts a local filesystem path from a socket URI. Bare
// absolute paths are accepted as-is.
func socketPath(uri string) (string, bool) {
	switch {
	case strings.HasPrefix(uri, "unix://"):
		return strings.TrimPrefix(uri, "unix://"), true
	case strings.HasPrefix(uri, "npipe://"):
		return strings.TrimPrefix(uri, "npipe://"), true
	case strings.HasPrefix(uri, "http://"),
		strings.HasPrefix(uri, "https://"),
		strings.HasPrefix(uri, "tcp://"):
		return "", false
	case strings.HasPrefix(uri, "/"):
		return uri, true
	}
	return "", false
}
