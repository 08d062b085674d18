package docker

import (
	"context"
	"os"

	"github.com/moby/term"
)

// Terminal abstracts the local terminal for attached exec sessions: current
// size for eager resize and a notification stream for live resize events.
type Terminal interface {
	// Size returns the current terminal size. ok is false when the process is
	// not attached to a terminal.
	Size() (height, width uint, ok bool)
	// ResizeNotifications returns a channel that receives an event whenever
	// the terminal size changes. A nil channel means the platform or the
	// session cannot deliver resize events; receiving from it blocks forever,
	// which is the correct no-op behavior in a select loop.
	ResizeNotifications(ctx context.Context) <-chan struct{}
	// MakeRaw puts the terminal in raw mode and returns a restore function.
	MakeRaw() (restore func(), err error)
}

type localTerminal struct {
	fd uintptr
}

// NewLocalTerminal returns the Terminal backed by the process stdout.
func NewLocalTerminal() Terminal {
	return localTerminal{fd: os.Stdout.Fd()}
}

func (t localTerminal) Size() (uint, uint, bool) {
	ws, err := term.GetWinsize(t.fd)
	if err != nil || ws == nil {
		return 0, 0, false
	}
	return uint(ws.Height), uint(ws.Width), true
}

func (t localTerminal) ResizeNotifications(ctx context.Context) <-chan struct{} {
	return resizeNotifications(ctx)
}

func (t localTerminal) MakeRaw() (func(), error) {
	state, err := term.SetRawTerminal(t.fd)
	if err != nil {
		return nil, err
	}
	return func() { _ = term.RestoreTerminal(t.fd, state) }, nil
}
