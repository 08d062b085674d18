package docker

import "context"

// Windows has no SIGWINCH. A nil channel blocks forever in the attached exec
// select loop, so resize events are simply never delivered.
func resizeNotifications(_ context.Context) <-chan struct{} {
	return nil
}
