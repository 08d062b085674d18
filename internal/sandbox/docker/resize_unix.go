//go:build !windows

package docker

import (
	"context"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// resizeNotifications forwards SIGWINCH into a channel until ctx is done.
func resizeNotifications(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGWINCH)

	go func() {
		defer signal.Stop(sigs)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigs:
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out
}
