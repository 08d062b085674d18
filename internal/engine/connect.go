package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"

	"github.com/wardenhq/warden/internal/model"
)

// DefaultHealthCheckTimeout is the deadline used by the composed
// connect-and-verify helpers.
const DefaultHealthCheckTimeout = 5 * time.Second

// Pinger is the liveness probe surface of the engine client.
type Pinger interface {
	Ping(ctx context.Context) (types.Ping, error)
}

// Connect establishes an engine client for the given socket endpoint.
// Construction is lazy: no liveness check is implied, connection errors
// surface on the first API call. unix:// and npipe:// endpoints use the local
// transport, http:// and https:// a remote TCP transport, and anything else
// is treated as a bare unix socket path.
func Connect(socket string) (*client.Client, error) {
	opts := []client.Opt{client.WithAPIVersionNegotiation()}

	switch {
	case strings.HasPrefix(socket, "unix://"), strings.HasPrefix(socket, "npipe://"),
		strings.HasPrefix(socket, "tcp://"):
		opts = append(opts, client.WithHost(socket))
	case strings.HasPrefix(socket, "http://"):
		opts = append(opts, client.WithHost("tcp://"+strings.TrimPrefix(socket, "http://")))
	case strings.HasPrefix(socket, "https://"):
		opts = append(opts,
			client.WithHost("tcp://"+strings.TrimPrefix(socket, "https://")),
			client.WithTLSClientConfigFromEnv(),
		)
	default:
		opts = append(opts, client.WithHost("unix://"+socket))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, Classify(err, socket)
	}

	return cli, nil
}

// PingWithTimeout wraps the engine liveness probe in a fixed deadline. A
// probe that doesn't answer in time and a probe that answers with an error
// are distinct outcomes.
func PingWithTimeout(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := p.Ping(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return model.HealthCheckTimeoutError{Seconds: int(timeout / time.Second)}
	default:
		return model.HealthCheckFailedError{Message: err.Error()}
	}
}

// ConnectAndVerify composes connect and liveness probe. A verification
// failure is reported as a health-check error, never folded into a generic
// connect failure; probe errors whose cause chain points at the socket itself
// (missing file, permission) are classified into their specific variants
// because those messages are the actionable ones.
func ConnectAndVerify(ctx context.Context, socket string, timeout time.Duration) (*client.Client, error) {
	cli, err := Connect(socket)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := cli.Ping(pingCtx); err != nil {
		_ = cli.Close()

		classified := Classify(err, socket)
		switch classified.(type) {
		case model.SocketNotFoundError, model.PermissionDeniedError:
			return nil, classified
		}

		if errors.Is(err, context.DeadlineExceeded) {
			return nil, model.HealthCheckTimeoutError{Seconds: int(timeout / time.Second)}
		}
		return nil, model.HealthCheckFailedError{Message: err.Error()}
	}

	return cli, nil
}

// ConnectWithFallbackAndVerify resolves the socket from the explicit
// configuration value, the environment and the platform default, then
// connects and verifies. It returns the resolved socket so errors can be
// reported against the endpoint that was actually used.
func ConnectWithFallbackAndVerify(ctx context.Context, explicit string, getenv GetenvFunc, timeout time.Duration) (*client.Client, string, error) {
	socket := ResolveSocket(explicit, getenv)

	cli, err := ConnectAndVerify(ctx, socket, timeout)
	if err != nil {
		return nil, socket, err
	}

	return cli, socket, nil
}
