// Package engine resolves, connects and verifies the container engine
// endpoint. The engine socket is high-trust: it is only ever used from the
// host side and never exposed to the agent container.
package engine

// Environment variables checked when no explicit socket is configured, in
// priority order.
const (
	EnvDockerHost    = "DOCKER_HOST"
	EnvContainerHost = "CONTAINER_HOST"
	EnvPodmanHost    = "PODMAN_HOST"
)

// GetenvFunc is the environment accessor used by the socket resolver, so the
// resolution stays a pure function in tests.
type GetenvFunc func(key string) string

// ResolveSocket resolves the engine endpoint. Order: explicit configuration
// value, then the first non-empty of DOCKER_HOST, CONTAINER_HOST and
// PODMAN_HOST, then the platform default. Empty environment values count as
// unset and fall through to the next source.
func ResolveSocket(explicit string, getenv GetenvFunc) string {
	if explicit != "" {
		return explicit
	}

	for _, key := range []string{EnvDockerHost, EnvContainerHost, EnvPodmanHost} {
		if v := getenv(key); v != "" {
			return v
		}
	}

	return defaultSocket
}
