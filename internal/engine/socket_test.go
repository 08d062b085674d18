package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSocket(t *testing.T) {
	tests := map[string]struct {
		explicit  string
		env       map[string]string
		expSocket string
	}{
		"Explicit config should win over any environment variable": {
			explicit: "unix:///custom/engine.sock",
			env: map[string]string{
				"DOCKER_HOST":    "unix:///docker.sock",
				"CONTAINER_HOST": "unix:///container.sock",
				"PODMAN_HOST":    "unix:///podman.sock",
			},
			expSocket: "unix:///custom/engine.sock",
		},

		"DOCKER_HOST should win over CONTAINER_HOST and PODMAN_HOST": {
			env: map[string]string{
				"DOCKER_HOST":    "unix:///docker.sock",
				"CONTAINER_HOST": "unix:///container.sock",
				"PODMAN_HOST":    "unix:///podman.sock",
			},
			expSocket: "unix:///docker.sock",
		},

		"CONTAINER_HOST should win over PODMAN_HOST": {
			env: map[string]string{
				"CONTAINER_HOST": "unix:///container.sock",
				"PODMAN_HOST":    "unix:///podman.sock",
			},
			expSocket: "unix:///container.sock",
		},

		"PODMAN_HOST should be used when higher priority variables are unset": {
			env: map[string]string{
				"PODMAN_HOST": "unix:///podman.sock",
			},
			expSocket: "unix:///podman.sock",
		},

		"Empty value at a higher priority variable should fall through": {
			env: map[string]string{
				"DOCKER_HOST":    "",
				"CONTAINER_HOST": "unix:///container.sock",
			},
			expSocket: "unix:///container.sock",
		},

		"No config and no environment should use the platform default": {
			env:       map[string]string{},
			expSocket: defaultSocket,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			getenv := func(key string) string { return test.env[key] }

			got := ResolveSocket(test.explicit, getenv)

			assert.Equal(t, test.expSocket, got)
		})
	}
}
