// Package env parses environment variable specs as accepted by the CLI
// flags: "KEY=VALUE" sets an explicit value, a bare "KEY" inherits the value
// from the host environment.
package env

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var keyRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseSpecs parses a list of env specs into a map. Later entries override
// earlier ones. A bare key that is not set on the host is an error, so typos
// fail loudly instead of injecting empty values into the sandbox.
func ParseSpecs(specs []string) (map[string]string, error) {
	env := make(map[string]string, len(specs))

	for _, spec := range specs {
		key, value, err := parseSpec(spec)
		if err != nil {
			return nil, err
		}
		env[key] = value
	}

	return env, nil
}

func parseSpec(spec string) (key, value string, err error) {
	if spec == "" {
		return "", "", fmt.Errorf("environment variable spec cannot be empty")
	}

	key, value, explicit := strings.Cut(spec, "=")
	if !keyRegexp.MatchString(key) {
		return "", "", fmt.Errorf("invalid environment variable key %q", key)
	}

	if explicit {
		return key, value, nil
	}

	value, ok := os.LookupEnv(key)
	if !ok {
		return "", "", fmt.Errorf("environment variable %q is not set", key)
	}

	return key, value, nil
}

// MergeMaps merges two env maps, override wins on conflicts. The result is
// always a fresh non-nil map.
func MergeMaps(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
