package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sdklib "github.com/wardenhq/warden/pkg/lib"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Image string
}

func (c *Config) defaults() error {
	if c.Image == "" {
		return fmt.Errorf("image is required (WARDEN_INTEGRATION_IMAGE)")
	}
	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "WARDEN_INTEGRATION"
		envImage      = "WARDEN_INTEGRATION_IMAGE"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Image: os.Getenv(envImage),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// UniqueName generates a unique sandbox name for test isolation.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// NewTestClient creates an SDK client with a temp SQLite DB for test isolation.
// The client talks to the real container engine resolved from the environment.
func NewTestClient(t *testing.T) *sdklib.Client {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	client, err := sdklib.New(ctx, sdklib.Config{
		DBPath: dbPath,
		Engine: sdklib.EngineDocker,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

// CleanupSandbox registers a cleanup function that removes a sandbox forcefully.
func CleanupSandbox(t *testing.T, client *sdklib.Client, name string) {
	t.Helper()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		// Best effort cleanup.
		_ = client.RemoveSandbox(ctx, name, true)
	})
}
