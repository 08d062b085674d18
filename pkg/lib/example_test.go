package lib_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wardenhq/warden/pkg/lib"
)

// This example shows how to create a client using the fake engine for testing.
func Example_testing() {
	ctx := context.Background()

	// Use a temp directory and fake engine for testing.
	dir, err := os.MkdirTemp("", "warden-example-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		DBPath: filepath.Join(dir, "warden.db"),
		Engine: lib.EngineFake,
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	// Launch a sandbox.
	sb, err := client.LaunchSandbox(ctx, lib.LaunchProfile{
		Name:     "test-sandbox",
		Image:    "alpine:3.20",
		Security: lib.DefaultSecurityOptions(),
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Launched: %s (status: %s)\n", sb.Name, sb.Status)

	// Output:
	// Launched: test-sandbox (status: running)
}

// This example shows the full sandbox lifecycle: launch, exec, remove.
func Example_lifecycle() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "warden-example-lifecycle-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		DBPath: filepath.Join(dir, "warden.db"),
		Engine: lib.EngineFake,
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	sb, err := client.LaunchSandbox(ctx, lib.LaunchProfile{
		Name:  "my-agent",
		Image: "ghcr.io/wardenhq/agent:latest",
		Cmd:   []string{"sleep", "infinity"},
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("Launched %s\n", sb.Name)

	res, err := client.Exec(ctx, "my-agent", []string{"echo", "hello"}, nil)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Exec exit code: %d\n", res.ExitCode)

	if err := client.RemoveSandbox(ctx, "my-agent", false); err != nil {
		panic(err)
	}
	fmt.Println("Removed")

	// Output:
	// Launched my-agent
	// Exec exit code: 0
	// Removed
}

// This example shows how to inspect SDK errors with errors.Is.
func Example_errorHandling() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "warden-example-errors-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		DBPath: filepath.Join(dir, "warden.db"),
		Engine: lib.EngineFake,
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	_, err = client.GetSandbox(ctx, "missing")
	fmt.Printf("not found: %v\n", errors.Is(err, lib.ErrNotFound))

	_, err = client.LaunchSandbox(ctx, lib.LaunchProfile{Name: "no-image"})
	fmt.Printf("not valid: %v\n", errors.Is(err, lib.ErrNotValid))

	// Output:
	// not found: true
	// not valid: true
}
