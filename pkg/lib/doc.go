// Package lib provides a Go SDK for managing warden sandboxes programmatically.
//
// This package allows applications to launch, manage, and interact with agent
// sandboxes without shelling out to the warden CLI binary. It is useful for
// scripting, automation, and building tools on top of warden.
//
// # Quick Start
//
// Create a client, launch a sandbox, and execute commands:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Launch a sandbox.
//	sb, err := client.LaunchSandbox(ctx, lib.LaunchProfile{
//	    Name:     "my-agent",
//	    Image:    "ghcr.io/wardenhq/agent:latest",
//	    Cmd:      []string{"sleep", "infinity"},
//	    Security: lib.DefaultSecurityOptions(),
//	})
//
//	// Exec, then remove.
//	client.Exec(ctx, "my-agent", []string{"echo", "hello"}, nil)
//	client.RemoveSandbox(ctx, "my-agent", false)
//
// # Engines
//
// The SDK supports two engine types:
//
//   - [EngineDocker]: A real container engine reached over its Unix socket
//     (Docker or a compatible daemon such as Podman with the Docker API).
//     The socket is resolved from Config.Socket, DOCKER_HOST, or the default
//     location, in that order.
//   - [EngineFake]: In-memory simulation for unit testing. No real
//     infrastructure needed. Set [Config].Engine to [EngineFake] to use it.
//
// # Credentials
//
// Copy host agent credentials (~/.claude, ~/.codex) into a running sandbox:
//
//	client.UploadCredentials(ctx, "my-agent", lib.CredentialOptions{CopyClaude: true})
//
// Missing host directories are skipped silently; the returned result lists the
// container paths that were actually populated.
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrAlreadyExists]: Resource with the same name already exists.
//   - [ErrNotValid]: Invalid input or operation (e.g. exec in a stopped sandbox).
//
// # Testing
//
// Use [EngineFake] and a temporary database path to write tests without a
// container engine:
//
//	client, _ := lib.New(ctx, lib.Config{
//	    DBPath: filepath.Join(t.TempDir(), "test.db"),
//	    Engine: lib.EngineFake,
//	})
//	defer client.Close()
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. The
// underlying storage uses SQLite with WAL mode, and engine connections are
// created per-operation.
package lib
