package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/sandbox"
	"github.com/wardenhq/warden/internal/sandbox/docker"
	"github.com/wardenhq/warden/internal/storage/sqlite"
)

// newEngine resolves the engine socket, connects, verifies the daemon is
// healthy and wraps the client in the sandbox engine. The returned close
// function releases the engine connection.
func newEngine(ctx context.Context, rootCmd *RootCommand) (sandbox.Engine, func(), error) {
	cli, socket, err := engine.ConnectWithFallbackAndVerify(ctx, rootCmd.Socket, os.Getenv, rootCmd.HealthTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to container engine: %w", err)
	}

	rootCmd.Logger.Debugf("Connected to container engine at %s", socket)

	eng, err := docker.NewEngine(docker.EngineConfig{
		Client: cli,
		Stdin:  rootCmd.Stdin,
		Stdout: rootCmd.Stdout,
		Stderr: rootCmd.Stderr,
		Logger: rootCmd.Logger,
	})
	if err != nil {
		_ = cli.Close()
		return nil, nil, fmt.Errorf("could not create engine: %w", err)
	}

	return eng, func() { _ = cli.Close() }, nil
}

// newRepository opens the sandbox registry.
func newRepository(ctx context.Context, rootCmd *RootCommand) (*sqlite.Repository, error) {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: rootCmd.DBPath,
		Logger: rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}
	return repo, nil
}
