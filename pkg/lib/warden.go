package lib

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"k8s.io/client-go/util/homedir"

	"github.com/wardenhq/warden/internal/conventions"
	"github.com/wardenhq/warden/internal/creds"
	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/log"
	"github.com/wardenhq/warden/internal/sandbox"
	"github.com/wardenhq/warden/internal/sandbox/docker"
	"github.com/wardenhq/warden/internal/sandbox/fake"
	"github.com/wardenhq/warden/internal/storage"
	"github.com/wardenhq/warden/internal/storage/sqlite"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. At minimum, an empty
// Config{} will use ~/.warden/warden.db for storage and connect to the
// container engine over the resolved default socket.
type Config struct {
	// DBPath is the SQLite sandbox registry path.
	// Default: ~/.warden/warden.db.
	DBPath string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger

	// Engine selects the sandbox engine implementation.
	// Default: [EngineDocker]. Set to [EngineFake] for testing without real
	// infrastructure.
	Engine EngineType

	// Socket is the container engine socket (e.g. "unix:///run/docker.sock").
	// When empty, DOCKER_HOST and then the platform default are used.
	// Only used when Engine is [EngineDocker].
	Socket string

	// HealthTimeout bounds the engine liveness probe on connect.
	// Default: 5s.
	HealthTimeout time.Duration
}

func (c *Config) defaults() error {
	if c.DBPath == "" {
		home := homedir.HomeDir()
		if home == "" {
			return fmt.Errorf("could not resolve user home dir, set DBPath explicitly")
		}
		c.DBPath = conventions.DBPath(home)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.Engine == "" {
		c.Engine = EngineDocker
	}

	if c.HealthTimeout == 0 {
		c.HealthTimeout = engine.DefaultHealthCheckTimeout
	}

	return nil
}

// Client is the main SDK entry point for managing sandboxes programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	repo          storage.Repository
	logger        log.Logger
	engineType    EngineType
	socket        string
	healthTimeout time.Duration
	homeDir       string
	fakeEng       *fake.Engine
	closeFn       func() error
}

// New creates a new SDK client backed by a SQLite sandbox registry.
//
// The caller must call [Client.Close] when done to release the database
// connection. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	c := &Client{
		repo:          repo,
		logger:        cfg.Logger,
		engineType:    cfg.Engine,
		socket:        cfg.Socket,
		healthTimeout: cfg.HealthTimeout,
		homeDir:       homedir.HomeDir(),
		closeFn:       repo.Close,
	}

	if cfg.Engine == EngineFake {
		c.fakeEng, err = fake.NewEngine(fake.EngineConfig{Logger: cfg.Logger})
		if err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("could not create fake engine: %w", err)
		}
	}

	return c, nil
}

// Close releases resources held by the client, including the database
// connection. After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

// Doctor runs preflight health checks against the configured engine.
//
// For [EngineDocker], this resolves the socket, connects, and probes the
// daemon. Returns a slice of [CheckResult] describing each check's outcome.
func (c *Client) Doctor(ctx context.Context) ([]CheckResult, error) {
	eng, closeEngine, err := c.newEngine(ctx, execStreams{})
	if err != nil {
		return nil, err
	}
	defer closeEngine()

	return fromInternalCheckResults(eng.Check(ctx)), nil
}

// execStreams carries the per-operation I/O streams for engine construction.
type execStreams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (s *execStreams) defaults() {
	if s.stdin == nil {
		s.stdin = strings.NewReader("")
	}
	if s.stdout == nil {
		s.stdout = io.Discard
	}
	if s.stderr == nil {
		s.stderr = io.Discard
	}
}

// newEngine creates the engine for a single operation. For [EngineDocker] a
// fresh connection is established and must be released with the returned
// close function. The shared fake engine is returned for [EngineFake] so
// simulated containers survive across operations.
func (c *Client) newEngine(ctx context.Context, streams execStreams) (sandbox.Engine, func(), error) {
	if c.engineType == EngineFake {
		return c.fakeEng, func() {}, nil
	}

	cli, socket, err := engine.ConnectWithFallbackAndVerify(ctx, c.socket, os.Getenv, c.healthTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to container engine: %w", err)
	}

	c.logger.Debugf("Connected to container engine at %s", socket)

	streams.defaults()
	eng, err := docker.NewEngine(docker.EngineConfig{
		Client: cli,
		Stdin:  streams.stdin,
		Stdout: streams.stdout,
		Stderr: streams.stderr,
		Logger: c.logger,
	})
	if err != nil {
		_ = cli.Close()
		return nil, nil, fmt.Errorf("could not create engine: %w", err)
	}

	return eng, func() { _ = cli.Close() }, nil
}

// newPlanner creates the host credential planner.
func (c *Client) newPlanner() (*creds.Planner, error) {
	if c.homeDir == "" {
		return nil, fmt.Errorf("could not resolve user home dir for credential planning")
	}
	return creds.NewHomePlanner(c.homeDir, c.logger)
}
