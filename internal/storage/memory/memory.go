package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wardenhq/warden/internal/log"
	"github.com/wardenhq/warden/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository. Records do
// not survive the process, it exists for tests and throwaway sandboxes.
type Repository struct {
	sandboxes map[string]model.Sandbox
	mu        sync.RWMutex
	logger    log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		sandboxes: make(map[string]model.Sandbox),
		logger:    cfg.Logger,
	}, nil
}

// CreateSandbox creates a new sandbox record. Both IDs and names are unique.
func (r *Repository) CreateSandbox(ctx context.Context, s model.Sandbox) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sandboxes[s.ID]; ok {
		return fmt.Errorf("sandbox with id %s: %w", s.ID, model.ErrAlreadyExists)
	}

	for _, existing := range r.sandboxes {
		if existing.Name == s.Name {
			return fmt.Errorf("sandbox with name %s: %w", s.Name, model.ErrAlreadyExists)
		}
	}

	r.sandboxes[s.ID] = s
	r.logger.Debugf("Created sandbox in repository: %s", s.ID)

	return nil
}

// GetSandbox retrieves a sandbox record by ID.
func (r *Repository) GetSandbox(ctx context.Context, id string) (*model.Sandbox, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sandbox, ok := r.sandboxes[id]
	if !ok {
		return nil, fmt.Errorf("sandbox %s: %w", id, model.ErrNotFound)
	}

	sandboxCopy := sandbox
	return &sandboxCopy, nil
}

// GetSandboxByName retrieves a sandbox record by name.
func (r *Repository) GetSandboxByName(ctx context.Context, name string) (*model.Sandbox, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, sandbox := range r.sandboxes {
		if sandbox.Name == name {
			sandboxCopy := sandbox
			return &sandboxCopy, nil
		}
	}

	return nil, fmt.Errorf("sandbox with name %s: %w", name, model.ErrNotFound)
}

// ListSandboxes returns all sandbox records, newest first.
func (r *Repository) ListSandboxes(ctx context.Context) ([]model.Sandbox, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sandboxes := make([]model.Sandbox, 0, len(r.sandboxes))
	for _, sandbox := range r.sandboxes {
		sandboxes = append(sandboxes, sandbox)
	}

	sort.Slice(sandboxes, func(i, j int) bool {
		return sandboxes[i].CreatedAt.After(sandboxes[j].CreatedAt)
	})

	return sandboxes, nil
}

// UpdateSandbox updates an existing sandbox record.
func (r *Repository) UpdateSandbox(ctx context.Context, s model.Sandbox) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sandboxes[s.ID]; !ok {
		return fmt.Errorf("sandbox %s: %w", s.ID, model.ErrNotFound)
	}

	r.sandboxes[s.ID] = s
	r.logger.Debugf("Updated sandbox in repository: %s", s.ID)

	return nil
}

// DeleteSandbox deletes a sandbox record.
func (r *Repository) DeleteSandbox(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sandboxes[id]; !ok {
		return fmt.Errorf("sandbox %s: %w", id, model.ErrNotFound)
	}

	delete(r.sandboxes, id)
	r.logger.Debugf("Deleted sandbox from repository: %s", id)

	return nil
}
