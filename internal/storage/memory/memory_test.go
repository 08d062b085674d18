package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/storage/memory"
)

func sandboxFixture(id, name string, createdAt time.Time) model.Sandbox {
	return model.Sandbox{
		ID:          id,
		Name:        name,
		ContainerID: "container-" + id,
		Image:       "ghcr.io/wardenhq/agent:latest",
		Security:    model.DefaultSecurityOptions(),
		Status:      model.SandboxStatusRunning,
		CreatedAt:   createdAt,
	}
}

func TestRepositoryCRUD(t *testing.T) {
	now := time.Now().UTC()

	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository)
	}{
		"Creating a sandbox should allow retrieving it by ID and name": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				require.NoError(t, repo.CreateSandbox(ctx, sandboxFixture("id-1", "otter", now)))

				got, err := repo.GetSandbox(ctx, "id-1")
				require.NoError(t, err)
				assert.Equal(t, "otter", got.Name)
				assert.Equal(t, "container-id-1", got.ContainerID)

				gotByName, err := repo.GetSandboxByName(ctx, "otter")
				require.NoError(t, err)
				assert.Equal(t, "id-1", gotByName.ID)
			},
		},

		"Creating a duplicate ID should fail with already-exists": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				require.NoError(t, repo.CreateSandbox(ctx, sandboxFixture("id-1", "otter", now)))

				err := repo.CreateSandbox(ctx, sandboxFixture("id-1", "beaver", now))
				assert.True(t, errors.Is(err, model.ErrAlreadyExists))
			},
		},

		"Creating a duplicate name should fail with already-exists": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				require.NoError(t, repo.CreateSandbox(ctx, sandboxFixture("id-1", "otter", now)))

				err := repo.CreateSandbox(ctx, sandboxFixture("id-2", "otter", now))
				assert.True(t, errors.Is(err, model.ErrAlreadyExists))
			},
		},

		"Getting a missing sandbox should fail with not-found": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				_, err := repo.GetSandbox(ctx, "nope")
				assert.True(t, errors.Is(err, model.ErrNotFound))

				_, err = repo.GetSandboxByName(ctx, "nope")
				assert.True(t, errors.Is(err, model.ErrNotFound))
			},
		},

		"Listing should return sandboxes newest first": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				require.NoError(t, repo.CreateSandbox(ctx, sandboxFixture("id-1", "old", now.Add(-time.Hour))))
				require.NoError(t, repo.CreateSandbox(ctx, sandboxFixture("id-2", "new", now)))

				all, err := repo.ListSandboxes(ctx)
				require.NoError(t, err)
				require.Len(t, all, 2)
				assert.Equal(t, "new", all[0].Name)
				assert.Equal(t, "old", all[1].Name)
			},
		},

		"Updating a sandbox should persist the new status": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				sb := sandboxFixture("id-1", "otter", now)
				require.NoError(t, repo.CreateSandbox(ctx, sb))

				sb.Status = model.SandboxStatusStopped
				stopped := now.Add(time.Minute)
				sb.StoppedAt = &stopped
				require.NoError(t, repo.UpdateSandbox(ctx, sb))

				got, err := repo.GetSandbox(ctx, "id-1")
				require.NoError(t, err)
				assert.Equal(t, model.SandboxStatusStopped, got.Status)
				require.NotNil(t, got.StoppedAt)
			},
		},

		"Updating a missing sandbox should fail with not-found": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				err := repo.UpdateSandbox(ctx, sandboxFixture("nope", "otter", now))
				assert.True(t, errors.Is(err, model.ErrNotFound))
			},
		},

		"Deleting a sandbox should make it unretrievable": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				require.NoError(t, repo.CreateSandbox(ctx, sandboxFixture("id-1", "otter", now)))
				require.NoError(t, repo.DeleteSandbox(ctx, "id-1"))

				_, err := repo.GetSandbox(ctx, "id-1")
				assert.True(t, errors.Is(err, model.ErrNotFound))
			},
		},

		"Deleting a missing sandbox should fail with not-found": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				err := repo.DeleteSandbox(ctx, "nope")
				assert.True(t, errors.Is(err, model.ErrNotFound))
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(t, err)

			test.actions(context.TODO(), t, repo)
		})
	}
}
