package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewboard/core/internal/domain/entities"
	"github.com/crewboard/core/internal/ports"
)

func TestGetUserStripsPasswordHash(t *testing.T) {
	env := newTestEnv(t)

	alice := env.register(t, "alice", "alice@example.com")

	user, err := env.userService.GetUser(context.Background(), alice.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = env.userService.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")

	t.Run("wrong old password rejected", func(t *testing.T) {
		err := env.userService.ChangePassword(ctx, alice.User.ID, "wrong", "new-password-1")
		assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})

	require.NoError(t, env.userService.ChangePassword(ctx, alice.User.ID, "swordfish-42", "new-password-1"))

	// The old password no longer works, the new one does.
	_, err := env.auth.Login(ctx, ports.LoginRequest{Identifier: "alice", Password: "swordfish-42"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, ports.LoginRequest{Identifier: "alice", Password: "new-password-1"})
	assert.NoError(t, err)
}

func TestSetProjectOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")

	first, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "First"})
	require.NoError(t, err)
	second, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Second"})
	require.NoError(t, err)

	require.NoError(t, env.userService.SetProjectOrder(ctx, alice.User.ID, []uuid.UUID{second.ID, first.ID}))

	stored, err := env.users.GetByID(ctx, alice.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second.ID, first.ID}, stored.ProjectOrder)

	t.Run("partial order rejected", func(t *testing.T) {
		err := env.userService.SetProjectOrder(ctx, alice.User.ID, []uuid.UUID{first.ID})
		assert.ErrorIs(t, err, entities.ErrOrderMismatch)
	})

	t.Run("foreign project rejected", func(t *testing.T) {
		err := env.userService.SetProjectOrder(ctx, alice.User.ID, []uuid.UUID{first.ID, uuid.New()})
		assert.ErrorIs(t, err, entities.ErrOrderMismatch)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := env.userService.SetProjectOrder(ctx, uuid.New(), nil)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestSetProjectOrderInvalidatesCachedListing(t *testing.T) {
	env := newTestEnvWithCache(t, newMapCache())
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")

	first, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "First"})
	require.NoError(t, err)
	second, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Second"})
	require.NoError(t, err)

	// Fill the cache with the current ordering.
	listed, err := env.projectService.ListProjects(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{first.ID, second.ID}, []uuid.UUID{listed[0].ID, listed[1].ID})

	require.NoError(t, env.userService.SetProjectOrder(ctx, alice.User.ID, []uuid.UUID{second.ID, first.ID}))

	// The next listing must reflect the new order, not the cached one.
	listed, err = env.projectService.ListProjects(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}
