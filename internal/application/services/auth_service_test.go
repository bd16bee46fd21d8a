package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewboard/core/internal/domain/entities"
	"github.com/crewboard/core/internal/ports"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.register(t, "alice", "alice@example.com")

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Empty(t, resp.User.PasswordHash)

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := env.auth.Register(ctx, ports.RegisterRequest{
			Username: "alice2",
			Email:    "alice@example.com",
			Password: "swordfish-42",
		})
		assert.ErrorIs(t, err, entities.ErrEmailTaken)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := env.auth.Register(ctx, ports.RegisterRequest{
			Username: "alice",
			Email:    "other@example.com",
			Password: "swordfish-42",
		})
		assert.ErrorIs(t, err, entities.ErrUsernameTaken)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "alice", "alice@example.com")

	t.Run("by username", func(t *testing.T) {
		resp, err := env.auth.Login(ctx, ports.LoginRequest{Identifier: "alice", Password: "swordfish-42"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("by email", func(t *testing.T) {
		resp, err := env.auth.Login(ctx, ports.LoginRequest{Identifier: "alice@example.com", Password: "swordfish-42"})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.auth.Login(ctx, ports.LoginRequest{Identifier: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := env.auth.Login(ctx, ports.LoginRequest{Identifier: "nobody", Password: "swordfish-42"})
		assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.register(t, "alice", "alice@example.com")

	claims, err := env.auth.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)

	_, err = env.auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshTokenRotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.register(t, "alice", "alice@example.com")

	rotated, err := env.auth.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The old token is revoked by the rotation.
	_, err = env.auth.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

	// The new one still works.
	_, err = env.auth.RefreshToken(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutRevokesRefreshTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.register(t, "alice", "alice@example.com")

	require.NoError(t, env.auth.Logout(ctx, resp.User.ID))

	_, err := env.auth.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}
