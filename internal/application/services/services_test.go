package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crewboard/core/internal/adapters/repository/memory"
	"github.com/crewboard/core/internal/infrastructure/config"
	"github.com/crewboard/core/internal/infrastructure/logger"
	"github.com/crewboard/core/internal/ports"
)

// testEnv wires the services against in-memory repositories.
type testEnv struct {
	users       *memory.UserRepository
	projects    *memory.ProjectRepository
	tasks       *memory.TaskRepository
	notes       *memory.NoteRepository
	invitations *memory.InvitationRepository

	auth           *AuthService
	userService    *UserService
	projectService *ProjectService
	taskService    *TaskService
	invService     *InvitationService
}

// mapCache is a map-backed CacheRepository for tests. Values round-trip
// through JSON like the Redis implementation.
type mapCache struct {
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *mapCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return fmt.Errorf("cache miss: %s", key)
	}
	return json.Unmarshal(data, dest)
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *mapCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.entries[key]
	return ok, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithCache(t, nil)
}

func newTestEnvWithCache(t *testing.T, cache ports.CacheRepository) *testEnv {
	t.Helper()

	users := memory.NewUserRepository()
	tasks := memory.NewTaskRepository()
	notes := memory.NewNoteRepository()
	invitations := memory.NewInvitationRepository()
	projects := memory.NewProjectRepository(tasks, notes, invitations)
	auth := memory.NewAuthRepository()

	jwtConfig := config.JWTConfig{
		Secret:           "test-secret-key-0123456789abcdef",
		ExpiresIn:        time.Hour,
		RefreshExpiresIn: 24 * time.Hour,
		Issuer:           "crewboard",
	}

	log := logger.NewNop()

	return &testEnv{
		users:          users,
		projects:       projects,
		tasks:          tasks,
		notes:          notes,
		invitations:    invitations,
		auth:           NewAuthService(users, auth, jwtConfig, log),
		userService:    NewUserService(users, projects, cache, log),
		projectService: NewProjectService(projects, tasks, users, cache, log),
		taskService:    NewTaskService(tasks, projects, notes, cache, log),
		invService:     NewInvitationService(invitations, projects, users, cache, log),
	}
}

// register creates an account and returns the auth response.
func (env *testEnv) register(t *testing.T, username, email string) *ports.AuthResponse {
	t.Helper()

	resp, err := env.auth.Register(context.Background(), ports.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "swordfish-42",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	return resp
}
