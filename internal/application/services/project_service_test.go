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

func TestCreateProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")

	note := "launch checklist"
	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{
		Name: "Launch",
		Note: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, "Launch", project.Name)
	assert.Equal(t, alice.User.ID, project.OwnerID)
	require.NotNil(t, project.Note)
	assert.Equal(t, note, *project.Note)

	// The new project lands at the end of the owner's display order.
	owner, err := env.users.GetByID(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Len(t, owner.ProjectOrder, 1)
	assert.Equal(t, project.ID, owner.ProjectOrder[0])
}

func TestGetProjectVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	got, err := env.projectService.GetProject(ctx, alice.User.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	// A stranger gets not-found, not forbidden.
	_, err = env.projectService.GetProject(ctx, bob.User.ID, project.ID)
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)
}

func TestUpdateProjectOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)
	require.NoError(t, env.projects.AddCollaborator(ctx, project.ID, bob.User.ID))

	name := "Relaunch"
	updated, err := env.projectService.UpdateProject(ctx, alice.User.ID, project.ID, ports.UpdateProjectRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Relaunch", updated.Name)

	// Collaborators cannot rename the project.
	_, err = env.projectService.UpdateProject(ctx, bob.User.ID, project.ID, ports.UpdateProjectRequest{Name: &name})
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)
}

func TestDeleteProjectCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(ctx, alice.User.ID, ports.CreateTaskRequest{
		ProjectID: project.ID,
		Name:      "Write doc",
	})
	require.NoError(t, err)

	note, err := env.taskService.AddNote(ctx, alice.User.ID, task.ID, "first draft")
	require.NoError(t, err)

	// Collaborators cannot delete the project.
	require.NoError(t, env.projects.AddCollaborator(ctx, project.ID, bob.User.ID))
	err = env.projectService.DeleteProject(ctx, bob.User.ID, project.ID)
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)

	require.NoError(t, env.projectService.DeleteProject(ctx, alice.User.ID, project.ID))

	_, err = env.projects.GetByID(ctx, project.ID)
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)
	_, err = env.tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	_, err = env.notes.GetByID(ctx, note.ID)
	assert.ErrorIs(t, err, entities.ErrNoteNotFound)
}

func TestListProjectsFollowsStoredOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")

	first, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "First"})
	require.NoError(t, err)
	second, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Second"})
	require.NoError(t, err)
	third, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Third"})
	require.NoError(t, err)

	require.NoError(t, env.userService.SetProjectOrder(ctx, alice.User.ID, []uuid.UUID{third.ID, first.ID, second.ID}))

	projects, err := env.projectService.ListProjects(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, third.ID, projects[0].ID)
	assert.Equal(t, first.ID, projects[1].ID)
	assert.Equal(t, second.ID, projects[2].ID)
}

func TestListProjectsIncludesCollaborations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Shared"})
	require.NoError(t, err)
	require.NoError(t, env.projects.AddCollaborator(ctx, project.ID, bob.User.ID))

	projects, err := env.projectService.ListProjects(ctx, bob.User.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, project.ID, projects[0].ID)
}

func TestSetTaskOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	var ids []uuid.UUID
	for _, name := range []string{"one", "two", "three"} {
		task, err := env.taskService.CreateTask(ctx, alice.User.ID, ports.CreateTaskRequest{ProjectID: project.ID, Name: name})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	reordered := []uuid.UUID{ids[2], ids[0], ids[1]}
	require.NoError(t, env.projectService.SetTaskOrder(ctx, alice.User.ID, project.ID, reordered))

	tasks, err := env.taskService.ListTasks(ctx, alice.User.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, ids[2], tasks[0].ID)
	assert.Equal(t, ids[0], tasks[1].ID)
	assert.Equal(t, ids[1], tasks[2].ID)

	t.Run("partial order rejected", func(t *testing.T) {
		err := env.projectService.SetTaskOrder(ctx, alice.User.ID, project.ID, ids[:2])
		assert.ErrorIs(t, err, entities.ErrOrderMismatch)
	})

	t.Run("foreign id rejected", func(t *testing.T) {
		err := env.projectService.SetTaskOrder(ctx, alice.User.ID, project.ID, []uuid.UUID{ids[0], ids[1], uuid.New()})
		assert.ErrorIs(t, err, entities.ErrOrderMismatch)
	})
}
