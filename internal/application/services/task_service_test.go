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

func TestCreateTask(t *testing.T) {
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
	assert.Equal(t, "Write doc", task.Name)
	assert.False(t, task.Completed)
	assert.Equal(t, 0, task.Position)

	// The task id lands at the end of the project's task order.
	stored, err := env.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, stored.TaskOrder, 1)
	assert.Equal(t, task.ID, stored.TaskOrder[0])

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := env.taskService.CreateTask(ctx, alice.User.ID, ports.CreateTaskRequest{
			ProjectID: project.ID,
			Name:      "   ",
		})
		assert.ErrorIs(t, err, entities.ErrEmptyName)
	})

	t.Run("stranger cannot create", func(t *testing.T) {
		_, err := env.taskService.CreateTask(ctx, bob.User.ID, ports.CreateTaskRequest{
			ProjectID: project.ID,
			Name:      "Sneaky",
		})
		assert.ErrorIs(t, err, entities.ErrProjectNotFound)
	})

	t.Run("collaborator can create", func(t *testing.T) {
		require.NoError(t, env.projects.AddCollaborator(ctx, project.ID, bob.User.ID))

		task, err := env.taskService.CreateTask(ctx, bob.User.ID, ports.CreateTaskRequest{
			ProjectID: project.ID,
			Name:      "Review doc",
		})
		require.NoError(t, err)
		assert.Equal(t, bob.User.ID, task.OwnerID)
		assert.Equal(t, 1, task.Position)
	})
}

func TestToggleTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)
	require.NoError(t, env.projects.AddCollaborator(ctx, project.ID, bob.User.ID))

	task, err := env.taskService.CreateTask(ctx, alice.User.ID, ports.CreateTaskRequest{ProjectID: project.ID, Name: "Write doc"})
	require.NoError(t, err)

	toggled, err := env.taskService.ToggleTask(ctx, alice.User.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	// A collaborator can toggle it back.
	toggled, err = env.taskService.ToggleTask(ctx, bob.User.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestRenameTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(ctx, alice.User.ID, ports.CreateTaskRequest{ProjectID: project.ID, Name: "Write doc"})
	require.NoError(t, err)

	renamed, err := env.taskService.RenameTask(ctx, alice.User.ID, task.ID, "Write better doc")
	require.NoError(t, err)
	assert.Equal(t, "Write better doc", renamed.Name)

	_, err = env.taskService.RenameTask(ctx, alice.User.ID, task.ID, " ")
	assert.ErrorIs(t, err, entities.ErrEmptyName)
}

func TestDeleteTaskDropsOrderEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	first, err := env.taskService.CreateTask(ctx, alice.User.ID, ports.CreateTaskRequest{ProjectID: project.ID, Name: "first"})
	require.NoError(t, err)
	second, err := env.taskService.CreateTask(ctx, alice.User.ID, ports.CreateTaskRequest{ProjectID: project.ID, Name: "second"})
	require.NoError(t, err)

	require.NoError(t, env.taskService.DeleteTask(ctx, alice.User.ID, first.ID))

	stored, err := env.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, stored.TaskOrder, 1)
	assert.Equal(t, second.ID, stored.TaskOrder[0])

	_, err = env.taskService.GetTask(ctx, alice.User.ID, first.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestTaskVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(ctx, alice.User.ID, ports.CreateTaskRequest{ProjectID: project.ID, Name: "Write doc"})
	require.NoError(t, err)

	// Tasks in invisible projects answer not-found.
	_, err = env.taskService.GetTask(ctx, bob.User.ID, task.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	_, err = env.taskService.ToggleTask(ctx, bob.User.ID, task.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	err = env.taskService.DeleteTask(ctx, bob.User.ID, task.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	_, err = env.taskService.ListTasks(ctx, bob.User.ID, project.ID)
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)
}

func TestNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(ctx, alice.User.ID, ports.CreateTaskRequest{ProjectID: project.ID, Name: "Write doc"})
	require.NoError(t, err)

	first, err := env.taskService.AddNote(ctx, alice.User.ID, task.ID, "first draft")
	require.NoError(t, err)
	assert.Equal(t, task.ID, first.TaskID)

	_, err = env.taskService.AddNote(ctx, alice.User.ID, task.ID, "second draft")
	require.NoError(t, err)

	notes, err := env.taskService.ListNotes(ctx, alice.User.ID, task.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "first draft", notes[0].Content)
	assert.Equal(t, "second draft", notes[1].Content)

	t.Run("stranger cannot read or delete", func(t *testing.T) {
		_, err := env.taskService.ListNotes(ctx, bob.User.ID, task.ID)
		assert.ErrorIs(t, err, entities.ErrTaskNotFound)

		err = env.taskService.DeleteNote(ctx, bob.User.ID, first.ID)
		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})

	t.Run("delete note", func(t *testing.T) {
		require.NoError(t, env.taskService.DeleteNote(ctx, alice.User.ID, first.ID))

		notes, err := env.taskService.ListNotes(ctx, alice.User.ID, task.ID)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "second draft", notes[0].Content)
	})

	t.Run("unknown note", func(t *testing.T) {
		err := env.taskService.DeleteNote(ctx, alice.User.ID, uuid.New())
		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})
}
