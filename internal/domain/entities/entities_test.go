package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectAccess(t *testing.T) {
	owner := uuid.New()
	collaborator := uuid.New()
	stranger := uuid.New()

	project := &Project{
		ID:            uuid.New(),
		OwnerID:       owner,
		Collaborators: []uuid.UUID{collaborator},
	}

	assert.True(t, project.IsOwner(owner))
	assert.False(t, project.IsOwner(collaborator))

	assert.True(t, project.IsCollaborator(collaborator))
	assert.False(t, project.IsCollaborator(owner))

	assert.True(t, project.CanView(owner))
	assert.True(t, project.CanView(collaborator))
	assert.False(t, project.CanView(stranger))
}

func TestProjectAddCollaborator(t *testing.T) {
	owner := uuid.New()
	user := uuid.New()

	project := &Project{OwnerID: owner}

	project.AddCollaborator(user)
	assert.Len(t, project.Collaborators, 1)

	// Adding again is a no-op.
	project.AddCollaborator(user)
	assert.Len(t, project.Collaborators, 1)

	// The owner never appears in the collaborator set.
	project.AddCollaborator(owner)
	assert.Len(t, project.Collaborators, 1)
}

func TestTaskToggleCompleted(t *testing.T) {
	task := &Task{}

	task.ToggleCompleted()
	assert.True(t, task.Completed)

	task.ToggleCompleted()
	assert.False(t, task.Completed)
}

func TestInvitationLifecycle(t *testing.T) {
	t.Run("accept settles pending", func(t *testing.T) {
		inv := &Invitation{Status: InvitationStatusPending}

		require.NoError(t, inv.Accept())
		assert.Equal(t, InvitationStatusAccepted, inv.Status)
		assert.True(t, inv.IsSettled())
		require.NotNil(t, inv.RespondedAt)
	})

	t.Run("decline settles pending", func(t *testing.T) {
		inv := &Invitation{Status: InvitationStatusPending}

		require.NoError(t, inv.Decline())
		assert.Equal(t, InvitationStatusDeclined, inv.Status)
		assert.True(t, inv.IsSettled())
	})

	t.Run("settled invitations are final", func(t *testing.T) {
		inv := &Invitation{Status: InvitationStatusPending}
		require.NoError(t, inv.Accept())

		assert.ErrorIs(t, inv.Accept(), ErrInvitationSettled)
		assert.ErrorIs(t, inv.Decline(), ErrInvitationSettled)
		assert.Equal(t, InvitationStatusAccepted, inv.Status)
	})
}

func TestInvitationStatusIsValid(t *testing.T) {
	assert.True(t, InvitationStatusPending.IsValid())
	assert.True(t, InvitationStatusAccepted.IsValid())
	assert.True(t, InvitationStatusDeclined.IsValid())
	assert.False(t, InvitationStatus("expired").IsValid())
	assert.False(t, InvitationStatus("").IsValid())
}

func TestValidateOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	current := []uuid.UUID{a, b, c}

	t.Run("permutation is accepted", func(t *testing.T) {
		assert.NoError(t, ValidateOrder([]uuid.UUID{c, a, b}, current))
	})

	t.Run("identity is accepted", func(t *testing.T) {
		assert.NoError(t, ValidateOrder([]uuid.UUID{a, b, c}, current))
	})

	t.Run("missing member is rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateOrder([]uuid.UUID{a, b}, current), ErrOrderMismatch)
	})

	t.Run("unknown member is rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateOrder([]uuid.UUID{a, b, uuid.New()}, current), ErrOrderMismatch)
	})

	t.Run("duplicate member is rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateOrder([]uuid.UUID{a, a, b}, current), ErrOrderMismatch)
	})

	t.Run("empty against empty is accepted", func(t *testing.T) {
		assert.NoError(t, ValidateOrder(nil, nil))
	})
}

func TestSortByOrder(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	type item struct{ id uuid.UUID }
	idOf := func(i item) uuid.UUID { return i.id }

	t.Run("arranges by stored order", func(t *testing.T) {
		items := []item{{a}, {b}, {c}}
		sorted := SortByOrder(items, []uuid.UUID{c, a, b}, idOf)

		require.Len(t, sorted, 3)
		assert.Equal(t, c, sorted[0].id)
		assert.Equal(t, a, sorted[1].id)
		assert.Equal(t, b, sorted[2].id)
	})

	t.Run("unranked items keep insertion order at the tail", func(t *testing.T) {
		items := []item{{a}, {b}, {c}, {d}}
		sorted := SortByOrder(items, []uuid.UUID{b, a}, idOf)

		require.Len(t, sorted, 4)
		assert.Equal(t, b, sorted[0].id)
		assert.Equal(t, a, sorted[1].id)
		assert.Equal(t, c, sorted[2].id)
		assert.Equal(t, d, sorted[3].id)
	})

	t.Run("stale order entries are ignored", func(t *testing.T) {
		items := []item{{a}, {b}}
		sorted := SortByOrder(items, []uuid.UUID{d, b, c, a}, idOf)

		require.Len(t, sorted, 2)
		assert.Equal(t, b, sorted[0].id)
		assert.Equal(t, a, sorted[1].id)
	})

	t.Run("empty order leaves items untouched", func(t *testing.T) {
		items := []item{{c}, {a}}
		sorted := SortByOrder(items, nil, idOf)

		require.Len(t, sorted, 2)
		assert.Equal(t, c, sorted[0].id)
		assert.Equal(t, a, sorted[1].id)
	})
}
