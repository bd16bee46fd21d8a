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

func TestInvite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")
	carol := env.register(t, "carol", "carol@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	invitation, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{
		Recipient: "bob",
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.InvitationStatusPending, invitation.Status)
	assert.Equal(t, bob.User.ID, invitation.RecipientID)
	assert.Equal(t, alice.User.ID, invitation.SenderID)

	t.Run("recipient addressable by email", func(t *testing.T) {
		inv, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{
			Recipient: "carol@example.com",
			ProjectID: project.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, carol.User.ID, inv.RecipientID)
	})

	t.Run("duplicate pending invitation rejected", func(t *testing.T) {
		_, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{
			Recipient: "bob",
			ProjectID: project.ID,
		})
		assert.ErrorIs(t, err, entities.ErrAlreadyInvited)
	})

	t.Run("owner cannot be invited", func(t *testing.T) {
		_, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{
			Recipient: "alice",
			ProjectID: project.ID,
		})
		assert.ErrorIs(t, err, entities.ErrAlreadyMember)
	})

	t.Run("sender must see the project", func(t *testing.T) {
		outsider := env.register(t, "dave", "dave@example.com")
		_, err := env.invService.Invite(ctx, outsider.User.ID, ports.InviteRequest{
			Recipient: "carol",
			ProjectID: project.ID,
		})
		assert.ErrorIs(t, err, entities.ErrProjectNotFound)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		_, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{
			Recipient: "nobody",
			ProjectID: project.ID,
		})
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestAcceptInvitation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	invitation, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{Recipient: "bob", ProjectID: project.ID})
	require.NoError(t, err)

	accepted, err := env.invService.Accept(ctx, bob.User.ID, invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InvitationStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.RespondedAt)

	// Acceptance grants shared access.
	stored, err := env.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCollaborator(bob.User.ID))

	t.Run("settled invitation cannot be accepted again", func(t *testing.T) {
		_, err := env.invService.Accept(ctx, bob.User.ID, invitation.ID)
		assert.ErrorIs(t, err, entities.ErrInvitationSettled)
	})

	t.Run("member cannot be re-invited", func(t *testing.T) {
		_, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{Recipient: "bob", ProjectID: project.ID})
		assert.ErrorIs(t, err, entities.ErrAlreadyMember)
	})
}

func TestRejectInvitation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	invitation, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{Recipient: "bob", ProjectID: project.ID})
	require.NoError(t, err)

	declined, err := env.invService.Reject(ctx, bob.User.ID, invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InvitationStatusDeclined, declined.Status)

	// No access was granted.
	stored, err := env.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsCollaborator(bob.User.ID))

	// A declined invitation does not block a new one.
	_, err = env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{Recipient: "bob", ProjectID: project.ID})
	assert.NoError(t, err)
}

func TestInvitationRecipientOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	env.register(t, "bob", "bob@example.com")
	carol := env.register(t, "carol", "carol@example.com")

	project, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)

	invitation, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{Recipient: "bob", ProjectID: project.ID})
	require.NoError(t, err)

	// Only the recipient may settle; everyone else gets not-found.
	_, err = env.invService.Accept(ctx, carol.User.ID, invitation.ID)
	assert.ErrorIs(t, err, entities.ErrInvitationNotFound)

	_, err = env.invService.Reject(ctx, alice.User.ID, invitation.ID)
	assert.ErrorIs(t, err, entities.ErrInvitationNotFound)

	_, err = env.invService.Accept(ctx, carol.User.ID, uuid.New())
	assert.ErrorIs(t, err, entities.ErrInvitationNotFound)
}

func TestListInvitations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice", "alice@example.com")
	bob := env.register(t, "bob", "bob@example.com")

	first, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "First"})
	require.NoError(t, err)
	second, err := env.projectService.CreateProject(ctx, alice.User.ID, ports.CreateProjectRequest{Name: "Second"})
	require.NoError(t, err)

	pendingInv, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{Recipient: "bob", ProjectID: first.ID})
	require.NoError(t, err)
	declinedInv, err := env.invService.Invite(ctx, alice.User.ID, ports.InviteRequest{Recipient: "bob", ProjectID: second.ID})
	require.NoError(t, err)
	_, err = env.invService.Reject(ctx, bob.User.ID, declinedInv.ID)
	require.NoError(t, err)

	t.Run("nil filter returns full history", func(t *testing.T) {
		invitations, err := env.invService.ListForUser(ctx, bob.User.ID, nil)
		require.NoError(t, err)
		require.Len(t, invitations, 2)
	})

	t.Run("pending filter", func(t *testing.T) {
		pending := entities.InvitationStatusPending
		invitations, err := env.invService.ListForUser(ctx, bob.User.ID, &pending)
		require.NoError(t, err)
		require.Len(t, invitations, 1)
		assert.Equal(t, pendingInv.ID, invitations[0].ID)
	})

	t.Run("explicit status filter", func(t *testing.T) {
		declined := entities.InvitationStatusDeclined
		invitations, err := env.invService.ListForUser(ctx, bob.User.ID, &declined)
		require.NoError(t, err)
		require.Len(t, invitations, 1)
		assert.Equal(t, declinedInv.ID, invitations[0].ID)
	})

	t.Run("sender sees nothing", func(t *testing.T) {
		invitations, err := env.invService.ListForUser(ctx, alice.User.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, invitations)
	})
}
