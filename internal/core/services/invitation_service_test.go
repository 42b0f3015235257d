package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	"github.com/SscSPs/survey_workspace_app/internal/core/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/SscSPs/survey_workspace_app/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type InvitationServiceTestSuite struct {
	suite.Suite
	f  *fixture
	ws *domain.Workspace
}

func (s *InvitationServiceTestSuite) SetupTest() {
	s.f = newFixture(s.T())
	s.ws = s.f.createWorkspace(s.T(), "Research", domain.VisibilityPrivate)
}

func TestInvitationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvitationServiceTestSuite))
}

func (s *InvitationServiceTestSuite) invite(email string, role domain.WorkspaceRole) *domain.WorkspaceInvitation {
	inv, err := s.f.invitations.CreateInvitation(s.f.ctx, s.ws.WorkspaceID, ownerID, email, role)
	s.Require().NoError(err)
	return inv
}

func (s *InvitationServiceTestSuite) TestCreateInvitation_Pending() {
	inv := s.invite("  B@Example.com ", domain.RoleCollaborator)

	s.Equal(domain.InvitationPending, inv.Status)
	s.Equal("b@example.com", inv.InviteeEmail)
	s.Equal(domain.RoleCollaborator, inv.Role)
	s.Equal("token-1", inv.Token)
	s.Equal(inv.SentAt.Add(services.DefaultInvitationTTL), inv.ExpiresAt)
	s.Require().NotNil(inv.InviteeID)
	s.Equal(bobID, *inv.InviteeID)

	sent := s.f.dispatcher.OfType(events.TypeInvitationSent)
	s.Require().Len(sent, 1)
	s.Equal("b@example.com", sent[0].Email)
	s.Equal("token-1", sent[0].Token)
	s.Equal("Olive Owner", sent[0].ActorName)
	s.Equal("Research", sent[0].WorkspaceName)
	s.Require().NotNil(sent[0].RecipientID)
	s.Equal(bobID, *sent[0].RecipientID)
}

func (s *InvitationServiceTestSuite) TestCreateInvitation_UnknownEmailHasNoRecipient() {
	inv := s.invite("stranger@example.com", "")

	s.Equal(domain.RoleMember, inv.Role)
	s.Nil(inv.InviteeID)
	sent := s.f.dispatcher.OfType(events.TypeInvitationSent)
	s.Require().Len(sent, 1)
	s.Nil(sent[0].RecipientID)
}

func (s *InvitationServiceTestSuite) TestCreateInvitation_RejectsBadInput() {
	_, err := s.f.invitations.CreateInvitation(s.f.ctx, s.ws.WorkspaceID, ownerID, "not-an-email", domain.RoleMember)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.f.invitations.CreateInvitation(s.f.ctx, s.ws.WorkspaceID, ownerID, "x@example.com", "superuser")
	s.ErrorIs(err, apperrors.ErrInvalidRole)

	_, err = s.f.invitations.CreateInvitation(s.f.ctx, 777, ownerID, "x@example.com", domain.RoleMember)
	s.ErrorIs(err, apperrors.ErrWorkspaceNotFound)

	s.Empty(s.f.dispatcher.Events())
}

func (s *InvitationServiceTestSuite) TestCreateInvitation_ExistingMemberOrOwner() {
	_, err := s.f.invitations.CreateInvitation(s.f.ctx, s.ws.WorkspaceID, ownerID, "owner@example.com", domain.RoleMember)
	s.ErrorIs(err, apperrors.ErrAlreadyMember)

	_, err = s.f.memberships.UpsertMembership(s.f.ctx, s.ws.WorkspaceID, bobID, domain.RoleViewer)
	s.Require().NoError(err)
	_, err = s.f.invitations.CreateInvitation(s.f.ctx, s.ws.WorkspaceID, ownerID, "b@example.com", domain.RoleMember)
	s.ErrorIs(err, apperrors.ErrAlreadyMember)
}

func (s *InvitationServiceTestSuite) TestCreateInvitation_DuplicatePending() {
	s.invite("x@example.com", domain.RoleMember)

	_, err := s.f.invitations.CreateInvitation(s.f.ctx, s.ws.WorkspaceID, ownerID, "X@example.com", domain.RoleMember)
	s.ErrorIs(err, apperrors.ErrDuplicateInvitation)
	s.Len(s.f.dispatcher.OfType(events.TypeInvitationSent), 1)
}

func (s *InvitationServiceTestSuite) TestCreateInvitation_ReplacesStalePending() {
	first := s.invite("x@example.com", domain.RoleMember)
	s.f.clock.Advance(services.DefaultInvitationTTL + time.Hour)

	second := s.invite("x@example.com", domain.RoleViewer)
	s.NotEqual(first.InvitationID, second.InvitationID)

	stale, err := s.f.repos.InvitationRepo.FindInvitationByID(s.f.ctx, first.InvitationID)
	s.Require().NoError(err)
	s.Equal(domain.InvitationExpired, stale.Status)
}

func (s *InvitationServiceTestSuite) TestValidateInvitation() {
	inv := s.invite("b@example.com", domain.RoleMember)

	got, err := s.f.invitations.ValidateInvitation(s.f.ctx, inv.Token)
	s.Require().NoError(err)
	s.Equal(inv.InvitationID, got.InvitationID)

	_, err = s.f.invitations.ValidateInvitation(s.f.ctx, "")
	s.ErrorIs(err, apperrors.ErrInvalidToken)
	_, err = s.f.invitations.ValidateInvitation(s.f.ctx, "nope")
	s.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (s *InvitationServiceTestSuite) TestValidateInvitation_ExpiresPastDeadline() {
	inv := s.invite("b@example.com", domain.RoleMember)
	s.f.clock.Advance(services.DefaultInvitationTTL + time.Minute)

	_, err := s.f.invitations.ValidateInvitation(s.f.ctx, inv.Token)
	s.ErrorIs(err, apperrors.ErrInvitationExpired)

	stored, err := s.f.repos.InvitationRepo.FindInvitationByID(s.f.ctx, inv.InvitationID)
	s.Require().NoError(err)
	s.Equal(domain.InvitationExpired, stored.Status)

	_, err = s.f.invitations.AcceptInvitation(s.f.ctx, inv.Token, bobID)
	s.ErrorIs(err, apperrors.ErrInvitationExpired)
}

// Invite, accept, then accept again.
func (s *InvitationServiceTestSuite) TestAcceptInvitation_CreatesMembershipOnce() {
	inv := s.invite("b@example.com", domain.RoleCollaborator)
	s.Equal(inv.SentAt.Add(7*24*time.Hour), inv.ExpiresAt)

	result, err := s.f.invitations.AcceptInvitation(s.f.ctx, inv.Token, bobID)
	s.Require().NoError(err)
	s.False(result.AlreadyMember)
	s.Equal(domain.RoleCollaborator, result.Role)
	s.Equal(domain.InvitationAccepted, result.Invitation.Status)
	s.Equal(s.ws.WorkspaceID, result.Workspace.WorkspaceID)

	role, ok, err := s.f.memberships.GetRole(s.f.ctx, s.ws.WorkspaceID, bobID)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(domain.RoleCollaborator, role)

	stored, err := s.f.repos.InvitationRepo.FindInvitationByID(s.f.ctx, inv.InvitationID)
	s.Require().NoError(err)
	s.Equal(domain.InvitationAccepted, stored.Status)
	s.Require().NotNil(stored.InviteeID)
	s.Equal(bobID, *stored.InviteeID)

	_, err = s.f.invitations.AcceptInvitation(s.f.ctx, inv.Token, bobID)
	s.ErrorIs(err, apperrors.ErrInvitationNotPending)
}

func (s *InvitationServiceTestSuite) TestAcceptInvitation_AlreadyMemberKeepsSingleRow() {
	inv := s.invite("b@example.com", domain.RoleCollaborator)
	_, err := s.f.memberships.UpsertMembership(s.f.ctx, s.ws.WorkspaceID, bobID, domain.RoleViewer)
	s.Require().NoError(err)

	result, err := s.f.invitations.AcceptInvitation(s.f.ctx, inv.Token, bobID)
	s.Require().NoError(err)
	s.True(result.AlreadyMember)
	s.Equal(domain.RoleViewer, result.Role)

	members, err := s.f.memberships.ListMembers(s.f.ctx, s.ws.WorkspaceID)
	s.Require().NoError(err)
	s.Len(members, 2)

	stored, err := s.f.repos.InvitationRepo.FindInvitationByID(s.f.ctx, inv.InvitationID)
	s.Require().NoError(err)
	s.Equal(domain.InvitationAccepted, stored.Status)
	s.Require().NotNil(stored.InviteeID)
	s.Equal(bobID, *stored.InviteeID)
}

func (s *InvitationServiceTestSuite) TestAcceptInvitation_ConcurrentCallsSucceedOnce() {
	inv := s.invite("b@example.com", domain.RoleMember)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		errs      []error
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.f.invitations.AcceptInvitation(s.f.ctx, inv.Token, bobID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	for _, err := range errs {
		s.ErrorIs(err, apperrors.ErrInvitationNotPending)
	}

	members, err := s.f.memberships.ListMembers(s.f.ctx, s.ws.WorkspaceID)
	s.Require().NoError(err)
	s.Len(members, 2)
}

func (s *InvitationServiceTestSuite) TestDeclineInvitation() {
	inv := s.invite("b@example.com", domain.RoleMember)

	declined, err := s.f.invitations.DeclineInvitation(s.f.ctx, inv.Token, bobID)
	s.Require().NoError(err)
	s.Equal(domain.InvitationDeclined, declined.Status)

	_, err = s.f.invitations.AcceptInvitation(s.f.ctx, inv.Token, bobID)
	s.ErrorIs(err, apperrors.ErrInvitationNotPending)

	ok, err := s.f.memberships.IsMember(s.f.ctx, s.ws.WorkspaceID, bobID)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *InvitationServiceTestSuite) TestCancelInvitation() {
	inv := s.invite("b@example.com", domain.RoleMember)

	_, err := s.f.invitations.CancelInvitation(s.f.ctx, inv.InvitationID, bobID)
	s.ErrorIs(err, apperrors.ErrAccessDenied)

	cancelled, err := s.f.invitations.CancelInvitation(s.f.ctx, inv.InvitationID, ownerID)
	s.Require().NoError(err)
	s.Equal(domain.InvitationCancelled, cancelled.Status)

	_, err = s.f.invitations.CancelInvitation(s.f.ctx, inv.InvitationID, ownerID)
	s.ErrorIs(err, apperrors.ErrInvitationNotPending)

	_, err = s.f.invitations.ValidateInvitation(s.f.ctx, inv.Token)
	s.ErrorIs(err, apperrors.ErrInvitationNotPending)

	_, err = s.f.invitations.CancelInvitation(s.f.ctx, 123456, ownerID)
	s.ErrorIs(err, apperrors.ErrInvitationNotFound)
}

func (s *InvitationServiceTestSuite) TestResendInvitation_OldTokenStopsResolving() {
	inv := s.invite("b@example.com", domain.RoleMember)
	oldToken := inv.Token

	resent, err := s.f.invitations.ResendInvitation(s.f.ctx, inv.InvitationID, ownerID)
	s.Require().NoError(err)
	s.NotEqual(oldToken, resent.Token)
	s.Equal(domain.InvitationPending, resent.Status)

	_, err = s.f.invitations.ValidateInvitation(s.f.ctx, oldToken)
	s.ErrorIs(err, apperrors.ErrInvalidToken)

	got, err := s.f.invitations.ValidateInvitation(s.f.ctx, resent.Token)
	s.Require().NoError(err)
	s.Equal(inv.InvitationID, got.InvitationID)

	sent := s.f.dispatcher.OfType(events.TypeInvitationSent)
	s.Require().Len(sent, 2)
	s.Equal(resent.Token, sent[1].Token)
}

func (s *InvitationServiceTestSuite) TestResendInvitation_RevivesExpired() {
	inv := s.invite("b@example.com", domain.RoleMember)
	s.f.clock.Advance(services.DefaultInvitationTTL + time.Hour)
	_, err := s.f.invitations.ValidateInvitation(s.f.ctx, inv.Token)
	s.Require().ErrorIs(err, apperrors.ErrInvitationExpired)

	resent, err := s.f.invitations.ResendInvitation(s.f.ctx, inv.InvitationID, ownerID)
	s.Require().NoError(err)
	s.True(resent.ExpiresAt.After(s.f.clock.Now()))

	_, err = s.f.invitations.AcceptInvitation(s.f.ctx, resent.Token, bobID)
	s.NoError(err)
}

func (s *InvitationServiceTestSuite) TestResendInvitation_Rules() {
	inv := s.invite("b@example.com", domain.RoleMember)

	_, err := s.f.invitations.ResendInvitation(s.f.ctx, inv.InvitationID, carolID)
	s.ErrorIs(err, apperrors.ErrAccessDenied)

	_, err = s.f.invitations.AcceptInvitation(s.f.ctx, inv.Token, bobID)
	s.Require().NoError(err)
	_, err = s.f.invitations.ResendInvitation(s.f.ctx, inv.InvitationID, ownerID)
	s.ErrorIs(err, apperrors.ErrInvitationNotPending)
}

func (s *InvitationServiceTestSuite) TestResendInvitation_InviteeAlreadyJoined() {
	inv := s.invite("b@example.com", domain.RoleMember)
	_, err := s.f.memberships.UpsertMembership(s.f.ctx, s.ws.WorkspaceID, bobID, domain.RoleViewer)
	s.Require().NoError(err)

	_, err = s.f.invitations.ResendInvitation(s.f.ctx, inv.InvitationID, ownerID)
	s.ErrorIs(err, apperrors.ErrAlreadyMember)

	got, err := s.f.invitations.ValidateInvitation(s.f.ctx, inv.Token)
	s.Require().NoError(err, "the original token is left as it was")
	s.Equal(inv.InvitationID, got.InvitationID)
	s.Len(s.f.dispatcher.OfType(events.TypeInvitationSent), 1)
}

func (s *InvitationServiceTestSuite) TestGetInvitationDetails() {
	inv := s.invite("b@example.com", domain.RoleViewer)

	details, err := s.f.invitations.GetInvitationDetails(s.f.ctx, inv.Token)
	s.Require().NoError(err)
	s.Equal("Research", details.WorkspaceName)
	s.Equal("Olive Owner", details.InviterName)
	s.Equal(domain.RoleViewer, details.Role)
}

func TestInvitationService_CustomTTL(t *testing.T) {
	f := newFixture(t)
	ws := f.createWorkspace(t, "Short lived", domain.VisibilityPrivate)
	svc := services.NewInvitationService(f.repos, f.dispatcher,
		services.WithInvitationTTL(time.Hour),
		services.WithInvitationClock(f.clock.Now))

	inv, err := svc.CreateInvitation(f.ctx, ws.WorkspaceID, ownerID, "x@example.com", domain.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, inv.ExpiresAt.Sub(inv.SentAt))
	assert.Len(t, inv.Token, 64)

	f.clock.Advance(2 * time.Hour)
	_, err = svc.ValidateInvitation(f.ctx, inv.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvitationExpired)
}

func TestInvitationService_InviteViaWorkspace(t *testing.T) {
	f := newFixture(t)
	ws := f.createWorkspace(t, "Team", domain.VisibilityPrivate)

	_, err := f.workspaces.InviteToWorkspace(f.ctx, ws.WorkspaceID, ownerID, dto.InviteRequest{Email: "x@example.com", Role: domain.RoleMember})
	require.NoError(t, err)

	_, err = f.workspaces.InviteToWorkspace(f.ctx, ws.WorkspaceID, ownerID, dto.InviteRequest{Email: "x@example.com", Role: domain.RoleMember})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Equal(t, apperrors.CodeDuplicateInvitation, apperrors.CodeOf(err))

	pending, err := f.workspaces.GetPendingInvitations(f.ctx, ws.WorkspaceID, ownerID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
