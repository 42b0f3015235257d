package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/events"
	"github.com/SscSPs/survey_workspace_app/internal/platform/id"
	"github.com/SscSPs/survey_workspace_app/internal/platform/validation"
	"github.com/SscSPs/survey_workspace_app/internal/utils"
)

// DefaultInvitationTTL is how long an invitation stays acceptable.
const DefaultInvitationTTL = 7 * 24 * time.Hour

// invitationService implements the InvitationSvcFacade interface
type invitationService struct {
	BaseService
	workspaceRepo  portsrepo.WorkspaceReader
	userRepo       portsrepo.UserReader
	membershipRepo portsrepo.MembershipReader
	invitationRepo portsrepo.InvitationRepositoryFacade
	txRunner       portsrepo.TxRunner
	dispatcher     events.Dispatcher
	newToken       func() (string, error)
	ttl            time.Duration
}

// InvitationOption is a functional option for configuring the invitation service
type InvitationOption func(*invitationService)

// WithInvitationTTL overrides the invitation lifetime.
func WithInvitationTTL(ttl time.Duration) InvitationOption {
	return func(s *invitationService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithInvitationClock replaces the clock used for expiry decisions.
func WithInvitationClock(now func() time.Time) InvitationOption {
	return func(s *invitationService) {
		s.now = now
	}
}

// WithTokenGenerator replaces the invitation token source.
func WithTokenGenerator(gen func() (string, error)) InvitationOption {
	return func(s *invitationService) {
		s.newToken = gen
	}
}

// NewInvitationService creates the invitation engine.
func NewInvitationService(repos portsrepo.RepositoryProvider, dispatcher events.Dispatcher, options ...InvitationOption) portssvc.InvitationSvcFacade {
	svc := &invitationService{
		workspaceRepo:  repos.WorkspaceRepo,
		userRepo:       repos.UserRepo,
		membershipRepo: repos.MembershipRepo,
		invitationRepo: repos.InvitationRepo,
		txRunner:       repos.TxRunner,
		dispatcher:     dispatcher,
		newToken:       utils.GenerateInvitationToken,
		ttl:            DefaultInvitationTTL,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.InvitationSvcFacade = (*invitationService)(nil)

// CreateInvitation creates a pending invitation and schedules the invitation email.
func (s *invitationService) CreateInvitation(ctx context.Context, workspaceID, inviterID int64, email string, role domain.WorkspaceRole) (*domain.WorkspaceInvitation, error) {
	email = normalizeEmail(email)
	if err := validation.Var("email", email, "required,email,max=255"); err != nil {
		return nil, err
	}
	role = normalizeRole(role)
	if !role.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}

	ws, err := s.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	inviter, err := s.userRepo.FindUserByID(ctx, inviterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		s.LogError(ctx, err, "Failed to load inviter", slog.Int64("user_id", inviterID))
		return nil, err
	}

	inviteeID, err := s.resolveInvitee(ctx, ws, email)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoPendingInvitation(ctx, workspaceID, email); err != nil {
		return nil, err
	}

	token, err := s.newToken()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate invitation token")
		return nil, apperrors.NewAppError(500, "failed to generate invitation token", err)
	}

	now := s.Now()
	invitation := domain.WorkspaceInvitation{
		InvitationID: id.New(),
		WorkspaceID:  workspaceID,
		InviterID:    inviterID,
		InviteeEmail: email,
		InviteeID:    inviteeID,
		Role:         role,
		Token:        token,
		Status:       domain.InvitationPending,
		ExpiresAt:    now.Add(s.ttl),
		SentAt:       now,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.invitationRepo.SaveInvitation(ctx, invitation); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save invitation",
				slog.Int64("workspace_id", workspaceID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Invitation created",
		slog.Int64("invitation_id", invitation.InvitationID),
		slog.Int64("workspace_id", workspaceID),
		slog.String("role", string(role)))

	s.dispatcher.Dispatch(ctx, invitationSentEvent(ws, inviter, &invitation, now))
	return &invitation, nil
}

// resolveInvitee returns the account behind email, failing when it already belongs to the workspace.
func (s *invitationService) resolveInvitee(ctx context.Context, ws *domain.Workspace, email string) (*int64, error) {
	invitee, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to look up invitee")
		return nil, err
	}

	if IsWorkspaceOwner(ws, invitee.UserID) {
		return nil, apperrors.ErrAlreadyMember
	}
	if _, err := s.membershipRepo.FindMembership(ctx, ws.WorkspaceID, invitee.UserID); err == nil {
		return nil, apperrors.ErrAlreadyMember
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check invitee membership", slog.Int64("workspace_id", ws.WorkspaceID))
		return nil, err
	}

	inviteeID := invitee.UserID
	return &inviteeID, nil
}

// ensureNoPendingInvitation fails when a live pending invitation exists. A stale one is expired first.
func (s *invitationService) ensureNoPendingInvitation(ctx context.Context, workspaceID int64, email string) error {
	existing, err := s.invitationRepo.FindPendingInvitation(ctx, workspaceID, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to look up pending invitation", slog.Int64("workspace_id", workspaceID))
		return err
	}

	if !existing.IsExpiredAt(s.Now()) {
		return apperrors.ErrDuplicateInvitation
	}
	if _, err := s.invitationRepo.TransitionInvitation(ctx, existing.InvitationID, domain.InvitationPending, domain.InvitationExpired, nil); err != nil {
		s.LogError(ctx, err, "Failed to expire stale invitation", slog.Int64("invitation_id", existing.InvitationID))
		return err
	}
	return nil
}

// ValidateInvitation returns the pending invitation behind token.
func (s *invitationService) ValidateInvitation(ctx context.Context, token string) (*domain.WorkspaceInvitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.ErrInvalidToken
	}

	invitation, err := s.invitationRepo.FindInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		s.LogError(ctx, err, "Failed to look up invitation token")
		return nil, err
	}

	switch invitation.Status {
	case domain.InvitationPending:
	case domain.InvitationExpired:
		return nil, apperrors.ErrInvitationExpired
	default:
		return nil, apperrors.ErrInvitationNotPending
	}

	if invitation.IsExpiredAt(s.Now()) {
		if _, err := s.invitationRepo.TransitionInvitation(ctx, invitation.InvitationID, domain.InvitationPending, domain.InvitationExpired, nil); err != nil {
			s.LogError(ctx, err, "Failed to mark invitation expired", slog.Int64("invitation_id", invitation.InvitationID))
		}
		return nil, apperrors.ErrInvitationExpired
	}
	return invitation, nil
}

// GetInvitationDetails validates token and adds workspace and inviter names.
func (s *invitationService) GetInvitationDetails(ctx context.Context, token string) (*domain.InvitationDetails, error) {
	invitation, err := s.ValidateInvitation(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.describe(ctx, invitation)
}

func (s *invitationService) describe(ctx context.Context, invitation *domain.WorkspaceInvitation) (*domain.InvitationDetails, error) {
	ws, err := s.loadWorkspace(ctx, invitation.WorkspaceID)
	if err != nil {
		return nil, err
	}

	details := &domain.InvitationDetails{
		WorkspaceInvitation: *invitation,
		WorkspaceName:       ws.Name,
	}
	inviter, err := s.userRepo.FindUserByID(ctx, invitation.InviterID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load inviter", slog.Int64("user_id", invitation.InviterID))
		return nil, err
	}
	details.InviterName = inviter.DisplayName()
	return details, nil
}

// AcceptInvitation marks the invitation accepted and adds the membership in one transaction.
func (s *invitationService) AcceptInvitation(ctx context.Context, token string, userID int64) (*domain.InvitationAcceptance, error) {
	invitation, err := s.ValidateInvitation(ctx, token)
	if err != nil {
		return nil, err
	}
	ws, err := s.loadWorkspace(ctx, invitation.WorkspaceID)
	if err != nil {
		return nil, err
	}

	result := &domain.InvitationAcceptance{Workspace: *ws, Role: invitation.Role}
	err = s.txRunner.WithTx(ctx, func(stores portsrepo.StoreProvider) error {
		ok, err := stores.Invitations().TransitionInvitation(ctx, invitation.InvitationID, domain.InvitationPending, domain.InvitationAccepted, &userID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInvitationNotPending
		}

		if IsWorkspaceOwner(ws, userID) {
			result.AlreadyMember = true
			result.Role = domain.RoleOwner
			return nil
		}
		existing, err := stores.Memberships().FindMembership(ctx, ws.WorkspaceID, userID)
		if err == nil {
			result.AlreadyMember = true
			result.Role = existing.Role
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		_, err = stores.Memberships().UpsertMembership(ctx, domain.WorkspaceMember{
			WorkspaceID: ws.WorkspaceID,
			UserID:      userID,
			Role:        invitation.Role,
			JoinedAt:    s.Now(),
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvitationNotPending) {
			s.LogError(ctx, err, "Failed to accept invitation",
				slog.Int64("invitation_id", invitation.InvitationID),
				slog.Int64("user_id", userID))
		}
		return nil, err
	}

	invitation.Status = domain.InvitationAccepted
	invitation.InviteeID = &userID
	result.Invitation = *invitation

	s.LogInfo(ctx, "Invitation accepted",
		slog.Int64("invitation_id", invitation.InvitationID),
		slog.Int64("workspace_id", ws.WorkspaceID),
		slog.Bool("already_member", result.AlreadyMember))
	return result, nil
}

// DeclineInvitation marks the invitation declined by userID.
func (s *invitationService) DeclineInvitation(ctx context.Context, token string, userID int64) (*domain.WorkspaceInvitation, error) {
	invitation, err := s.ValidateInvitation(ctx, token)
	if err != nil {
		return nil, err
	}

	ok, err := s.invitationRepo.TransitionInvitation(ctx, invitation.InvitationID, domain.InvitationPending, domain.InvitationDeclined, &userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to decline invitation", slog.Int64("invitation_id", invitation.InvitationID))
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvitationNotPending
	}

	invitation.Status = domain.InvitationDeclined
	invitation.InviteeID = &userID
	s.LogInfo(ctx, "Invitation declined", slog.Int64("invitation_id", invitation.InvitationID))
	return invitation, nil
}

// CancelInvitation withdraws a pending invitation. Only the workspace owner may cancel.
func (s *invitationService) CancelInvitation(ctx context.Context, invitationID, actorID int64) (*domain.WorkspaceInvitation, error) {
	invitation, ws, err := s.loadOwnedInvitation(ctx, invitationID, actorID, "Only the workspace owner can cancel invitations")
	if err != nil {
		return nil, err
	}
	if !invitation.IsPending() {
		return nil, apperrors.ErrInvitationNotPending
	}

	ok, err := s.invitationRepo.TransitionInvitation(ctx, invitationID, domain.InvitationPending, domain.InvitationCancelled, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel invitation", slog.Int64("invitation_id", invitationID))
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvitationNotPending
	}

	invitation.Status = domain.InvitationCancelled
	s.LogInfo(ctx, "Invitation cancelled",
		slog.Int64("invitation_id", invitationID),
		slog.Int64("workspace_id", ws.WorkspaceID))
	return invitation, nil
}

// ResendInvitation issues a new token and expiry. The previous token stops resolving.
func (s *invitationService) ResendInvitation(ctx context.Context, invitationID, actorID int64) (*domain.WorkspaceInvitation, error) {
	invitation, ws, err := s.loadOwnedInvitation(ctx, invitationID, actorID, "Only the workspace owner can resend invitations")
	if err != nil {
		return nil, err
	}
	if !invitation.CanReissue() {
		return nil, apperrors.ErrInvitationNotPending
	}
	// The invitee may have joined by other means since the first send.
	inviteeID, err := s.resolveInvitee(ctx, ws, invitation.InviteeEmail)
	if err != nil {
		return nil, err
	}

	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load resending user", slog.Int64("user_id", actorID))
		return nil, err
	}

	token, err := s.newToken()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate invitation token")
		return nil, apperrors.NewAppError(500, "failed to generate invitation token", err)
	}

	now := s.Now()
	expiresAt := now.Add(s.ttl)
	if err := s.invitationRepo.ReissueInvitation(ctx, invitationID, token, expiresAt, now); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to reissue invitation", slog.Int64("invitation_id", invitationID))
		}
		return nil, err
	}

	invitation.Token = token
	invitation.Status = domain.InvitationPending
	invitation.ExpiresAt = expiresAt
	invitation.SentAt = now
	invitation.UpdatedAt = now
	if invitation.InviteeID == nil {
		invitation.InviteeID = inviteeID
	}

	s.LogInfo(ctx, "Invitation resent",
		slog.Int64("invitation_id", invitationID),
		slog.Int64("workspace_id", ws.WorkspaceID))

	if actor == nil {
		actor = &domain.User{UserID: actorID}
	}
	s.dispatcher.Dispatch(ctx, invitationSentEvent(ws, actor, invitation, now))
	return invitation, nil
}

func (s *invitationService) loadOwnedInvitation(ctx context.Context, invitationID, actorID int64, denied string) (*domain.WorkspaceInvitation, *domain.Workspace, error) {
	invitation, err := s.invitationRepo.FindInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrInvitationNotFound
		}
		s.LogError(ctx, err, "Failed to load invitation", slog.Int64("invitation_id", invitationID))
		return nil, nil, err
	}

	ws, err := s.loadWorkspace(ctx, invitation.WorkspaceID)
	if err != nil {
		return nil, nil, err
	}
	if !IsWorkspaceOwner(ws, actorID) {
		s.LogDebug(ctx, "Invitation change denied",
			slog.Int64("invitation_id", invitationID),
			slog.Int64("actor_id", actorID))
		return nil, nil, apperrors.ErrAccessDenied.WithMessage(denied)
	}
	return invitation, ws, nil
}

func (s *invitationService) loadWorkspace(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	ws, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrWorkspaceNotFound
		}
		s.LogError(ctx, err, "Failed to load workspace", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}
	return ws, nil
}

func invitationSentEvent(ws *domain.Workspace, inviter *domain.User, invitation *domain.WorkspaceInvitation, at time.Time) events.Event {
	return events.Event{
		Type:          events.TypeInvitationSent,
		WorkspaceID:   ws.WorkspaceID,
		WorkspaceName: ws.Name,
		ActorID:       inviter.UserID,
		ActorName:     inviter.DisplayName(),
		RecipientID:   invitation.InviteeID,
		Email:         invitation.InviteeEmail,
		InvitationID:  invitation.InvitationID,
		Token:         invitation.Token,
		Role:          string(invitation.Role),
		OccurredAt:    at,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// invitationMessage is the in-app text for an invitation.
func invitationMessage(workspaceName string) string {
	return fmt.Sprintf(`You've been invited to join "%s"`, workspaceName)
}

// memberAddedMessage is the in-app text for a direct add.
func memberAddedMessage(actorName, workspaceName string) string {
	return fmt.Sprintf(`%s added you to "%s"`, actorName, workspaceName)
}
