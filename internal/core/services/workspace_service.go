package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/SscSPs/survey_workspace_app/internal/events"
	"github.com/SscSPs/survey_workspace_app/internal/platform/id"
	"github.com/SscSPs/survey_workspace_app/internal/platform/validation"
)

// workspaceService implements the WorkspaceSvcFacade interface
type workspaceService struct {
	BaseService
	workspaceRepo  portsrepo.WorkspaceRepositoryFacade
	userRepo       portsrepo.UserReader
	membershipRepo portsrepo.MembershipReader
	invitationRepo portsrepo.InvitationReader
	surveyRepo     portsrepo.SurveyReader
	txRunner       portsrepo.TxRunner
	memberships    portssvc.MembershipSvc
	invitations    portssvc.InvitationSvcFacade
	activity       portssvc.ActivitySvc
	dispatcher     events.Dispatcher
}

// NewWorkspaceService creates a new workspace service with the provided dependencies
func NewWorkspaceService(
	repos portsrepo.RepositoryProvider,
	memberships portssvc.MembershipSvc,
	invitations portssvc.InvitationSvcFacade,
	activity portssvc.ActivitySvc,
	dispatcher events.Dispatcher,
) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		workspaceRepo:  repos.WorkspaceRepo,
		userRepo:       repos.UserRepo,
		membershipRepo: repos.MembershipRepo,
		invitationRepo: repos.InvitationRepo,
		surveyRepo:     repos.SurveyRepo,
		txRunner:       repos.TxRunner,
		memberships:    memberships,
		invitations:    invitations,
		activity:       activity,
		dispatcher:     dispatcher,
	}
}

// Ensure workspaceService implements the WorkspaceSvcFacade interface
var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// CreateWorkspace persists the workspace and the owner's membership together.
func (s *workspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, ownerID int64) (*domain.Workspace, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = trimOptional(req.Description)
	if req.Visibility == "" {
		req.Visibility = domain.VisibilityPrivate
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := s.Now()
	workspace := domain.Workspace{
		WorkspaceID: id.New(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		Visibility:  req.Visibility,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	err := s.txRunner.WithTx(ctx, func(stores portsrepo.StoreProvider) error {
		if err := stores.Workspaces().SaveWorkspace(ctx, workspace); err != nil {
			return err
		}
		_, err := stores.Memberships().UpsertMembership(ctx, domain.WorkspaceMember{
			WorkspaceID: workspace.WorkspaceID,
			UserID:      ownerID,
			Role:        domain.RoleOwner,
			JoinedAt:    now,
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create workspace", slog.Int64("owner_id", ownerID))
		return nil, err
	}

	s.logActivity(ctx, workspace.WorkspaceID, ownerID, domain.ActivityCreated, domain.TargetWorkspace, &workspace.WorkspaceID,
		map[string]any{"name": workspace.Name})

	s.LogInfo(ctx, "Workspace created successfully",
		slog.Int64("workspace_id", workspace.WorkspaceID),
		slog.Int64("owner_id", ownerID))
	return &workspace, nil
}

// GetWorkspaceByID returns the workspace with the caller's role, its members and survey count.
func (s *workspaceService) GetWorkspaceByID(ctx context.Context, workspaceID, userID int64) (*domain.WorkspaceDetails, error) {
	ws, role, err := s.authorizeMember(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberships.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	surveyCount, err := s.surveyRepo.CountSurveysByWorkspace(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count workspace surveys", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}

	return &domain.WorkspaceDetails{
		Workspace:   *ws,
		Role:        role,
		Members:     members,
		SurveyCount: surveyCount,
	}, nil
}

// ListMyWorkspaces returns owned and joined workspaces, most recent first.
func (s *workspaceService) ListMyWorkspaces(ctx context.Context, userID int64) ([]domain.WorkspaceSummary, error) {
	workspaces, err := s.workspaceRepo.ListWorkspacesForUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces for user", slog.Int64("user_id", userID))
		return nil, err
	}
	if workspaces == nil {
		return []domain.WorkspaceSummary{}, nil
	}

	s.LogDebug(ctx, "Workspaces listed successfully",
		slog.Int("count", len(workspaces)),
		slog.Int64("user_id", userID))
	return workspaces, nil
}

// ListSurveys returns the workspace's surveys to members and platform admins.
func (s *workspaceService) ListSurveys(ctx context.Context, workspaceID, userID int64) ([]domain.Survey, error) {
	ws, err := s.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if _, ok, err := s.roleIn(ctx, ws, userID); err != nil {
		return nil, err
	} else if !ok {
		user, err := s.userRepo.FindUserByID(ctx, userID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load user", slog.Int64("user_id", userID))
			return nil, err
		}
		if !user.IsPlatformAdmin() {
			return nil, apperrors.ErrAccessDenied
		}
	}

	surveys, err := s.surveyRepo.ListSurveysByWorkspace(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspace surveys", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}
	if surveys == nil {
		return []domain.Survey{}, nil
	}
	return surveys, nil
}

// GetActivities returns the latest audit entries for members.
func (s *workspaceService) GetActivities(ctx context.Context, workspaceID, userID int64, limit int) ([]domain.WorkspaceActivity, error) {
	if _, _, err := s.authorizeMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}
	return s.activity.List(ctx, workspaceID, dto.NormalizeActivityLimit(limit))
}

// UpdateWorkspace changes name, description or visibility. Owner only.
func (s *workspaceService) UpdateWorkspace(ctx context.Context, workspaceID int64, req dto.UpdateWorkspaceRequest, actorID int64) (*domain.Workspace, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("name is a required field")
		}
		req.Name = &name
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	ws, err := s.loadOwnedWorkspace(ctx, workspaceID, actorID, "Only the workspace owner can update the workspace")
	if err != nil {
		return nil, err
	}
	previous := snapshotWorkspace(ws)

	if req.Name != nil && *req.Name != ws.Name {
		taken, err := s.workspaceRepo.ExistsWorkspaceName(ctx, ws.OwnerID, *req.Name, workspaceID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check workspace name", slog.Int64("workspace_id", workspaceID))
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrWorkspaceNameTaken
		}
		ws.Name = *req.Name
	}
	if req.Description != nil {
		ws.Description = trimOptional(req.Description)
	}
	if req.Visibility != nil {
		ws.Visibility = *req.Visibility
	}
	ws.UpdatedAt = s.Now()

	if err := s.workspaceRepo.UpdateWorkspace(ctx, *ws); err != nil {
		s.LogError(ctx, err, "Failed to update workspace", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}

	s.logActivity(ctx, workspaceID, actorID, domain.ActivityWorkspaceUpdated, domain.TargetWorkspace, &workspaceID,
		map[string]any{"previous": previous, "updated": snapshotWorkspace(ws)})

	s.LogInfo(ctx, "Workspace updated", slog.Int64("workspace_id", workspaceID))
	return ws, nil
}

// DeleteWorkspace removes the workspace. Owner only.
func (s *workspaceService) DeleteWorkspace(ctx context.Context, workspaceID, actorID int64) error {
	ws, err := s.loadOwnedWorkspace(ctx, workspaceID, actorID, "Only the workspace owner can delete the workspace")
	if err != nil {
		return err
	}

	// The entry is written before the delete; the cascade removes it with the workspace.
	s.logActivity(ctx, workspaceID, actorID, domain.ActivityWorkspaceDeleted, domain.TargetWorkspace, &workspaceID,
		map[string]any{"workspace_name": ws.Name})

	if err := s.workspaceRepo.DeleteWorkspace(ctx, workspaceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrWorkspaceNotFound
		}
		s.LogError(ctx, err, "Failed to delete workspace", slog.Int64("workspace_id", workspaceID))
		return err
	}

	s.LogInfo(ctx, "Workspace deleted", slog.Int64("workspace_id", workspaceID))
	return nil
}

// ListMembers lists the workspace's members to its members.
func (s *workspaceService) ListMembers(ctx context.Context, workspaceID, userID int64) ([]domain.WorkspaceMember, error) {
	if _, _, err := s.authorizeMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}
	return s.memberships.ListMembers(ctx, workspaceID)
}

// AddMember adds an existing user directly. Owner only.
func (s *workspaceService) AddMember(ctx context.Context, workspaceID, actorID int64, req dto.AddMemberRequest) (*domain.WorkspaceMember, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	role := normalizeRole(req.Role)
	newUserID := req.UserID.Int64()

	ws, err := s.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !IsWorkspaceOwner(ws, actorID) {
		return nil, apperrors.ErrOnlyOwnerCanAddMembers
	}
	if !role.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.userRepo.FindUserByID(ctx, newUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		s.LogError(ctx, err, "Failed to load user", slog.Int64("user_id", newUserID))
		return nil, err
	}
	if IsWorkspaceOwner(ws, newUserID) {
		return nil, apperrors.ErrAlreadyMember
	}

	member, err := s.memberships.UpsertMembership(ctx, workspaceID, newUserID, role)
	if err != nil {
		return nil, err
	}
	member.UserName = user.DisplayName()
	member.UserEmail = user.Email

	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		actor = &domain.User{UserID: actorID}
	}
	s.dispatcher.Dispatch(ctx, events.Event{
		Type:          events.TypeMemberAdded,
		WorkspaceID:   workspaceID,
		WorkspaceName: ws.Name,
		ActorID:       actorID,
		ActorName:     actor.DisplayName(),
		RecipientID:   &newUserID,
		Email:         user.Email,
		Role:          string(role),
		OccurredAt:    s.Now(),
	})

	s.LogInfo(ctx, "User added to workspace successfully",
		slog.Int64("target_user_id", newUserID),
		slog.Int64("workspace_id", workspaceID),
		slog.String("role", string(role)))
	return member, nil
}

// RemoveMember deletes a membership. Owner only; removing a non-member is a no-op.
func (s *workspaceService) RemoveMember(ctx context.Context, workspaceID, memberUserID, actorID int64) (bool, error) {
	ws, err := s.loadOwnedWorkspace(ctx, workspaceID, actorID, "Only the workspace owner can remove members")
	if err != nil {
		return false, err
	}
	if IsWorkspaceOwner(ws, memberUserID) {
		return false, apperrors.NewValidationFailedError("The workspace owner cannot be removed")
	}

	removed, err := s.memberships.RemoveMembership(ctx, workspaceID, memberUserID)
	if err != nil {
		return false, err
	}
	if !removed {
		s.LogDebug(ctx, "Member not found, nothing to remove",
			slog.Int64("workspace_id", workspaceID),
			slog.Int64("user_id", memberUserID))
		return false, nil
	}

	s.logActivity(ctx, workspaceID, actorID, domain.ActivityMemberRemoved, domain.TargetUser, &memberUserID, nil)
	s.LogInfo(ctx, "Member removed from workspace",
		slog.Int64("workspace_id", workspaceID),
		slog.Int64("user_id", memberUserID))
	return true, nil
}

// JoinWorkspace adds the caller to a public workspace as a plain member.
func (s *workspaceService) JoinWorkspace(ctx context.Context, workspaceID, userID int64) (*domain.MembershipResult, error) {
	ws, err := s.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if IsWorkspaceOwner(ws, userID) {
		return &domain.MembershipResult{
			Membership:    domain.WorkspaceMember{WorkspaceID: workspaceID, UserID: userID, Role: domain.RoleOwner, JoinedAt: ws.CreatedAt},
			AlreadyMember: true,
		}, nil
	}
	existing, err := s.membershipRepo.FindMembership(ctx, workspaceID, userID)
	if err == nil {
		return &domain.MembershipResult{Membership: *existing, AlreadyMember: true}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check membership", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}

	if ws.Visibility != domain.VisibilityPublic {
		return nil, apperrors.ErrInviteRequired
	}

	member, err := s.memberships.UpsertMembership(ctx, workspaceID, userID, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, workspaceID, userID, domain.ActivityJoined, domain.TargetWorkspace, &workspaceID,
		map[string]any{"via_invitation": false, "role": string(domain.RoleMember)})
	s.LogInfo(ctx, "User joined workspace",
		slog.Int64("workspace_id", workspaceID),
		slog.Int64("user_id", userID))
	return &domain.MembershipResult{Membership: *member}, nil
}

// InviteToWorkspace lets owners and collaborators invite by email.
func (s *workspaceService) InviteToWorkspace(ctx context.Context, workspaceID, inviterID int64, req dto.InviteRequest) (*domain.WorkspaceInvitation, error) {
	ws, err := s.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	var membership *domain.WorkspaceMember
	if !IsWorkspaceOwner(ws, inviterID) {
		membership, err = s.membershipRepo.FindMembership(ctx, workspaceID, inviterID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check membership", slog.Int64("workspace_id", workspaceID))
			return nil, err
		}
	}
	if !CanInviteMembers(ws, inviterID, membership) {
		return nil, apperrors.ErrAccessDenied.WithMessage("Only workspace owners and collaborators can invite members")
	}

	invitation, err := s.invitations.CreateInvitation(ctx, workspaceID, inviterID, req.Email, req.Role)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, workspaceID, inviterID, domain.ActivityMemberInvited, domain.TargetWorkspace, &workspaceID,
		map[string]any{"invitee_email": invitation.InviteeEmail, "role": string(invitation.Role)})
	return invitation, nil
}

// AcceptInvitation joins the caller through an invitation token.
func (s *workspaceService) AcceptInvitation(ctx context.Context, token string, userID int64) (*domain.InvitationAcceptance, error) {
	result, err := s.invitations.AcceptInvitation(ctx, token, userID)
	if err != nil {
		return nil, err
	}

	if !result.AlreadyMember {
		wsID := result.Workspace.WorkspaceID
		s.logActivity(ctx, wsID, userID, domain.ActivityJoined, domain.TargetWorkspace, &wsID,
			map[string]any{"via_invitation": true, "role": string(result.Role)})
	}
	return result, nil
}

// DeclineInvitation turns an invitation down.
func (s *workspaceService) DeclineInvitation(ctx context.Context, token string, userID int64) (*domain.WorkspaceInvitation, error) {
	return s.invitations.DeclineInvitation(ctx, token, userID)
}

// GetInvitationDetails describes an invitation for the acceptance page.
func (s *workspaceService) GetInvitationDetails(ctx context.Context, token string) (*domain.InvitationDetails, error) {
	return s.invitations.GetInvitationDetails(ctx, token)
}

// GetPendingInvitations lists pending and expired invitations. Owner only.
func (s *workspaceService) GetPendingInvitations(ctx context.Context, workspaceID, actorID int64) ([]domain.WorkspaceInvitation, error) {
	if _, err := s.loadOwnedWorkspace(ctx, workspaceID, actorID, "Only the workspace owner can view pending invitations"); err != nil {
		return nil, err
	}

	invitations, err := s.invitationRepo.ListInvitationsByWorkspace(ctx, workspaceID,
		[]domain.InvitationStatus{domain.InvitationPending, domain.InvitationExpired})
	if err != nil {
		s.LogError(ctx, err, "Failed to list invitations", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}

	now := s.Now()
	for i := range invitations {
		if invitations[i].IsPending() && invitations[i].IsExpiredAt(now) {
			invitations[i].Status = domain.InvitationExpired
		}
	}
	if invitations == nil {
		return []domain.WorkspaceInvitation{}, nil
	}
	return invitations, nil
}

// GetReceivedInvitations lists live invitations addressed to the caller's email.
func (s *workspaceService) GetReceivedInvitations(ctx context.Context, userID int64) ([]domain.InvitationDetails, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		s.LogError(ctx, err, "Failed to load user", slog.Int64("user_id", userID))
		return nil, err
	}

	invitations, err := s.invitationRepo.ListPendingInvitationsByEmail(ctx, normalizeEmail(user.Email))
	if err != nil {
		s.LogError(ctx, err, "Failed to list received invitations", slog.Int64("user_id", userID))
		return nil, err
	}

	now := s.Now()
	workspaces := map[int64]*domain.Workspace{}
	inviters := map[int64]*domain.User{}
	received := make([]domain.InvitationDetails, 0, len(invitations))
	for _, inv := range invitations {
		if inv.IsExpiredAt(now) {
			continue
		}

		ws, ok := workspaces[inv.WorkspaceID]
		if !ok {
			ws, err = s.workspaceRepo.FindWorkspaceByID(ctx, inv.WorkspaceID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					continue
				}
				return nil, err
			}
			workspaces[inv.WorkspaceID] = ws
		}
		inviter, ok := inviters[inv.InviterID]
		if !ok {
			inviter, _ = s.userRepo.FindUserByID(ctx, inv.InviterID)
			inviters[inv.InviterID] = inviter
		}

		received = append(received, domain.InvitationDetails{
			WorkspaceInvitation: inv,
			WorkspaceName:       ws.Name,
			InviterName:         inviter.DisplayName(),
		})
	}
	return received, nil
}

// CancelInvitation withdraws a pending invitation.
func (s *workspaceService) CancelInvitation(ctx context.Context, invitationID, actorID int64) error {
	invitation, err := s.invitations.CancelInvitation(ctx, invitationID, actorID)
	if err != nil {
		return err
	}

	s.logActivity(ctx, invitation.WorkspaceID, actorID, domain.ActivityInvitationCancelled, domain.TargetWorkspace, &invitation.WorkspaceID,
		map[string]any{"invitee_email": invitation.InviteeEmail, "invitation_id": invitation.InvitationID})
	return nil
}

// ResendInvitation refreshes an invitation's token and expiry.
func (s *workspaceService) ResendInvitation(ctx context.Context, invitationID, actorID int64) (*domain.WorkspaceInvitation, error) {
	invitation, err := s.invitations.ResendInvitation(ctx, invitationID, actorID)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, invitation.WorkspaceID, actorID, domain.ActivityInvitationResent, domain.TargetWorkspace, &invitation.WorkspaceID,
		map[string]any{"invitee_email": invitation.InviteeEmail, "invitation_id": invitation.InvitationID})
	return invitation, nil
}

// authorizeMember loads the workspace and fails unless userID owns or belongs to it.
func (s *workspaceService) authorizeMember(ctx context.Context, workspaceID, userID int64) (*domain.Workspace, domain.WorkspaceRole, error) {
	ws, err := s.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, "", err
	}
	role, ok, err := s.roleIn(ctx, ws, userID)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		s.LogDebug(ctx, "User not a member of workspace",
			slog.Int64("user_id", userID),
			slog.Int64("workspace_id", workspaceID))
		return nil, "", apperrors.ErrAccessDenied
	}
	return ws, role, nil
}

// roleIn resolves the user's role in an already loaded workspace.
func (s *workspaceService) roleIn(ctx context.Context, ws *domain.Workspace, userID int64) (domain.WorkspaceRole, bool, error) {
	if IsWorkspaceOwner(ws, userID) {
		return domain.RoleOwner, true, nil
	}
	member, err := s.membershipRepo.FindMembership(ctx, ws.WorkspaceID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", false, nil
		}
		s.LogError(ctx, err, "Failed to find membership",
			slog.Int64("workspace_id", ws.WorkspaceID),
			slog.Int64("user_id", userID))
		return "", false, err
	}
	return ResolveWorkspaceRole(ws, userID, member), true, nil
}

func (s *workspaceService) loadWorkspace(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	ws, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrWorkspaceNotFound
		}
		s.LogError(ctx, err, "Failed to find workspace by ID", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) loadOwnedWorkspace(ctx context.Context, workspaceID, actorID int64, denied string) (*domain.Workspace, error) {
	ws, err := s.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !IsWorkspaceOwner(ws, actorID) {
		return nil, apperrors.ErrAccessDenied.WithMessage(denied)
	}
	return ws, nil
}

func (s *workspaceService) logActivity(ctx context.Context, workspaceID, userID int64, action domain.ActivityAction, target domain.TargetType, targetID *int64, metadata map[string]any) {
	s.activity.Log(ctx, domain.WorkspaceActivity{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Action:      action,
		TargetType:  target,
		TargetID:    targetID,
		Metadata:    metadata,
	})
}

func snapshotWorkspace(ws *domain.Workspace) map[string]any {
	snapshot := map[string]any{
		"name":        ws.Name,
		"visibility":  string(ws.Visibility),
		"description": nil,
	}
	if ws.Description != nil {
		snapshot["description"] = *ws.Description
	}
	return snapshot
}

// trimOptional trims s and maps an empty result to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
