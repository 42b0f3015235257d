package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
)

// membershipService implements the MembershipSvc interface
type membershipService struct {
	BaseService
	workspaceRepo  portsrepo.WorkspaceReader
	membershipRepo portsrepo.MembershipRepositoryFacade
}

// NewMembershipService creates a new membership service with the provided dependencies
func NewMembershipService(workspaceRepo portsrepo.WorkspaceReader, membershipRepo portsrepo.MembershipRepositoryFacade) portssvc.MembershipSvc {
	return &membershipService{
		workspaceRepo:  workspaceRepo,
		membershipRepo: membershipRepo,
	}
}

var _ portssvc.MembershipSvc = (*membershipService)(nil)

// IsMember reports whether the user owns or belongs to the workspace.
func (s *membershipService) IsMember(ctx context.Context, workspaceID, userID int64) (bool, error) {
	_, ok, err := s.GetRole(ctx, workspaceID, userID)
	return ok, err
}

// GetRole resolves the user's role, consulting the owner before the membership store.
func (s *membershipService) GetRole(ctx context.Context, workspaceID, userID int64) (domain.WorkspaceRole, bool, error) {
	ws, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", false, apperrors.ErrWorkspaceNotFound
		}
		s.LogError(ctx, err, "Failed to load workspace", slog.Int64("workspace_id", workspaceID))
		return "", false, err
	}
	if IsWorkspaceOwner(ws, userID) {
		return domain.RoleOwner, true, nil
	}

	member, err := s.membershipRepo.FindMembership(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", false, nil
		}
		s.LogError(ctx, err, "Failed to find membership",
			slog.Int64("workspace_id", workspaceID),
			slog.Int64("user_id", userID))
		return "", false, err
	}
	return member.Role, true, nil
}

// UpsertMembership adds the user or changes their role.
func (s *membershipService) UpsertMembership(ctx context.Context, workspaceID, userID int64, role domain.WorkspaceRole) (*domain.WorkspaceMember, error) {
	if !role.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}

	member, err := s.membershipRepo.UpsertMembership(ctx, domain.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		JoinedAt:    s.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert membership",
			slog.Int64("workspace_id", workspaceID),
			slog.Int64("user_id", userID))
		return nil, err
	}

	s.LogDebug(ctx, "Membership upserted",
		slog.Int64("workspace_id", workspaceID),
		slog.Int64("user_id", userID),
		slog.String("role", string(role)))
	return member, nil
}

// RemoveMembership deletes the membership. A missing row is not an error.
func (s *membershipService) RemoveMembership(ctx context.Context, workspaceID, userID int64) (bool, error) {
	removed, err := s.membershipRepo.DeleteMembership(ctx, workspaceID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete membership",
			slog.Int64("workspace_id", workspaceID),
			slog.Int64("user_id", userID))
		return false, err
	}
	return removed, nil
}

// ListMembers lists members with user details, oldest first.
func (s *membershipService) ListMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceMember, error) {
	members, err := s.membershipRepo.ListMembers(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}
	if members == nil {
		return []domain.WorkspaceMember{}, nil
	}
	return members, nil
}
