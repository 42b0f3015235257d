package services

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// MembershipSvc answers membership questions with the owner treated as an implicit member.
type MembershipSvc interface {
	// IsMember reports whether the user owns or belongs to the workspace.
	IsMember(ctx context.Context, workspaceID, userID int64) (bool, error)

	// GetRole returns the user's role and false when the user is not a member.
	GetRole(ctx context.Context, workspaceID, userID int64) (domain.WorkspaceRole, bool, error)

	// UpsertMembership adds the user or changes their role.
	UpsertMembership(ctx context.Context, workspaceID, userID int64, role domain.WorkspaceRole) (*domain.WorkspaceMember, error)

	// RemoveMembership deletes the membership and reports whether one existed.
	RemoveMembership(ctx context.Context, workspaceID, userID int64) (bool, error)

	// ListMembers lists members with user details, oldest first.
	ListMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceMember, error)
}
