package services

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	// GetWorkspaceByID returns the workspace with the caller's role, its members and survey count.
	GetWorkspaceByID(ctx context.Context, workspaceID, userID int64) (*domain.WorkspaceDetails, error)

	// ListMyWorkspaces returns owned and joined workspaces, most recent first.
	ListMyWorkspaces(ctx context.Context, userID int64) ([]domain.WorkspaceSummary, error)

	// ListSurveys returns the workspace's surveys to members and platform admins.
	ListSurveys(ctx context.Context, workspaceID, userID int64) ([]domain.Survey, error)

	// GetActivities returns the latest audit entries, newest first.
	GetActivities(ctx context.Context, workspaceID, userID int64, limit int) ([]domain.WorkspaceActivity, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// CreateWorkspace persists a workspace and its owner membership together.
	CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, ownerID int64) (*domain.Workspace, error)

	// UpdateWorkspace is owner-only.
	UpdateWorkspace(ctx context.Context, workspaceID int64, req dto.UpdateWorkspaceRequest, actorID int64) (*domain.Workspace, error)

	// DeleteWorkspace is owner-only.
	DeleteWorkspace(ctx context.Context, workspaceID, actorID int64) error
}

// WorkspaceMembershipSvc defines operations for managing workspace membership
type WorkspaceMembershipSvc interface {
	ListMembers(ctx context.Context, workspaceID, userID int64) ([]domain.WorkspaceMember, error)

	// AddMember is owner-only.
	AddMember(ctx context.Context, workspaceID, actorID int64, req dto.AddMemberRequest) (*domain.WorkspaceMember, error)

	// RemoveMember is owner-only and reports whether a membership was removed.
	RemoveMember(ctx context.Context, workspaceID, memberUserID, actorID int64) (bool, error)

	// JoinWorkspace adds the caller to a public workspace.
	JoinWorkspace(ctx context.Context, workspaceID, userID int64) (*domain.MembershipResult, error)
}

// WorkspaceInvitationSvc defines the workspace-facing invitation operations.
type WorkspaceInvitationSvc interface {
	InviteToWorkspace(ctx context.Context, workspaceID, inviterID int64, req dto.InviteRequest) (*domain.WorkspaceInvitation, error)
	AcceptInvitation(ctx context.Context, token string, userID int64) (*domain.InvitationAcceptance, error)
	DeclineInvitation(ctx context.Context, token string, userID int64) (*domain.WorkspaceInvitation, error)
	GetInvitationDetails(ctx context.Context, token string) (*domain.InvitationDetails, error)

	// GetPendingInvitations is owner-only and includes expired invitations.
	GetPendingInvitations(ctx context.Context, workspaceID, actorID int64) ([]domain.WorkspaceInvitation, error)

	// GetReceivedInvitations lists pending invitations addressed to the caller's email.
	GetReceivedInvitations(ctx context.Context, userID int64) ([]domain.InvitationDetails, error)

	CancelInvitation(ctx context.Context, invitationID, actorID int64) error
	ResendInvitation(ctx context.Context, invitationID, actorID int64) (*domain.WorkspaceInvitation, error)
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
// This is a facade for clients that need access to all operations
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	WorkspaceMembershipSvc
	WorkspaceInvitationSvc
}
