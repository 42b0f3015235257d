package repositories

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error)

	// ListWorkspacesForUser retrieves workspaces the user owns or belongs to, with the user's role.
	ListWorkspacesForUser(ctx context.Context, userID int64) ([]domain.WorkspaceSummary, error)

	// ExistsWorkspaceName reports whether the owner has another workspace with this name.
	ExistsWorkspaceName(ctx context.Context, ownerID int64, name string, excludeWorkspaceID int64) (bool, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	// SaveWorkspace persists a new workspace.
	SaveWorkspace(ctx context.Context, workspace domain.Workspace) error

	// UpdateWorkspace updates name, description and visibility.
	UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error

	// DeleteWorkspace removes the workspace; members, invitations and activities cascade.
	DeleteWorkspace(ctx context.Context, workspaceID int64) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
}
