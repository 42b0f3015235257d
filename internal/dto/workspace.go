package dto

import (
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name        string            `json:"name" validate:"required,max=100"`
	Description *string           `json:"description" validate:"omitempty,max=500"`
	Visibility  domain.Visibility `json:"visibility" validate:"omitempty,oneof=private public"`
}

// UpdateWorkspaceRequest defines the fields an owner may change. Omitted fields are left untouched.
type UpdateWorkspaceRequest struct {
	Name        *string            `json:"name" validate:"omitempty,max=100"`
	Description *string            `json:"description" validate:"omitempty,max=500"`
	Visibility  *domain.Visibility `json:"visibility" validate:"omitempty,oneof=private public"`
}

// WorkspaceListResponse wraps the caller's workspaces.
type WorkspaceListResponse struct {
	OK         bool                      `json:"ok"`
	Workspaces []domain.WorkspaceSummary `json:"workspaces"`
}

// --- Membership DTOs ---

// AddMemberRequest defines data for adding a user to a workspace.
type AddMemberRequest struct {
	UserID FlexibleID           `json:"userID" validate:"required"`
	Role   domain.WorkspaceRole `json:"role"`
}

// MemberListResponse wraps workspace members.
type MemberListResponse struct {
	OK      bool                     `json:"ok"`
	Members []domain.WorkspaceMember `json:"members"`
}

// ActivityListParams defines query parameters for the activity feed.
type ActivityListParams struct {
	Limit int `form:"limit,default=20"`
}

// Activity feed bounds.
const (
	DefaultActivityLimit = 20
	MaxActivityLimit     = 100
)

// NormalizeActivityLimit clamps a requested feed size into [1, MaxActivityLimit].
func NormalizeActivityLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultActivityLimit
	case limit > MaxActivityLimit:
		return MaxActivityLimit
	default:
		return limit
	}
}
