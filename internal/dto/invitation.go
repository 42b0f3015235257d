package dto

import (
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// InviteRequest defines data for inviting someone to a workspace by email.
type InviteRequest struct {
	Email string               `json:"email" validate:"required,email,max=255"`
	Role  domain.WorkspaceRole `json:"role"`
}

// InvitationTokenRequest carries the token from an invitation link.
type InvitationTokenRequest struct {
	Token string `json:"token" validate:"required,max=128"`
}

// InvitationListResponse wraps a list of invitations.
type InvitationListResponse struct {
	OK          bool                         `json:"ok"`
	Invitations []domain.WorkspaceInvitation `json:"invitations"`
}

// ReceivedInvitationListResponse wraps invitations addressed to the caller.
type ReceivedInvitationListResponse struct {
	OK          bool                       `json:"ok"`
	Invitations []domain.InvitationDetails `json:"invitations"`
}
