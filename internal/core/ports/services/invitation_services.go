package services

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// InvitationReaderSvc resolves invitation tokens.
type InvitationReaderSvc interface {
	// ValidateInvitation returns the pending invitation for token. A pending invitation past
	// its expiry is moved to expired and reported as such.
	ValidateInvitation(ctx context.Context, token string) (*domain.WorkspaceInvitation, error)

	// GetInvitationDetails validates token and adds workspace and inviter names.
	GetInvitationDetails(ctx context.Context, token string) (*domain.InvitationDetails, error)
}

// InvitationLifecycleSvc drives the invitation state machine.
type InvitationLifecycleSvc interface {
	CreateInvitation(ctx context.Context, workspaceID, inviterID int64, email string, role domain.WorkspaceRole) (*domain.WorkspaceInvitation, error)

	// AcceptInvitation marks the invitation accepted and adds the membership atomically.
	AcceptInvitation(ctx context.Context, token string, userID int64) (*domain.InvitationAcceptance, error)

	DeclineInvitation(ctx context.Context, token string, userID int64) (*domain.WorkspaceInvitation, error)

	// CancelInvitation is owner-only and applies to pending invitations.
	CancelInvitation(ctx context.Context, invitationID, actorID int64) (*domain.WorkspaceInvitation, error)

	// ResendInvitation is owner-only; the invitation gets a new token and expiry.
	ResendInvitation(ctx context.Context, invitationID, actorID int64) (*domain.WorkspaceInvitation, error)
}

// InvitationSvcFacade combines all invitation service interfaces
type InvitationSvcFacade interface {
	InvitationReaderSvc
	InvitationLifecycleSvc
}
