package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// InvitationReader defines read operations for invitations
type InvitationReader interface {
	FindInvitationByID(ctx context.Context, invitationID int64) (*domain.WorkspaceInvitation, error)

	// FindInvitationByToken looks up by the current token only.
	FindInvitationByToken(ctx context.Context, token string) (*domain.WorkspaceInvitation, error)

	// FindPendingInvitation finds the pending invitation for (workspace, email), or apperrors.ErrNotFound.
	FindPendingInvitation(ctx context.Context, workspaceID int64, email string) (*domain.WorkspaceInvitation, error)

	// ListInvitationsByWorkspace returns invitations in the given statuses, newest first.
	ListInvitationsByWorkspace(ctx context.Context, workspaceID int64, statuses []domain.InvitationStatus) ([]domain.WorkspaceInvitation, error)

	// ListPendingInvitationsByEmail returns pending invitations addressed to email, newest first.
	ListPendingInvitationsByEmail(ctx context.Context, email string) ([]domain.WorkspaceInvitation, error)
}

// InvitationWriter defines write operations for invitations
type InvitationWriter interface {
	// SaveInvitation persists a new invitation. A second pending row for the same
	// (workspace, email) fails with apperrors.ErrDuplicateInvitation.
	SaveInvitation(ctx context.Context, invitation domain.WorkspaceInvitation) error

	// TransitionInvitation moves an invitation from one status to another only if it is
	// currently in from. It reports whether the row was updated.
	TransitionInvitation(ctx context.Context, invitationID int64, from, to domain.InvitationStatus, inviteeID *int64) (bool, error)

	// ReissueInvitation replaces the token and expiry and resets the status to pending.
	// Only pending or expired invitations are reissued; any other status fails with
	// apperrors.ErrInvitationNotPending.
	ReissueInvitation(ctx context.Context, invitationID int64, token string, expiresAt, sentAt time.Time) error
}

// InvitationRepositoryFacade combines all invitation repository interfaces
type InvitationRepositoryFacade interface {
	InvitationReader
	InvitationWriter
}
