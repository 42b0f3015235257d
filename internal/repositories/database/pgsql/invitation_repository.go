package pgsql

import (
	"context"
	"strings"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
)

// uniquePendingInvitationIndex enforces one pending invitation per workspace and email.
const uniquePendingInvitationIndex = "workspace_invitations_pending_email_idx"

type PgxInvitationRepository struct {
	BaseRepository
}

func newPgxInvitationRepository(db DBTX) portsrepo.InvitationRepositoryFacade {
	return &PgxInvitationRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.InvitationRepositoryFacade = (*PgxInvitationRepository)(nil)

const FULL_INVITATION_SELECT_QUERY = `
SELECT
	i.invitation_id, i.workspace_id, i.inviter_id, i.invitee_email, i.invitee_id,
	i.role, i.token, i.status, i.expires_at, i.sent_at, i.created_at, i.updated_at
FROM workspace_invitations i
`

func (r *PgxInvitationRepository) SaveInvitation(ctx context.Context, inv domain.WorkspaceInvitation) error {
	query := `
		INSERT INTO workspace_invitations (
			invitation_id, workspace_id, inviter_id, invitee_email, invitee_id,
			role, token, status, expires_at, sent_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		inv.InvitationID,
		inv.WorkspaceID,
		inv.InviterID,
		strings.ToLower(inv.InviteeEmail),
		inv.InviteeID,
		inv.Role,
		inv.Token,
		inv.Status,
		inv.ExpiresAt,
		inv.SentAt,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		switch code, constraint := pgErrorCode(err); {
		case code == pgUniqueViolation && constraint == uniquePendingInvitationIndex:
			return apperrors.ErrDuplicateInvitation
		case code == pgUniqueViolation:
			return apperrors.NewConflictError("invitation token already in use")
		case code == pgForeignKeyViolation:
			return apperrors.ErrWorkspaceNotFound
		}
		return apperrors.NewAppError(500, "failed to save invitation", err)
	}
	return nil
}

func (r *PgxInvitationRepository) FindInvitationByID(ctx context.Context, invitationID int64) (*domain.WorkspaceInvitation, error) {
	return first[domain.WorkspaceInvitation](ctx, r.db, "invitations",
		FULL_INVITATION_SELECT_QUERY+`WHERE i.invitation_id = $1`, invitationID)
}

func (r *PgxInvitationRepository) FindInvitationByToken(ctx context.Context, token string) (*domain.WorkspaceInvitation, error) {
	return first[domain.WorkspaceInvitation](ctx, r.db, "invitations",
		FULL_INVITATION_SELECT_QUERY+`WHERE i.token = $1`, token)
}

func (r *PgxInvitationRepository) FindPendingInvitation(ctx context.Context, workspaceID int64, email string) (*domain.WorkspaceInvitation, error) {
	return first[domain.WorkspaceInvitation](ctx, r.db, "invitations",
		FULL_INVITATION_SELECT_QUERY+`WHERE i.workspace_id = $1 AND lower(i.invitee_email) = lower($2) AND i.status = 'pending'`,
		workspaceID, email)
}

// ListInvitationsByWorkspace returns invitations newest first. An empty statuses
// slice returns every status.
func (r *PgxInvitationRepository) ListInvitationsByWorkspace(ctx context.Context, workspaceID int64, statuses []domain.InvitationStatus) ([]domain.WorkspaceInvitation, error) {
	if len(statuses) == 0 {
		return collect[domain.WorkspaceInvitation](ctx, r.db, "invitations",
			FULL_INVITATION_SELECT_QUERY+`WHERE i.workspace_id = $1 ORDER BY i.created_at DESC, i.invitation_id DESC`,
			workspaceID)
	}
	wanted := make([]string, len(statuses))
	for i, s := range statuses {
		wanted[i] = string(s)
	}
	return collect[domain.WorkspaceInvitation](ctx, r.db, "invitations",
		FULL_INVITATION_SELECT_QUERY+`WHERE i.workspace_id = $1 AND i.status = ANY($2) ORDER BY i.created_at DESC, i.invitation_id DESC`,
		workspaceID, wanted)
}

func (r *PgxInvitationRepository) ListPendingInvitationsByEmail(ctx context.Context, email string) ([]domain.WorkspaceInvitation, error) {
	return collect[domain.WorkspaceInvitation](ctx, r.db, "invitations",
		FULL_INVITATION_SELECT_QUERY+`WHERE lower(i.invitee_email) = lower($1) AND i.status = 'pending' ORDER BY i.created_at DESC, i.invitation_id DESC`,
		email)
}

// TransitionInvitation moves the invitation from one status to another only if it
// is still in the from status. It reports whether the row changed.
func (r *PgxInvitationRepository) TransitionInvitation(ctx context.Context, invitationID int64, from, to domain.InvitationStatus, inviteeID *int64) (bool, error) {
	query := `
		UPDATE workspace_invitations
		SET status = $3, invitee_id = COALESCE($4, invitee_id), updated_at = NOW()
		WHERE invitation_id = $1 AND status = $2;
	`
	result, err := r.db.Exec(ctx, query, invitationID, from, to, inviteeID)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to update invitation status", err)
	}
	return result.RowsAffected() == 1, nil
}

// ReissueInvitation rotates the token, pushes out the expiry and puts the
// invitation back to pending. Final statuses are left untouched.
func (r *PgxInvitationRepository) ReissueInvitation(ctx context.Context, invitationID int64, token string, expiresAt, sentAt time.Time) error {
	query := `
		UPDATE workspace_invitations
		SET token = $2, expires_at = $3, sent_at = $4, status = 'pending', updated_at = NOW()
		WHERE invitation_id = $1 AND status IN ('pending', 'expired');
	`
	result, err := r.db.Exec(ctx, query, invitationID, token, expiresAt, sentAt)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgUniqueViolation && constraint == uniquePendingInvitationIndex {
			return apperrors.ErrDuplicateInvitation
		}
		return apperrors.NewAppError(500, "failed to reissue invitation", err)
	}
	if result.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	err = r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM workspace_invitations WHERE invitation_id = $1);`, invitationID).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check invitation", err)
	}
	if !exists {
		return apperrors.ErrInvitationNotFound
	}
	return apperrors.ErrInvitationNotPending
}
