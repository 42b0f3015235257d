package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxMembershipRepository struct {
	BaseRepository
}

func newPgxMembershipRepository(db DBTX) portsrepo.MembershipRepositoryFacade {
	return &PgxMembershipRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.MembershipRepositoryFacade = (*PgxMembershipRepository)(nil)

// FULL_MEMBER_SELECT_QUERY joins the user row so listings carry a display name and email.
const FULL_MEMBER_SELECT_QUERY = `
SELECT
	wm.member_id, wm.workspace_id, wm.user_id, wm.role, wm.joined_at,
	COALESCE(NULLIF(u.name, ''), u.username) AS user_name,
	u.email AS user_email
FROM workspace_members wm
JOIN users u ON u.user_id = wm.user_id
`

func (r *PgxMembershipRepository) FindMembership(ctx context.Context, workspaceID, userID int64) (*domain.WorkspaceMember, error) {
	return first[domain.WorkspaceMember](ctx, r.db, "workspace members",
		FULL_MEMBER_SELECT_QUERY+`WHERE wm.workspace_id = $1 AND wm.user_id = $2`, workspaceID, userID)
}

func (r *PgxMembershipRepository) FindMembershipByEmail(ctx context.Context, workspaceID int64, email string) (*domain.WorkspaceMember, error) {
	return first[domain.WorkspaceMember](ctx, r.db, "workspace members",
		FULL_MEMBER_SELECT_QUERY+`WHERE wm.workspace_id = $1 AND lower(u.email) = lower($2) AND u.deleted_at IS NULL`,
		workspaceID, email)
}

func (r *PgxMembershipRepository) ListMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceMember, error) {
	return collect[domain.WorkspaceMember](ctx, r.db, "workspace members",
		FULL_MEMBER_SELECT_QUERY+`WHERE wm.workspace_id = $1 ORDER BY wm.joined_at ASC, wm.member_id ASC`, workspaceID)
}

// UpsertMembership inserts the membership or updates the role of an existing one.
// joined_at is kept from the first insert.
func (r *PgxMembershipRepository) UpsertMembership(ctx context.Context, member domain.WorkspaceMember) (*domain.WorkspaceMember, error) {
	query := `
		WITH upserted AS (
			INSERT INTO workspace_members (workspace_id, user_id, role, joined_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (workspace_id, user_id) DO UPDATE SET role = EXCLUDED.role
			RETURNING member_id, workspace_id, user_id, role, joined_at
		)
		SELECT
			up.member_id, up.workspace_id, up.user_id, up.role, up.joined_at,
			COALESCE(NULLIF(u.name, ''), u.username) AS user_name,
			u.email AS user_email
		FROM upserted up
		JOIN users u ON u.user_id = up.user_id;
	`
	rows, err := r.db.Query(ctx, query, member.WorkspaceID, member.UserID, member.Role, member.JoinedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert membership", err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.WorkspaceMember])
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgForeignKeyViolation {
			if constraint == "workspace_members_user_id_fkey" {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.ErrWorkspaceNotFound
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to upsert membership", err)
	}
	return &saved, nil
}

func (r *PgxMembershipRepository) DeleteMembership(ctx context.Context, workspaceID, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM workspace_members WHERE workspace_id = $1 AND user_id = $2;`, workspaceID, userID)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to delete membership", err)
	}
	return result.RowsAffected() > 0, nil
}
