package pgsql

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
)

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace data.
func newPgxWorkspaceRepository(db DBTX) portsrepo.WorkspaceRepositoryFacade {
	return &PgxWorkspaceRepository{BaseRepository: BaseRepository{db: db}}
}

// Ensure PgxWorkspaceRepository implements portsrepo.WorkspaceRepositoryFacade
var _ portsrepo.WorkspaceRepositoryFacade = (*PgxWorkspaceRepository)(nil)

const FULL_WORKSPACE_SELECT_QUERY = `
SELECT
	w.workspace_id, w.name, w.description, w.owner_id, w.visibility,
	w.created_at, w.updated_at
FROM workspaces w
`

func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		INSERT INTO workspaces (workspace_id, name, description, owner_id, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		workspace.WorkspaceID,
		workspace.Name,
		workspace.Description,
		workspace.OwnerID,
		workspace.Visibility,
		workspace.CreatedAt,
		workspace.UpdatedAt,
	)
	if err != nil {
		switch code, _ := pgErrorCode(err); code {
		case pgUniqueViolation:
			return apperrors.NewConflictError("workspace already exists")
		case pgForeignKeyViolation:
			return apperrors.ErrUserNotFound
		}
		return apperrors.NewAppError(500, "failed to save workspace", err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	return first[domain.Workspace](ctx, r.db, "workspaces",
		FULL_WORKSPACE_SELECT_QUERY+`WHERE w.workspace_id = $1`, workspaceID)
}

// ListWorkspacesForUser returns owned workspaces and those with a membership row.
func (r *PgxWorkspaceRepository) ListWorkspacesForUser(ctx context.Context, userID int64) ([]domain.WorkspaceSummary, error) {
	query := `
		SELECT
			w.workspace_id, w.name, w.description, w.owner_id, w.visibility, w.created_at, w.updated_at,
			CASE WHEN w.owner_id = $1 THEN 'owner' ELSE wm.role END AS role,
			(SELECT COUNT(*) FROM workspace_members m WHERE m.workspace_id = w.workspace_id) AS member_count,
			(SELECT COUNT(*) FROM surveys s WHERE s.workspace_id = w.workspace_id) AS survey_count
		FROM workspaces w
		LEFT JOIN workspace_members wm ON wm.workspace_id = w.workspace_id AND wm.user_id = $1
		WHERE w.owner_id = $1 OR wm.user_id IS NOT NULL
		ORDER BY w.updated_at DESC, w.workspace_id DESC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspaces for user", err)
	}
	defer rows.Close()

	summaries := []domain.WorkspaceSummary{}
	for rows.Next() {
		var s domain.WorkspaceSummary
		err := rows.Scan(
			&s.WorkspaceID,
			&s.Name,
			&s.Description,
			&s.OwnerID,
			&s.Visibility,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.Role,
			&s.MemberCount,
			&s.SurveyCount,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan workspace row", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating workspace rows", err)
	}
	return summaries, nil
}

func (r *PgxWorkspaceRepository) ExistsWorkspaceName(ctx context.Context, ownerID int64, name string, excludeWorkspaceID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM workspaces
			WHERE owner_id = $1 AND lower(name) = lower($2) AND workspace_id <> $3
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, ownerID, name, excludeWorkspaceID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check workspace name", err)
	}
	return exists, nil
}

func (r *PgxWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $2, description = $3, visibility = $4, updated_at = NOW()
		WHERE workspace_id = $1;
	`
	result, err := r.db.Exec(ctx, query, workspace.WorkspaceID, workspace.Name, workspace.Description, workspace.Visibility)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update workspace", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteWorkspace relies on ON DELETE CASCADE for members, invitations and
// activities and ON DELETE SET NULL for surveys.
func (r *PgxWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM workspaces WHERE workspace_id = $1;`, workspaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete workspace", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
