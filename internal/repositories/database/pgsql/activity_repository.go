package pgsql

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
)

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(db DBTX) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

func (r *PgxActivityRepository) AppendActivity(ctx context.Context, activity domain.WorkspaceActivity) error {
	query := `
		INSERT INTO workspace_activities (activity_id, workspace_id, user_id, action, target_type, target_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		activity.ActivityID,
		activity.WorkspaceID,
		activity.UserID,
		activity.Action,
		activity.TargetType,
		activity.TargetID,
		activity.Metadata,
		activity.CreatedAt,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return apperrors.ErrWorkspaceNotFound
		}
		return apperrors.NewAppError(500, "failed to append workspace activity", err)
	}
	return nil
}

// ListActivities returns the newest entries first. A non-positive limit returns all.
func (r *PgxActivityRepository) ListActivities(ctx context.Context, workspaceID int64, limit int) ([]domain.WorkspaceActivity, error) {
	query := `
		SELECT activity_id, workspace_id, user_id, action, target_type, target_id, metadata, created_at
		FROM workspace_activities
		WHERE workspace_id = $1
		ORDER BY created_at DESC, activity_id DESC
		LIMIT $2;
	`
	return collect[domain.WorkspaceActivity](ctx, r.db, "workspace activities", query, workspaceID, limitArg(limit))
}

// limitArg turns a non-positive limit into NULL, which postgres treats as no limit.
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
