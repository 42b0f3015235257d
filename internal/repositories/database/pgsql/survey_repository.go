package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxSurveyRepository struct {
	BaseRepository
}

func newPgxSurveyRepository(db DBTX) portsrepo.SurveyRepositoryFacade {
	return &PgxSurveyRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.SurveyRepositoryFacade = (*PgxSurveyRepository)(nil)

const FULL_SURVEY_SELECT_QUERY = `
SELECT
	s.survey_id, s.title, s.description, s.status, s.created_by, s.workspace_id,
	s.created_at, s.updated_at
FROM surveys s
`

func (r *PgxSurveyRepository) FindSurveyByID(ctx context.Context, surveyID int64) (*domain.Survey, error) {
	return first[domain.Survey](ctx, r.db, "surveys",
		FULL_SURVEY_SELECT_QUERY+`WHERE s.survey_id = $1`, surveyID)
}

func (r *PgxSurveyRepository) ListSurveysByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Survey, error) {
	return collect[domain.Survey](ctx, r.db, "surveys",
		FULL_SURVEY_SELECT_QUERY+`WHERE s.workspace_id = $1 ORDER BY s.created_at DESC, s.survey_id DESC`, workspaceID)
}

func (r *PgxSurveyRepository) CountSurveysByWorkspace(ctx context.Context, workspaceID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM surveys WHERE workspace_id = $1;`, workspaceID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count surveys", err)
	}
	return count, nil
}

type PgxSurveyAccessRepository struct {
	BaseRepository
}

func newPgxSurveyAccessRepository(db DBTX) portsrepo.SurveyAccessRepositoryFacade {
	return &PgxSurveyAccessRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.SurveyAccessRepositoryFacade = (*PgxSurveyAccessRepository)(nil)

const FULL_SURVEY_ACCESS_SELECT_QUERY = `
SELECT
	a.access_id, a.survey_id, a.user_id, a.access_type, a.granted_by, a.expires_at,
	a.is_active, a.notes, a.created_at, a.updated_at
FROM survey_access a
`

func (r *PgxSurveyAccessRepository) FindEffectiveAccess(ctx context.Context, surveyID, userID int64, now time.Time) (*domain.SurveyAccess, error) {
	return first[domain.SurveyAccess](ctx, r.db, "survey access",
		FULL_SURVEY_ACCESS_SELECT_QUERY+`
		WHERE a.survey_id = $1 AND a.user_id = $2
		  AND a.is_active AND (a.expires_at IS NULL OR a.expires_at > $3)`,
		surveyID, userID, now)
}

func (r *PgxSurveyAccessRepository) ListEffectiveAccessBySurvey(ctx context.Context, surveyID int64, now time.Time) ([]domain.SurveyAccess, error) {
	return collect[domain.SurveyAccess](ctx, r.db, "survey access",
		FULL_SURVEY_ACCESS_SELECT_QUERY+`
		WHERE a.survey_id = $1
		  AND a.is_active AND (a.expires_at IS NULL OR a.expires_at > $2)
		ORDER BY a.created_at DESC, a.access_id DESC`,
		surveyID, now)
}

func (r *PgxSurveyAccessRepository) ListAccessibleSurveys(ctx context.Context, userID int64, now time.Time) ([]domain.Survey, error) {
	return collect[domain.Survey](ctx, r.db, "surveys",
		FULL_SURVEY_SELECT_QUERY+`
		JOIN survey_access a ON a.survey_id = s.survey_id
		WHERE a.user_id = $1
		  AND a.is_active AND (a.expires_at IS NULL OR a.expires_at > $2)
		ORDER BY s.created_at DESC, s.survey_id DESC`,
		userID, now)
}

// UpsertAccess creates the grant or replaces the existing one for the pair,
// reactivating it if it had been revoked. access_id and created_at survive.
func (r *PgxSurveyAccessRepository) UpsertAccess(ctx context.Context, access domain.SurveyAccess) (*domain.SurveyAccess, error) {
	query := `
		INSERT INTO survey_access (
			access_id, survey_id, user_id, access_type, granted_by, expires_at,
			is_active, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, NOW(), NOW())
		ON CONFLICT (survey_id, user_id) DO UPDATE SET
			access_type = EXCLUDED.access_type,
			granted_by = EXCLUDED.granted_by,
			expires_at = EXCLUDED.expires_at,
			notes = EXCLUDED.notes,
			is_active = TRUE,
			updated_at = NOW()
		RETURNING access_id, survey_id, user_id, access_type, granted_by, expires_at,
			is_active, notes, created_at, updated_at;
	`
	rows, err := r.db.Query(ctx, query,
		access.AccessID,
		access.SurveyID,
		access.UserID,
		access.AccessType,
		access.GrantedBy,
		access.ExpiresAt,
		access.Notes,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert survey access", err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.SurveyAccess])
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgForeignKeyViolation {
			if constraint == "survey_access_survey_id_fkey" {
				return nil, apperrors.ErrSurveyNotFound
			}
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to upsert survey access", err)
	}
	return &saved, nil
}

// DeactivateAccess revokes an active grant. It reports false when nothing was active.
func (r *PgxSurveyAccessRepository) DeactivateAccess(ctx context.Context, surveyID, userID int64) (bool, error) {
	query := `
		UPDATE survey_access SET is_active = FALSE, updated_at = NOW()
		WHERE survey_id = $1 AND user_id = $2 AND is_active;
	`
	result, err := r.db.Exec(ctx, query, surveyID, userID)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to revoke survey access", err)
	}
	return result.RowsAffected() > 0, nil
}
