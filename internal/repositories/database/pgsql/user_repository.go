package pgsql

import (
	"context"
	"strings"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db DBTX) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{db: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const FULL_USER_SELECT_QUERY = `
SELECT
	u.user_id, u.username, u.email, u.name, u.password_hash, u.platform_role,
	u.created_at, u.updated_at, u.deleted_at
FROM users u
`

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (user_id, username, email, name, password_hash, platform_role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Username,
		strings.ToLower(user.Email),
		user.Name,
		user.PasswordHash,
		user.PlatformRole,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return apperrors.NewConflictError("User with this email or username already exists")
		}
		return apperrors.NewAppError(500, "failed to save user", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return first[domain.User](ctx, r.db, "users",
		FULL_USER_SELECT_QUERY+`WHERE u.user_id = $1 AND u.deleted_at IS NULL`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return first[domain.User](ctx, r.db, "users",
		FULL_USER_SELECT_QUERY+`WHERE lower(u.email) = lower($1) AND u.deleted_at IS NULL`, email)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return first[domain.User](ctx, r.db, "users",
		FULL_USER_SELECT_QUERY+`WHERE u.username = $1 AND u.deleted_at IS NULL`, username)
}
