package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(db DBTX) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const FULL_NOTIFICATION_SELECT_QUERY = `
SELECT
	n.notification_id, n.user_id, n.type, n.title, n.message, n.related_type, n.related_id,
	n.data, n.is_read, n.read_at, n.created_at
FROM notifications n
`

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	query := `
		INSERT INTO notifications (
			notification_id, user_id, type, title, message, related_type, related_id,
			data, is_read, read_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		n.NotificationID,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.RelatedType,
		n.RelatedID,
		n.Data,
		n.IsRead,
		n.ReadAt,
		n.CreatedAt,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return apperrors.ErrUserNotFound
		}
		return apperrors.NewAppError(500, "failed to save notification", err)
	}
	return nil
}

func (r *PgxNotificationRepository) FindNotificationByID(ctx context.Context, notificationID int64) (*domain.Notification, error) {
	return first[domain.Notification](ctx, r.db, "notifications",
		FULL_NOTIFICATION_SELECT_QUERY+`WHERE n.notification_id = $1`, notificationID)
}

// ListNotifications returns one page, newest first, plus the total matching count.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error) {
	filter := `WHERE n.user_id = $1 AND (NOT $2 OR NOT n.is_read)`

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications n `+filter, userID, unreadOnly).Scan(&total)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count notifications", err)
	}

	items, err := collect[domain.Notification](ctx, r.db, "notifications",
		FULL_NOTIFICATION_SELECT_QUERY+filter+`
		ORDER BY n.created_at DESC, n.notification_id DESC
		LIMIT $3 OFFSET $4`,
		userID, unreadOnly, limitArg(limit), max(offset, 0))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PgxNotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read;`, userID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unread notifications", err)
	}
	return count, nil
}

// MarkRead is idempotent: an already read notification keeps its original read_at.
func (r *PgxNotificationRepository) MarkRead(ctx context.Context, notificationID int64, readAt time.Time) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, $2)
		WHERE notification_id = $1;
	`
	result, err := r.db.Exec(ctx, query, notificationID, readAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark notification read", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxNotificationRepository) MarkAllRead(ctx context.Context, userID int64, readAt time.Time) (int, error) {
	result, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE, read_at = $2 WHERE user_id = $1 AND NOT is_read;`, userID, readAt)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark notifications read", err)
	}
	return int(result.RowsAffected()), nil
}

func (r *PgxNotificationRepository) DeleteNotification(ctx context.Context, notificationID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE notification_id = $1;`, notificationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete notification", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
