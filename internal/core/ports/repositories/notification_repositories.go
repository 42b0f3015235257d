package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// NotificationReader defines read operations for notifications
type NotificationReader interface {
	FindNotificationByID(ctx context.Context, notificationID int64) (*domain.Notification, error)

	// ListNotifications returns a page of the user's notifications, newest first, and the total count.
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error)

	CountUnread(ctx context.Context, userID int64) (int, error)
}

// NotificationWriter defines write operations for notifications
type NotificationWriter interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error
	MarkRead(ctx context.Context, notificationID int64, readAt time.Time) error
	MarkAllRead(ctx context.Context, userID int64, readAt time.Time) (int, error)
	DeleteNotification(ctx context.Context, notificationID int64) error
}

// NotificationRepositoryFacade combines all notification repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
