package services

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
)

// NotificationSinkSvc records notifications produced by side effects.
type NotificationSinkSvc interface {
	NotifyWorkspaceInvitation(ctx context.Context, userID, workspaceID, inviterID int64, message, token string) error
	NotifyMemberAdded(ctx context.Context, userID, workspaceID int64, message string) error
}

// NotificationReaderSvc serves a user's inbox.
type NotificationReaderSvc interface {
	ListNotifications(ctx context.Context, userID int64, params dto.ListNotificationsParams) ([]domain.Notification, int, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
}

// NotificationWriterSvc changes notification state on behalf of their recipient.
type NotificationWriterSvc interface {
	MarkAsRead(ctx context.Context, notificationID, userID int64) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID int64) (int, error)
	DeleteNotification(ctx context.Context, notificationID, userID int64) error
}

// NotificationSvcFacade combines all notification service interfaces
type NotificationSvcFacade interface {
	NotificationSinkSvc
	NotificationReaderSvc
	NotificationWriterSvc
}

// ActivitySvc is the workspace audit log.
type ActivitySvc interface {
	// Log appends an entry. Failures are logged, never returned.
	Log(ctx context.Context, entry domain.WorkspaceActivity)

	List(ctx context.Context, workspaceID int64, limit int) ([]domain.WorkspaceActivity, error)
}
