package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/SscSPs/survey_workspace_app/internal/platform/id"
)

const relatedWorkspace = "workspace"

// notificationService implements the NotificationSvcFacade interface
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new notification service with the provided dependencies
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// NotifyWorkspaceInvitation records an invitation notification carrying the token.
func (s *notificationService) NotifyWorkspaceInvitation(ctx context.Context, userID, workspaceID, inviterID int64, message, token string) error {
	if message == "" {
		message = "You have been invited to join a workspace"
	}
	data := map[string]any{"inviterID": inviterID}
	if token != "" {
		data["token"] = token
	}
	return s.save(ctx, userID, domain.NotificationWorkspaceInvitation, "Workspace Invitation", message, workspaceID, data)
}

// NotifyMemberAdded records that the user was added to a workspace directly.
func (s *notificationService) NotifyMemberAdded(ctx context.Context, userID, workspaceID int64, message string) error {
	return s.save(ctx, userID, domain.NotificationWorkspaceMemberAdded, "Added to Workspace", message, workspaceID, nil)
}

func (s *notificationService) save(ctx context.Context, userID int64, typ domain.NotificationType, title, message string, workspaceID int64, data map[string]any) error {
	relatedType := relatedWorkspace
	notification := domain.Notification{
		NotificationID: id.New(),
		UserID:         userID,
		Type:           typ,
		Title:          title,
		Message:        message,
		RelatedType:    &relatedType,
		RelatedID:      &workspaceID,
		Data:           data,
		CreatedAt:      s.Now(),
	}

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		s.LogError(ctx, err, "Failed to save notification",
			slog.Int64("user_id", userID),
			slog.String("type", string(typ)))
		return err
	}

	s.LogInfo(ctx, "Notification created",
		slog.Int64("notification_id", notification.NotificationID),
		slog.Int64("user_id", userID),
		slog.String("type", string(typ)))
	return nil
}

// ListNotifications returns a page of the user's notifications and the total count.
func (s *notificationService) ListNotifications(ctx context.Context, userID int64, params dto.ListNotificationsParams) ([]domain.Notification, int, error) {
	params = params.Normalize()
	notifications, total, err := s.notificationRepo.ListNotifications(ctx, userID, params.UnreadOnly, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.Int64("user_id", userID))
		return nil, 0, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, total, nil
}

// CountUnread counts the user's unread notifications.
func (s *notificationService) CountUnread(ctx context.Context, userID int64) (int, error) {
	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count unread notifications", slog.Int64("user_id", userID))
		return 0, err
	}
	return count, nil
}

// MarkAsRead marks one of the user's notifications read.
func (s *notificationService) MarkAsRead(ctx context.Context, notificationID, userID int64) (*domain.Notification, error) {
	notification, err := s.findOwned(ctx, notificationID, userID)
	if err != nil {
		return nil, err
	}
	if notification.IsRead {
		return notification, nil
	}

	now := s.Now()
	if err := s.notificationRepo.MarkRead(ctx, notificationID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark notification read", slog.Int64("notification_id", notificationID))
		return nil, err
	}
	notification.IsRead = true
	notification.ReadAt = &now
	return notification, nil
}

// MarkAllAsRead marks every unread notification of the user read and returns how many changed.
func (s *notificationService) MarkAllAsRead(ctx context.Context, userID int64) (int, error) {
	updated, err := s.notificationRepo.MarkAllRead(ctx, userID, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to mark all notifications read", slog.Int64("user_id", userID))
		return 0, err
	}
	return updated, nil
}

// DeleteNotification removes one of the user's notifications.
func (s *notificationService) DeleteNotification(ctx context.Context, notificationID, userID int64) error {
	if _, err := s.findOwned(ctx, notificationID, userID); err != nil {
		return err
	}
	if err := s.notificationRepo.DeleteNotification(ctx, notificationID); err != nil {
		s.LogError(ctx, err, "Failed to delete notification", slog.Int64("notification_id", notificationID))
		return err
	}
	return nil
}

// findOwned hides other users' notifications behind a not-found error.
func (s *notificationService) findOwned(ctx context.Context, notificationID, userID int64) (*domain.Notification, error) {
	notification, err := s.notificationRepo.FindNotificationByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Notification not found")
		}
		s.LogError(ctx, err, "Failed to load notification", slog.Int64("notification_id", notificationID))
		return nil, err
	}
	if notification.UserID != userID {
		return nil, apperrors.NewNotFoundError("Notification not found")
	}
	return notification, nil
}
