package memstore

import (
	"context"
	"slices"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

func (r *repo) AppendActivity(ctx context.Context, activity domain.WorkspaceActivity) error {
	defer r.lock()()
	if _, ok := r.db().workspaces[activity.WorkspaceID]; !ok {
		return apperrors.ErrWorkspaceNotFound
	}
	r.db().activities = append(r.db().activities, activity)
	return nil
}

func (r *repo) ListActivities(ctx context.Context, workspaceID int64, limit int) ([]domain.WorkspaceActivity, error) {
	defer r.lock()()
	out := make([]domain.WorkspaceActivity, 0)
	acts := r.db().activities
	for i := len(acts) - 1; i >= 0; i-- {
		if acts[i].WorkspaceID == workspaceID {
			out = append(out, acts[i])
		}
	}
	slices.SortStableFunc(out, func(a, b domain.WorkspaceActivity) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *repo) FindNotificationByID(ctx context.Context, notificationID int64) (*domain.Notification, error) {
	defer r.lock()()
	n, ok := r.db().notifications[notificationID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &n, nil
}

func (r *repo) ListNotifications(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error) {
	defer r.lock()()
	all := make([]domain.Notification, 0)
	for _, n := range r.db().notifications {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			all = append(all, n)
		}
	}
	slices.SortFunc(all, func(a, b domain.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareDesc(a.NotificationID, b.NotificationID)
	})

	total := len(all)
	if offset >= total {
		return []domain.Notification{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (r *repo) CountUnread(ctx context.Context, userID int64) (int, error) {
	defer r.lock()()
	n := 0
	for _, note := range r.db().notifications {
		if note.UserID == userID && !note.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *repo) SaveNotification(ctx context.Context, notification domain.Notification) error {
	defer r.lock()()
	if _, ok := r.db().users[notification.UserID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.db().notifications[notification.NotificationID] = notification
	return nil
}

func (r *repo) MarkRead(ctx context.Context, notificationID int64, readAt time.Time) error {
	defer r.lock()()
	n, ok := r.db().notifications[notificationID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if !n.IsRead {
		n.IsRead = true
		n.ReadAt = &readAt
		r.db().notifications[notificationID] = n
	}
	return nil
}

func (r *repo) MarkAllRead(ctx context.Context, userID int64, readAt time.Time) (int, error) {
	defer r.lock()()
	count := 0
	for k, n := range r.db().notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &readAt
			r.db().notifications[k] = n
			count++
		}
	}
	return count, nil
}

func (r *repo) DeleteNotification(ctx context.Context, notificationID int64) error {
	defer r.lock()()
	if _, ok := r.db().notifications[notificationID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.db().notifications, notificationID)
	return nil
}
