package dto

import "github.com/SscSPs/survey_workspace_app/internal/core/domain"

// Notification paging bounds.
const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

// ListNotificationsParams defines query parameters for listing notifications.
type ListNotificationsParams struct {
	UnreadOnly bool `form:"unread_only"`
	Limit      int  `form:"limit,default=20"`
	Offset     int  `form:"offset,default=0"`
}

// Normalize clamps paging values into their allowed ranges.
func (p ListNotificationsParams) Normalize() ListNotificationsParams {
	if p.Limit <= 0 {
		p.Limit = DefaultNotificationLimit
	}
	if p.Limit > MaxNotificationLimit {
		p.Limit = MaxNotificationLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// NotificationListResponse is a page of notifications.
type NotificationListResponse struct {
	OK            bool                  `json:"ok"`
	Notifications []domain.Notification `json:"notifications"`
	Total         int                   `json:"total"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
}

// UnreadCountResponse reports the caller's unread notifications.
type UnreadCountResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}
