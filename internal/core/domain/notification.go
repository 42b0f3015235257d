package domain

import "time"

// NotificationType classifies a user notification.
type NotificationType string

const (
	NotificationWorkspaceInvitation  NotificationType = "workspace_invitation"
	NotificationWorkspaceMemberAdded NotificationType = "workspace_member_added"
)

// Notification is a message addressed to a single user.
type Notification struct {
	NotificationID int64            `json:"notificationID,string" db:"notification_id"`
	UserID         int64            `json:"userID,string" db:"user_id"`
	Type           NotificationType `json:"type" db:"type"`
	Title          string           `json:"title" db:"title"`
	Message        string           `json:"message" db:"message"`
	RelatedType    *string          `json:"relatedType,omitempty" db:"related_type"`
	RelatedID      *int64           `json:"relatedID,string,omitempty" db:"related_id"`
	Data           map[string]any   `json:"data,omitempty" db:"data"`
	IsRead         bool             `json:"isRead" db:"is_read"`
	ReadAt         *time.Time       `json:"readAt,omitempty" db:"read_at"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
}
