package domain

import "time"

// InvitationStatus is the lifecycle state of a workspace invitation.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDeclined  InvitationStatus = "declined"
	InvitationExpired   InvitationStatus = "expired"
	InvitationCancelled InvitationStatus = "cancelled"
)

// WorkspaceInvitation is a token-bearing, time-limited offer to join a workspace.
type WorkspaceInvitation struct {
	InvitationID int64            `json:"invitationID,string" db:"invitation_id"`
	WorkspaceID  int64            `json:"workspaceID,string" db:"workspace_id"`
	InviterID    int64            `json:"inviterID,string" db:"inviter_id"`
	InviteeEmail string           `json:"inviteeEmail" db:"invitee_email"`
	InviteeID    *int64           `json:"inviteeID,string,omitempty" db:"invitee_id"`
	Role         WorkspaceRole    `json:"role" db:"role"`
	Token        string           `json:"-" db:"token"`
	Status       InvitationStatus `json:"status" db:"status"`
	ExpiresAt    time.Time        `json:"expiresAt" db:"expires_at"`
	SentAt       time.Time        `json:"sentAt" db:"sent_at"`
	Timestamps
}

// IsPending reports whether the invitation can still be acted upon.
func (i *WorkspaceInvitation) IsPending() bool {
	return i.Status == InvitationPending
}

// CanReissue reports whether a new token may be issued. Accepted, declined and
// cancelled invitations are final.
func (i *WorkspaceInvitation) CanReissue() bool {
	return i.Status == InvitationPending || i.Status == InvitationExpired
}

// IsExpiredAt reports whether the invitation's expiry lies before now.
func (i *WorkspaceInvitation) IsExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// InvitationDetails is what the acceptance page needs to render an invitation.
type InvitationDetails struct {
	WorkspaceInvitation
	WorkspaceName string `json:"workspaceName"`
	InviterName   string `json:"inviterName"`
}

// InvitationAcceptance is the outcome of accepting an invitation.
type InvitationAcceptance struct {
	Workspace     Workspace           `json:"workspace"`
	Invitation    WorkspaceInvitation `json:"invitation"`
	Role          WorkspaceRole       `json:"role"`
	AlreadyMember bool                `json:"alreadyMember"`
}
