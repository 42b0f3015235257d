package domain

import "time"

// Visibility controls whether non-members may join a workspace without an invitation.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// IsValid reports whether v is a known visibility.
func (v Visibility) IsValid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// Workspace is a named collaboration boundary owning surveys and members.
type Workspace struct {
	WorkspaceID int64      `json:"workspaceID,string" db:"workspace_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	OwnerID     int64      `json:"ownerID,string" db:"owner_id"`
	Visibility  Visibility `json:"visibility" db:"visibility"`
	Timestamps
}

// WorkspaceRole defines the roles a user can hold within a workspace.
type WorkspaceRole string

const (
	RoleOwner        WorkspaceRole = "owner"
	RoleCollaborator WorkspaceRole = "collaborator"
	RoleViewer       WorkspaceRole = "viewer"
	RoleMember       WorkspaceRole = "member"
)

// IsValid reports whether r is one of the enumerated workspace roles.
func (r WorkspaceRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleCollaborator, RoleViewer, RoleMember:
		return true
	}
	return false
}

// CanManage reports whether the role may invite members and manage workspace surveys.
func (r WorkspaceRole) CanManage() bool {
	return r == RoleOwner || r == RoleCollaborator
}

// WorkspaceMember is the membership of a User in a Workspace.
type WorkspaceMember struct {
	MemberID    int64         `json:"memberID,string" db:"member_id"`
	WorkspaceID int64         `json:"workspaceID,string" db:"workspace_id"`
	UserID      int64         `json:"userID,string" db:"user_id"`
	Role        WorkspaceRole `json:"role" db:"role"`
	JoinedAt    time.Time     `json:"joinedAt" db:"joined_at"`
	UserName    string        `json:"userName,omitempty" db:"user_name"`
	UserEmail   string        `json:"userEmail,omitempty" db:"user_email"`
}

// WorkspaceSummary is a workspace as seen by a particular user.
type WorkspaceSummary struct {
	Workspace
	Role        WorkspaceRole `json:"role"`
	MemberCount int           `json:"memberCount"`
	SurveyCount int           `json:"surveyCount"`
}

// WorkspaceDetails is the full view returned by a workspace lookup.
type WorkspaceDetails struct {
	Workspace
	Role        WorkspaceRole     `json:"role"`
	Members     []WorkspaceMember `json:"members"`
	SurveyCount int               `json:"surveyCount"`
}

// MembershipResult reports the membership an operation produced and whether it already existed.
type MembershipResult struct {
	Membership    WorkspaceMember `json:"membership"`
	AlreadyMember bool            `json:"alreadyMember"`
}
