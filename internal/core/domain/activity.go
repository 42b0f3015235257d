package domain

import "time"

// ActivityAction names an entry in the workspace audit log.
type ActivityAction string

const (
	ActivityCreated             ActivityAction = "created"
	ActivityJoined              ActivityAction = "joined"
	ActivityLeft                ActivityAction = "left"
	ActivitySurveyCreated       ActivityAction = "survey_created"
	ActivitySurveyUpdated       ActivityAction = "survey_updated"
	ActivitySurveyDeleted       ActivityAction = "survey_deleted"
	ActivityMemberInvited       ActivityAction = "member_invited"
	ActivityMemberRemoved       ActivityAction = "member_removed"
	ActivityWorkspaceUpdated    ActivityAction = "workspace_updated"
	ActivityWorkspaceDeleted    ActivityAction = "workspace_deleted"
	ActivityInvitationSent      ActivityAction = "invitation_sent"
	ActivityInvitationResent    ActivityAction = "invitation_resent"
	ActivityInvitationCancelled ActivityAction = "invitation_cancelled"
)

// TargetType is the kind of entity an activity refers to.
type TargetType string

const (
	TargetUser      TargetType = "user"
	TargetSurvey    TargetType = "survey"
	TargetWorkspace TargetType = "workspace"
)

// WorkspaceActivity is an append-only audit log entry.
type WorkspaceActivity struct {
	ActivityID  int64          `json:"activityID,string" db:"activity_id"`
	WorkspaceID int64          `json:"workspaceID,string" db:"workspace_id"`
	UserID      int64          `json:"userID,string" db:"user_id"`
	Action      ActivityAction `json:"action" db:"action"`
	TargetType  TargetType     `json:"targetType" db:"target_type"`
	TargetID    *int64         `json:"targetID,string,omitempty" db:"target_id"`
	Metadata    map[string]any `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}
