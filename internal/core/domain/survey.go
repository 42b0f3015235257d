package domain

import "time"

// Survey is the subset of a survey record the access rules depend on.
type Survey struct {
	SurveyID    int64   `json:"surveyID,string" db:"survey_id"`
	Title       string  `json:"title" db:"title"`
	Description *string `json:"description,omitempty" db:"description"`
	Status      string  `json:"status" db:"status"`
	CreatedBy   int64   `json:"createdBy,string" db:"created_by"`
	WorkspaceID *int64  `json:"workspaceID,string,omitempty" db:"workspace_id"`
	Timestamps
}

// AccessType is a per-survey permission level. Levels are ordered respond < view < full.
type AccessType string

const (
	AccessRespond AccessType = "respond"
	AccessView    AccessType = "view"
	AccessFull    AccessType = "full"
)

// Level returns the numeric rank of the access type, 0 when unknown.
func (a AccessType) Level() int {
	switch a {
	case AccessRespond:
		return 1
	case AccessView:
		return 2
	case AccessFull:
		return 3
	}
	return 0
}

// IsValid reports whether a is a known access type.
func (a AccessType) IsValid() bool {
	return a.Level() > 0
}

// Satisfies reports whether a grant at level a covers a request for required.
func (a AccessType) Satisfies(required AccessType) bool {
	return a.Level() > 0 && a.Level() >= required.Level()
}

// SurveyAccess is an explicit per-survey, per-user permission record.
type SurveyAccess struct {
	AccessID   int64      `json:"accessID,string" db:"access_id"`
	SurveyID   int64      `json:"surveyID,string" db:"survey_id"`
	UserID     int64      `json:"userID,string" db:"user_id"`
	AccessType AccessType `json:"accessType" db:"access_type"`
	GrantedBy  int64      `json:"grantedBy,string" db:"granted_by"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	IsActive   bool       `json:"isActive" db:"is_active"`
	Notes      *string    `json:"notes,omitempty" db:"notes"`
	Timestamps
}

// IsEffectiveAt reports whether the grant is active and not expired at now.
func (s *SurveyAccess) IsEffectiveAt(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(now)
}
