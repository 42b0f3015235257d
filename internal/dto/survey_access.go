package dto

import (
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// GrantAccessRequest defines an explicit survey permission.
type GrantAccessRequest struct {
	UserID     FlexibleID        `json:"userID" validate:"required"`
	AccessType domain.AccessType `json:"accessType" validate:"omitempty,oneof=respond view full"`
	ExpiresAt  *time.Time        `json:"expiresAt"`
	Notes      *string           `json:"notes" validate:"omitempty,max=1000"`
}

// AccessCheckResponse reports the outcome of an access check.
type AccessCheckResponse struct {
	OK        bool              `json:"ok"`
	SurveyID  FlexibleID        `json:"surveyID"`
	Level     domain.AccessType `json:"level"`
	HasAccess bool              `json:"hasAccess"`
}

// SurveyAccessListResponse wraps the grants on a survey.
type SurveyAccessListResponse struct {
	OK     bool                  `json:"ok"`
	Grants []domain.SurveyAccess `json:"grants"`
}

// SurveyListResponse wraps a list of surveys.
type SurveyListResponse struct {
	OK      bool            `json:"ok"`
	Surveys []domain.Survey `json:"surveys"`
}
