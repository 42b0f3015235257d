package services

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
)

// SurveyAccessResolverSvc answers access questions.
type SurveyAccessResolverSvc interface {
	// HasAccess reports whether the user holds at least the required level on the survey.
	// Lookup failures resolve to false.
	HasAccess(ctx context.Context, surveyID, userID int64, required domain.AccessType) bool

	// CanManageSurvey reports whether the user may manage grants on the survey.
	CanManageSurvey(ctx context.Context, surveyID, userID int64) (bool, error)
}

// SurveyAccessGrantSvc manages explicit grants.
type SurveyAccessGrantSvc interface {
	GrantAccess(ctx context.Context, surveyID, actorID int64, req dto.GrantAccessRequest) (*domain.SurveyAccess, error)
	RevokeAccess(ctx context.Context, surveyID, userID, actorID int64) error
	ListSurveyGrants(ctx context.Context, surveyID, actorID int64) ([]domain.SurveyAccess, error)
	GetUserSurveyAccess(ctx context.Context, surveyID, userID int64) (*domain.SurveyAccess, error)
	ListAccessibleSurveys(ctx context.Context, userID int64) ([]domain.Survey, error)
}

// SurveyAccessSvcFacade combines all survey access service interfaces
type SurveyAccessSvcFacade interface {
	SurveyAccessResolverSvc
	SurveyAccessGrantSvc
}
