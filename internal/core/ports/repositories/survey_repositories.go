package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// SurveyReader defines the read operations the core needs on surveys.
type SurveyReader interface {
	FindSurveyByID(ctx context.Context, surveyID int64) (*domain.Survey, error)

	// ListSurveysByWorkspace returns the workspace's surveys, newest first.
	ListSurveysByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Survey, error)

	CountSurveysByWorkspace(ctx context.Context, workspaceID int64) (int, error)
}

// SurveyRepositoryFacade combines survey repository interfaces
type SurveyRepositoryFacade interface {
	SurveyReader
}

// SurveyAccessReader defines read operations for explicit survey grants.
type SurveyAccessReader interface {
	// FindEffectiveAccess returns the active, non-expired grant for the pair, or apperrors.ErrNotFound.
	FindEffectiveAccess(ctx context.Context, surveyID, userID int64, now time.Time) (*domain.SurveyAccess, error)

	// ListEffectiveAccessBySurvey returns active, non-expired grants on a survey, newest first.
	ListEffectiveAccessBySurvey(ctx context.Context, surveyID int64, now time.Time) ([]domain.SurveyAccess, error)

	// ListAccessibleSurveys returns surveys the user holds an effective grant on.
	ListAccessibleSurveys(ctx context.Context, userID int64, now time.Time) ([]domain.Survey, error)
}

// SurveyAccessWriter defines write operations for explicit survey grants.
type SurveyAccessWriter interface {
	// UpsertAccess creates the grant or replaces level/expiry/notes and reactivates it.
	UpsertAccess(ctx context.Context, access domain.SurveyAccess) (*domain.SurveyAccess, error)

	// DeactivateAccess soft-disables the active grant and reports whether one existed.
	DeactivateAccess(ctx context.Context, surveyID, userID int64) (bool, error)
}

// SurveyAccessRepositoryFacade combines survey access repository interfaces
type SurveyAccessRepositoryFacade interface {
	SurveyAccessReader
	SurveyAccessWriter
}
