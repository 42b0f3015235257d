package memstore

import (
	"context"
	"slices"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

func (r *repo) FindSurveyByID(ctx context.Context, surveyID int64) (*domain.Survey, error) {
	defer r.lock()()
	s, ok := r.db().surveys[surveyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (r *repo) ListSurveysByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Survey, error) {
	defer r.lock()()
	out := make([]domain.Survey, 0)
	for _, s := range r.db().surveys {
		if s.WorkspaceID != nil && *s.WorkspaceID == workspaceID {
			out = append(out, s)
		}
	}
	sortSurveys(out)
	return out, nil
}

func (r *repo) CountSurveysByWorkspace(ctx context.Context, workspaceID int64) (int, error) {
	defer r.lock()()
	return r.countSurveys(workspaceID), nil
}

func (r *repo) FindEffectiveAccess(ctx context.Context, surveyID, userID int64, now time.Time) (*domain.SurveyAccess, error) {
	defer r.lock()()
	a, ok := r.db().access[accessKey{surveyID, userID}]
	if !ok || !a.IsEffectiveAt(now) {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r *repo) ListEffectiveAccessBySurvey(ctx context.Context, surveyID int64, now time.Time) ([]domain.SurveyAccess, error) {
	defer r.lock()()
	out := make([]domain.SurveyAccess, 0)
	for k, a := range r.db().access {
		if k.surveyID == surveyID && a.IsEffectiveAt(now) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b domain.SurveyAccess) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareDesc(a.AccessID, b.AccessID)
	})
	return out, nil
}

func (r *repo) ListAccessibleSurveys(ctx context.Context, userID int64, now time.Time) ([]domain.Survey, error) {
	defer r.lock()()
	db := r.db()
	out := make([]domain.Survey, 0)
	for k, a := range db.access {
		if k.userID != userID || !a.IsEffectiveAt(now) {
			continue
		}
		if s, ok := db.surveys[k.surveyID]; ok {
			out = append(out, s)
		}
	}
	sortSurveys(out)
	return out, nil
}

func (r *repo) UpsertAccess(ctx context.Context, access domain.SurveyAccess) (*domain.SurveyAccess, error) {
	defer r.lock()()
	db := r.db()
	if _, ok := db.surveys[access.SurveyID]; !ok {
		return nil, apperrors.ErrSurveyNotFound
	}
	if _, ok := db.users[access.UserID]; !ok {
		return nil, apperrors.ErrUserNotFound
	}

	key := accessKey{access.SurveyID, access.UserID}
	now := r.store.now()
	if existing, ok := db.access[key]; ok {
		access.AccessID = existing.AccessID
		access.CreatedAt = existing.CreatedAt
	} else if access.CreatedAt.IsZero() {
		access.CreatedAt = now
	}
	access.IsActive = true
	access.UpdatedAt = now
	db.access[key] = access
	return &access, nil
}

func (r *repo) DeactivateAccess(ctx context.Context, surveyID, userID int64) (bool, error) {
	defer r.lock()()
	key := accessKey{surveyID, userID}
	a, ok := r.db().access[key]
	if !ok || !a.IsActive {
		return false, nil
	}
	a.IsActive = false
	a.UpdatedAt = r.store.now()
	r.db().access[key] = a
	return true, nil
}

func sortSurveys(surveys []domain.Survey) {
	slices.SortFunc(surveys, func(a, b domain.Survey) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareDesc(a.SurveyID, b.SurveyID)
	})
}
