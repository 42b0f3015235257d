package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/SscSPs/survey_workspace_app/internal/platform/id"
	"github.com/SscSPs/survey_workspace_app/internal/platform/validation"
)

// surveyAccessService implements the SurveyAccessSvcFacade interface
type surveyAccessService struct {
	BaseService
	surveyRepo     portsrepo.SurveyReader
	accessRepo     portsrepo.SurveyAccessRepositoryFacade
	userRepo       portsrepo.UserReader
	workspaceRepo  portsrepo.WorkspaceReader
	membershipRepo portsrepo.MembershipReader
}

// NewSurveyAccessService creates the survey access resolver.
func NewSurveyAccessService(repos portsrepo.RepositoryProvider) portssvc.SurveyAccessSvcFacade {
	return &surveyAccessService{
		surveyRepo:     repos.SurveyRepo,
		accessRepo:     repos.SurveyAccessRepo,
		userRepo:       repos.UserRepo,
		workspaceRepo:  repos.WorkspaceRepo,
		membershipRepo: repos.MembershipRepo,
	}
}

var _ portssvc.SurveyAccessSvcFacade = (*surveyAccessService)(nil)

// HasAccess resolves, in order: creator, explicit grant, implicit view for workspace members.
// The first rule that satisfies required wins.
func (s *surveyAccessService) HasAccess(ctx context.Context, surveyID, userID int64, required domain.AccessType) bool {
	if !required.IsValid() {
		return false
	}
	logArgs := []any{
		slog.Int64("survey_id", surveyID),
		slog.Int64("user_id", userID),
		slog.String("required", string(required)),
	}

	survey, err := s.surveyRepo.FindSurveyByID(ctx, surveyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load survey for access check", logArgs...)
		}
		return false
	}
	if survey.CreatedBy == userID {
		return true
	}

	// A grant below the required level still leaves the workspace fallback.
	grant, err := s.accessRepo.FindEffectiveAccess(ctx, surveyID, userID, s.Now())
	switch {
	case err == nil && grant.AccessType.Satisfies(required):
		return true
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to load survey grant", logArgs...)
		return false
	}

	if survey.WorkspaceID == nil {
		return false
	}
	member, err := s.isWorkspaceMember(ctx, *survey.WorkspaceID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check workspace membership for access", logArgs...)
		return false
	}
	return member && domain.AccessView.Satisfies(required)
}

// CanManageSurvey reports whether the user created the survey, is a platform admin,
// or owns or collaborates on the survey's workspace.
func (s *surveyAccessService) CanManageSurvey(ctx context.Context, surveyID, userID int64) (bool, error) {
	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return false, err
	}
	if survey.CreatedBy == userID {
		return true, nil
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load user", slog.Int64("user_id", userID))
		return false, err
	}
	if user.IsPlatformAdmin() {
		return true, nil
	}
	if survey.WorkspaceID == nil || user == nil {
		return false, nil
	}

	ws, err := s.workspaceRepo.FindWorkspaceByID(ctx, *survey.WorkspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		s.LogError(ctx, err, "Failed to load survey workspace", slog.Int64("survey_id", surveyID))
		return false, err
	}
	membership, err := s.membershipRepo.FindMembership(ctx, ws.WorkspaceID, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check membership", slog.Int64("workspace_id", ws.WorkspaceID))
		return false, err
	}
	return CanManageWorkspace(user, ws, membership), nil
}

// GrantAccess creates or replaces a grant. A revoked grant is reactivated.
func (s *surveyAccessService) GrantAccess(ctx context.Context, surveyID, actorID int64, req dto.GrantAccessRequest) (*domain.SurveyAccess, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.requireManager(ctx, surveyID, actorID); err != nil {
		return nil, err
	}

	userID := req.UserID.Int64()
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		s.LogError(ctx, err, "Failed to load user", slog.Int64("user_id", userID))
		return nil, err
	}

	accessType := req.AccessType
	if accessType == "" {
		accessType = domain.AccessRespond
	}
	now := s.Now()
	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		return nil, apperrors.NewValidationFailedError("expiresAt must be in the future")
	}

	grant, err := s.accessRepo.UpsertAccess(ctx, domain.SurveyAccess{
		AccessID:   id.New(),
		SurveyID:   surveyID,
		UserID:     userID,
		AccessType: accessType,
		GrantedBy:  actorID,
		ExpiresAt:  req.ExpiresAt,
		IsActive:   true,
		Notes:      trimOptional(req.Notes),
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to grant survey access",
			slog.Int64("survey_id", surveyID),
			slog.Int64("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Survey access granted",
		slog.Int64("survey_id", surveyID),
		slog.Int64("user_id", userID),
		slog.String("access_type", string(accessType)))
	return grant, nil
}

// RevokeAccess deactivates the user's active grant.
func (s *surveyAccessService) RevokeAccess(ctx context.Context, surveyID, userID, actorID int64) error {
	if err := s.requireManager(ctx, surveyID, actorID); err != nil {
		return err
	}

	revoked, err := s.accessRepo.DeactivateAccess(ctx, surveyID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to revoke survey access",
			slog.Int64("survey_id", surveyID),
			slog.Int64("user_id", userID))
		return err
	}
	if !revoked {
		return apperrors.NewNotFoundError("Access record not found")
	}

	s.LogInfo(ctx, "Survey access revoked",
		slog.Int64("survey_id", surveyID),
		slog.Int64("user_id", userID))
	return nil
}

// ListSurveyGrants lists effective grants on a survey to its managers.
func (s *surveyAccessService) ListSurveyGrants(ctx context.Context, surveyID, actorID int64) ([]domain.SurveyAccess, error) {
	if err := s.requireManager(ctx, surveyID, actorID); err != nil {
		return nil, err
	}

	grants, err := s.accessRepo.ListEffectiveAccessBySurvey(ctx, surveyID, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to list survey grants", slog.Int64("survey_id", surveyID))
		return nil, err
	}
	if grants == nil {
		return []domain.SurveyAccess{}, nil
	}
	return grants, nil
}

// GetUserSurveyAccess returns the user's effective grant on the survey.
func (s *surveyAccessService) GetUserSurveyAccess(ctx context.Context, surveyID, userID int64) (*domain.SurveyAccess, error) {
	grant, err := s.accessRepo.FindEffectiveAccess(ctx, surveyID, userID, s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Access record not found")
		}
		s.LogError(ctx, err, "Failed to load survey grant", slog.Int64("survey_id", surveyID))
		return nil, err
	}
	return grant, nil
}

// ListAccessibleSurveys lists surveys the user holds an effective grant on.
func (s *surveyAccessService) ListAccessibleSurveys(ctx context.Context, userID int64) ([]domain.Survey, error) {
	surveys, err := s.accessRepo.ListAccessibleSurveys(ctx, userID, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to list accessible surveys", slog.Int64("user_id", userID))
		return nil, err
	}
	if surveys == nil {
		return []domain.Survey{}, nil
	}
	return surveys, nil
}

func (s *surveyAccessService) requireManager(ctx context.Context, surveyID, actorID int64) error {
	ok, err := s.CanManageSurvey(ctx, surveyID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrAccessDenied.WithMessage("You do not have permission to manage access to this survey")
	}
	return nil
}

func (s *surveyAccessService) loadSurvey(ctx context.Context, surveyID int64) (*domain.Survey, error) {
	survey, err := s.surveyRepo.FindSurveyByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrSurveyNotFound
		}
		s.LogError(ctx, err, "Failed to load survey", slog.Int64("survey_id", surveyID))
		return nil, err
	}
	return survey, nil
}

func (s *surveyAccessService) isWorkspaceMember(ctx context.Context, workspaceID, userID int64) (bool, error) {
	ws, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if IsWorkspaceOwner(ws, userID) {
		return true, nil
	}
	if _, err := s.membershipRepo.FindMembership(ctx, workspaceID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
