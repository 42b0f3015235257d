package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/platform/id"
)

type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityRepositoryFacade
}

// NewActivityService creates the workspace audit log service.
func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade) portssvc.ActivitySvc {
	return &activityService{activityRepo: activityRepo}
}

var _ portssvc.ActivitySvc = (*activityService)(nil)

// Log appends an entry; failures only reach the log.
func (s *activityService) Log(ctx context.Context, entry domain.WorkspaceActivity) {
	if entry.ActivityID == 0 {
		entry.ActivityID = id.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.Now()
	}

	if err := s.activityRepo.AppendActivity(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to log workspace activity",
			slog.Int64("workspace_id", entry.WorkspaceID),
			slog.String("action", string(entry.Action)))
	}
}

// List returns the newest entries first.
func (s *activityService) List(ctx context.Context, workspaceID int64, limit int) ([]domain.WorkspaceActivity, error) {
	activities, err := s.activityRepo.ListActivities(ctx, workspaceID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspace activities", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}
	if activities == nil {
		return []domain.WorkspaceActivity{}, nil
	}
	return activities, nil
}
