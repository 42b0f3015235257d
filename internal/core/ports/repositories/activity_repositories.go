package repositories

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// ActivityRepositoryFacade is the append-only workspace audit log.
type ActivityRepositoryFacade interface {
	AppendActivity(ctx context.Context, activity domain.WorkspaceActivity) error

	// ListActivities returns the latest entries for a workspace, newest first.
	ListActivities(ctx context.Context, workspaceID int64, limit int) ([]domain.WorkspaceActivity, error)
}
