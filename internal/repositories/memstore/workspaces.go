package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

func (r *repo) FindWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	defer r.lock()()
	ws, ok := r.db().workspaces[workspaceID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &ws, nil
}

func (r *repo) ListWorkspacesForUser(ctx context.Context, userID int64) ([]domain.WorkspaceSummary, error) {
	defer r.lock()()
	db := r.db()

	summaries := make([]domain.WorkspaceSummary, 0)
	for _, ws := range db.workspaces {
		role := domain.RoleOwner
		if ws.OwnerID != userID {
			m, ok := db.members[memberKey{ws.WorkspaceID, userID}]
			if !ok {
				continue
			}
			role = m.Role
		}
		summaries = append(summaries, domain.WorkspaceSummary{
			Workspace:   ws,
			Role:        role,
			MemberCount: r.countMembers(ws.WorkspaceID),
			SurveyCount: r.countSurveys(ws.WorkspaceID),
		})
	}

	slices.SortFunc(summaries, func(a, b domain.WorkspaceSummary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return compareDesc(a.WorkspaceID, b.WorkspaceID)
	})
	return summaries, nil
}

func (r *repo) ExistsWorkspaceName(ctx context.Context, ownerID int64, name string, excludeWorkspaceID int64) (bool, error) {
	defer r.lock()()
	for _, ws := range r.db().workspaces {
		if ws.OwnerID == ownerID && ws.WorkspaceID != excludeWorkspaceID && strings.EqualFold(ws.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *repo) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	defer r.lock()()
	if _, ok := r.db().users[workspace.OwnerID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.db().workspaces[workspace.WorkspaceID] = workspace
	return nil
}

func (r *repo) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	defer r.lock()()
	current, ok := r.db().workspaces[workspace.WorkspaceID]
	if !ok {
		return apperrors.ErrNotFound
	}
	current.Name = workspace.Name
	current.Description = workspace.Description
	current.Visibility = workspace.Visibility
	current.UpdatedAt = r.store.now()
	r.db().workspaces[workspace.WorkspaceID] = current
	return nil
}

// DeleteWorkspace cascades to members, invitations and activities and detaches surveys.
func (r *repo) DeleteWorkspace(ctx context.Context, workspaceID int64) error {
	defer r.lock()()
	db := r.db()
	if _, ok := db.workspaces[workspaceID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(db.workspaces, workspaceID)

	for k := range db.members {
		if k.workspaceID == workspaceID {
			delete(db.members, k)
		}
	}
	for k, inv := range db.invitations {
		if inv.WorkspaceID == workspaceID {
			delete(db.invitations, k)
		}
	}
	db.activities = slices.DeleteFunc(db.activities, func(a domain.WorkspaceActivity) bool {
		return a.WorkspaceID == workspaceID
	})
	for k, s := range db.surveys {
		if s.WorkspaceID != nil && *s.WorkspaceID == workspaceID {
			s.WorkspaceID = nil
			db.surveys[k] = s
		}
	}
	return nil
}

func (r *repo) countMembers(workspaceID int64) int {
	n := 0
	for k := range r.db().members {
		if k.workspaceID == workspaceID {
			n++
		}
	}
	return n
}

func (r *repo) countSurveys(workspaceID int64) int {
	n := 0
	for _, s := range r.db().surveys {
		if s.WorkspaceID != nil && *s.WorkspaceID == workspaceID {
			n++
		}
	}
	return n
}

func compareDesc(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
