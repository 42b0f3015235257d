package memstore

import (
	"context"
	"slices"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

func (r *repo) FindMembership(ctx context.Context, workspaceID, userID int64) (*domain.WorkspaceMember, error) {
	defer r.lock()()
	m, ok := r.db().members[memberKey{workspaceID, userID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	m = r.withUser(m)
	return &m, nil
}

func (r *repo) FindMembershipByEmail(ctx context.Context, workspaceID int64, email string) (*domain.WorkspaceMember, error) {
	defer r.lock()()
	u, err := r.userByEmail(email)
	if err != nil {
		return nil, err
	}
	m, ok := r.db().members[memberKey{workspaceID, u.UserID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	m = r.withUser(m)
	return &m, nil
}

func (r *repo) ListMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceMember, error) {
	defer r.lock()()
	members := make([]domain.WorkspaceMember, 0)
	for k, m := range r.db().members {
		if k.workspaceID == workspaceID {
			members = append(members, r.withUser(m))
		}
	}
	slices.SortFunc(members, func(a, b domain.WorkspaceMember) int {
		if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
			return c
		}
		return -compareDesc(a.MemberID, b.MemberID)
	})
	return members, nil
}

func (r *repo) UpsertMembership(ctx context.Context, member domain.WorkspaceMember) (*domain.WorkspaceMember, error) {
	defer r.lock()()
	db := r.db()
	if _, ok := db.workspaces[member.WorkspaceID]; !ok {
		return nil, apperrors.ErrWorkspaceNotFound
	}
	if _, ok := db.users[member.UserID]; !ok {
		return nil, apperrors.ErrUserNotFound
	}

	key := memberKey{member.WorkspaceID, member.UserID}
	if existing, ok := db.members[key]; ok {
		existing.Role = member.Role
		db.members[key] = existing
		existing = r.withUser(existing)
		return &existing, nil
	}

	db.nextMemberID++
	member.MemberID = db.nextMemberID
	if member.JoinedAt.IsZero() {
		member.JoinedAt = r.store.now()
	}
	member.UserName, member.UserEmail = "", ""
	db.members[key] = member
	member = r.withUser(member)
	return &member, nil
}

func (r *repo) DeleteMembership(ctx context.Context, workspaceID, userID int64) (bool, error) {
	defer r.lock()()
	key := memberKey{workspaceID, userID}
	if _, ok := r.db().members[key]; !ok {
		return false, nil
	}
	delete(r.db().members, key)
	return true, nil
}

func (r *repo) withUser(m domain.WorkspaceMember) domain.WorkspaceMember {
	if u, ok := r.db().users[m.UserID]; ok {
		m.UserName = u.DisplayName()
		m.UserEmail = u.Email
	}
	return m
}
