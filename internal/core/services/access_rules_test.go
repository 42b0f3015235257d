package services_test

import (
	"testing"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	"github.com/SscSPs/survey_workspace_app/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestResolveWorkspaceRole(t *testing.T) {
	ws := &domain.Workspace{WorkspaceID: 10, OwnerID: ownerID}

	tests := []struct {
		name       string
		userID     int64
		membership *domain.WorkspaceMember
		want       domain.WorkspaceRole
	}{
		{name: "owner without row", userID: ownerID, want: domain.RoleOwner},
		{name: "owner with stale row", userID: ownerID, membership: &domain.WorkspaceMember{Role: domain.RoleViewer}, want: domain.RoleOwner},
		{name: "collaborator", userID: bobID, membership: &domain.WorkspaceMember{Role: domain.RoleCollaborator}, want: domain.RoleCollaborator},
		{name: "unknown role falls back", userID: bobID, membership: &domain.WorkspaceMember{Role: "weird"}, want: domain.RoleMember},
		{name: "no membership", userID: bobID, want: domain.RoleMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.ResolveWorkspaceRole(ws, tt.userID, tt.membership))
		})
	}
}

func TestCanInviteMembers(t *testing.T) {
	ws := &domain.Workspace{WorkspaceID: 10, OwnerID: ownerID}

	assert.True(t, services.CanInviteMembers(ws, ownerID, nil))
	assert.True(t, services.CanInviteMembers(ws, bobID, &domain.WorkspaceMember{Role: domain.RoleCollaborator}))
	assert.False(t, services.CanInviteMembers(ws, bobID, &domain.WorkspaceMember{Role: domain.RoleViewer}))
	assert.False(t, services.CanInviteMembers(ws, bobID, &domain.WorkspaceMember{Role: domain.RoleMember}))
	assert.False(t, services.CanInviteMembers(ws, bobID, nil))
	assert.False(t, services.CanInviteMembers(nil, ownerID, nil))
}

func TestCanManageWorkspace(t *testing.T) {
	ws := &domain.Workspace{WorkspaceID: 10, OwnerID: ownerID}
	admin := &domain.User{UserID: adminID, PlatformRole: domain.PlatformRoleAdmin}
	bob := &domain.User{UserID: bobID, PlatformRole: domain.PlatformRoleUser}

	assert.True(t, services.CanManageWorkspace(admin, ws, nil))
	assert.True(t, services.CanManageWorkspace(&domain.User{UserID: ownerID}, ws, nil))
	assert.True(t, services.CanManageWorkspace(bob, ws, &domain.WorkspaceMember{Role: domain.RoleCollaborator}))
	assert.False(t, services.CanManageWorkspace(bob, ws, &domain.WorkspaceMember{Role: domain.RoleMember}))
	assert.False(t, services.CanManageWorkspace(nil, ws, nil))
}

func TestIsWorkspaceOwner(t *testing.T) {
	ws := &domain.Workspace{OwnerID: ownerID}
	assert.True(t, services.IsWorkspaceOwner(ws, ownerID))
	assert.False(t, services.IsWorkspaceOwner(ws, bobID))
	assert.False(t, services.IsWorkspaceOwner(nil, ownerID))
}
