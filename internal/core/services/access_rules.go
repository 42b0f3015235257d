package services

import "github.com/SscSPs/survey_workspace_app/internal/core/domain"

// IsWorkspaceOwner reports whether userID owns ws.
func IsWorkspaceOwner(ws *domain.Workspace, userID int64) bool {
	return ws != nil && ws.OwnerID == userID
}

// ResolveWorkspaceRole returns the role a user effectively holds: owner for the
// workspace owner, otherwise the membership role, otherwise member.
func ResolveWorkspaceRole(ws *domain.Workspace, userID int64, membership *domain.WorkspaceMember) domain.WorkspaceRole {
	if IsWorkspaceOwner(ws, userID) {
		return domain.RoleOwner
	}
	if membership != nil && membership.Role.IsValid() {
		return membership.Role
	}
	return domain.RoleMember
}

// CanInviteMembers reports whether the user may send invitations for ws.
func CanInviteMembers(ws *domain.Workspace, userID int64, membership *domain.WorkspaceMember) bool {
	if IsWorkspaceOwner(ws, userID) {
		return true
	}
	return membership != nil && membership.Role.CanManage()
}

// CanManageWorkspace reports whether the user may manage surveys and grants in ws.
// Platform admins always can.
func CanManageWorkspace(user *domain.User, ws *domain.Workspace, membership *domain.WorkspaceMember) bool {
	if user.IsPlatformAdmin() {
		return true
	}
	if user == nil {
		return false
	}
	return CanInviteMembers(ws, user.UserID, membership)
}

// normalizeRole defaults an empty role to member.
func normalizeRole(role domain.WorkspaceRole) domain.WorkspaceRole {
	if role == "" {
		return domain.RoleMember
	}
	return role
}
