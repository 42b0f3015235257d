package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccessType_SatisfiesIsMonotonic(t *testing.T) {
	levels := []domain.AccessType{domain.AccessRespond, domain.AccessView, domain.AccessFull}

	for i, granted := range levels {
		for j, required := range levels {
			want := j <= i
			assert.Equal(t, want, granted.Satisfies(required), "grant %s, required %s", granted, required)
		}
	}
}

func TestAccessType_UnknownNeverSatisfies(t *testing.T) {
	assert.False(t, domain.AccessType("admin").Satisfies(domain.AccessRespond))
	assert.False(t, domain.AccessType("").IsValid())
}

func TestSurveyAccess_IsEffectiveAt(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		access domain.SurveyAccess
		want   bool
	}{
		{name: "active without expiry", access: domain.SurveyAccess{IsActive: true}, want: true},
		{name: "active not yet expired", access: domain.SurveyAccess{IsActive: true, ExpiresAt: &future}, want: true},
		{name: "active but expired", access: domain.SurveyAccess{IsActive: true, ExpiresAt: &past}, want: false},
		{name: "revoked", access: domain.SurveyAccess{IsActive: false}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.access.IsEffectiveAt(now))
		})
	}
}

func TestWorkspaceRole_Validity(t *testing.T) {
	for _, r := range []domain.WorkspaceRole{domain.RoleOwner, domain.RoleCollaborator, domain.RoleViewer, domain.RoleMember} {
		assert.True(t, r.IsValid(), string(r))
	}
	assert.False(t, domain.WorkspaceRole("admin").IsValid())
	assert.True(t, domain.RoleCollaborator.CanManage())
	assert.False(t, domain.RoleViewer.CanManage())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&domain.User{Name: "Ada Lovelace", Username: "ada"}).DisplayName())
	assert.Equal(t, "ada", (&domain.User{Username: "ada"}).DisplayName())
	assert.Equal(t, "A user", (&domain.User{}).DisplayName())

	var nobody *domain.User
	assert.Equal(t, "A user", nobody.DisplayName())
}
