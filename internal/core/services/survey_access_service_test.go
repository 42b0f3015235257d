package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type SurveyAccessServiceTestSuite struct {
	suite.Suite
	f        *fixture
	ws       *domain.Workspace
	surveyID int64
}

var accessLevels = []domain.AccessType{domain.AccessRespond, domain.AccessView, domain.AccessFull}

func (s *SurveyAccessServiceTestSuite) SetupTest() {
	s.f = newFixture(s.T())
	s.ws = s.f.createWorkspace(s.T(), "Research", domain.VisibilityPrivate)
	s.surveyID = 500
	wsID := s.ws.WorkspaceID
	s.f.addSurvey(s.surveyID, ownerID, &wsID)
}

func TestSurveyAccessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SurveyAccessServiceTestSuite))
}

func (s *SurveyAccessServiceTestSuite) grant(userID int64, level domain.AccessType, expiresAt *time.Time) *domain.SurveyAccess {
	grant, err := s.f.access.GrantAccess(s.f.ctx, s.surveyID, ownerID, dto.GrantAccessRequest{
		UserID:     dto.FlexibleID(userID),
		AccessType: level,
		ExpiresAt:  expiresAt,
	})
	s.Require().NoError(err)
	return grant
}

func (s *SurveyAccessServiceTestSuite) TestCreatorAlwaysHasFullAccess() {
	s.f.addSurvey(501, bobID, nil)
	_, err := s.f.repos.SurveyAccessRepo.UpsertAccess(s.f.ctx, domain.SurveyAccess{
		AccessID: 1, SurveyID: 501, UserID: bobID, AccessType: domain.AccessRespond, GrantedBy: adminID,
	})
	s.Require().NoError(err)

	for _, level := range accessLevels {
		s.True(s.f.access.HasAccess(s.f.ctx, 501, bobID, level), level)
		s.True(s.f.access.HasAccess(s.f.ctx, s.surveyID, ownerID, level), level)
	}
}

func (s *SurveyAccessServiceTestSuite) TestGrantLevelsAreMonotonic() {
	for i, granted := range accessLevels {
		s.grant(carolID, granted, nil)
		for j, required := range accessLevels {
			want := j <= i
			s.Equal(want, s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, required),
				"granted %s, required %s", granted, required)
		}
	}
}

// A plain workspace member can view but not manage.
func (s *SurveyAccessServiceTestSuite) TestWorkspaceMemberImplicitView() {
	_, err := s.f.memberships.UpsertMembership(s.f.ctx, s.ws.WorkspaceID, carolID, domain.RoleMember)
	s.Require().NoError(err)

	s.True(s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, domain.AccessRespond))
	s.True(s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, domain.AccessView))
	s.False(s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, domain.AccessFull))
}

// A low grant does not take away the view a workspace member already has.
func (s *SurveyAccessServiceTestSuite) TestWorkspaceMemberWithLowGrantKeepsView() {
	_, err := s.f.memberships.UpsertMembership(s.f.ctx, s.ws.WorkspaceID, carolID, domain.RoleMember)
	s.Require().NoError(err)
	s.grant(carolID, domain.AccessRespond, nil)

	s.True(s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, domain.AccessRespond))
	s.True(s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, domain.AccessView))
	s.False(s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, domain.AccessFull))
}

func (s *SurveyAccessServiceTestSuite) TestNoRelationshipDenies() {
	for _, level := range accessLevels {
		s.False(s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, level))
	}
	s.False(s.f.access.HasAccess(s.f.ctx, 9999, ownerID, domain.AccessRespond))
	s.False(s.f.access.HasAccess(s.f.ctx, s.surveyID, ownerID, "admin"))
}

func (s *SurveyAccessServiceTestSuite) TestExpiredAndRevokedGrantsAreIgnored() {
	future := time.Now().UTC().Add(time.Hour)
	s.grant(carolID, domain.AccessFull, &future)
	s.True(s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, domain.AccessFull))

	s.Require().NoError(s.f.access.RevokeAccess(s.f.ctx, s.surveyID, carolID, ownerID))
	s.False(s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, domain.AccessRespond))

	err := s.f.access.RevokeAccess(s.f.ctx, s.surveyID, carolID, ownerID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.grant(carolID, domain.AccessView, nil)
	s.True(s.f.access.HasAccess(s.f.ctx, s.surveyID, carolID, domain.AccessView))
}

func (s *SurveyAccessServiceTestSuite) TestGrantAccess_Validation() {
	past := time.Now().UTC().Add(-time.Hour)
	_, err := s.f.access.GrantAccess(s.f.ctx, s.surveyID, ownerID, dto.GrantAccessRequest{UserID: dto.FlexibleID(carolID), ExpiresAt: &past})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.f.access.GrantAccess(s.f.ctx, s.surveyID, ownerID, dto.GrantAccessRequest{UserID: dto.FlexibleID(carolID), AccessType: "owner"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.f.access.GrantAccess(s.f.ctx, s.surveyID, ownerID, dto.GrantAccessRequest{UserID: dto.FlexibleID(strangeID)})
	s.ErrorIs(err, apperrors.ErrUserNotFound)

	_, err = s.f.access.GrantAccess(s.f.ctx, 9999, ownerID, dto.GrantAccessRequest{UserID: dto.FlexibleID(carolID)})
	s.ErrorIs(err, apperrors.ErrSurveyNotFound)

	grant := s.grant(carolID, "", nil)
	s.Equal(domain.AccessRespond, grant.AccessType)
	s.Equal(ownerID, grant.GrantedBy)
}

func (s *SurveyAccessServiceTestSuite) TestManagePermissions() {
	_, err := s.f.access.GrantAccess(s.f.ctx, s.surveyID, carolID, dto.GrantAccessRequest{UserID: dto.FlexibleID(bobID)})
	s.ErrorIs(err, apperrors.ErrAccessDenied)

	_, err = s.f.memberships.UpsertMembership(s.f.ctx, s.ws.WorkspaceID, bobID, domain.RoleViewer)
	s.Require().NoError(err)
	ok, err := s.f.access.CanManageSurvey(s.f.ctx, s.surveyID, bobID)
	s.Require().NoError(err)
	s.False(ok)

	_, err = s.f.memberships.UpsertMembership(s.f.ctx, s.ws.WorkspaceID, bobID, domain.RoleCollaborator)
	s.Require().NoError(err)
	ok, err = s.f.access.CanManageSurvey(s.f.ctx, s.surveyID, bobID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.f.access.CanManageSurvey(s.f.ctx, s.surveyID, adminID)
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.f.access.CanManageSurvey(s.f.ctx, 9999, adminID)
	s.ErrorIs(err, apperrors.ErrSurveyNotFound)
}

func (s *SurveyAccessServiceTestSuite) TestListingGrants() {
	s.grant(carolID, domain.AccessView, nil)
	s.grant(bobID, domain.AccessFull, nil)

	grants, err := s.f.access.ListSurveyGrants(s.f.ctx, s.surveyID, ownerID)
	s.Require().NoError(err)
	s.Len(grants, 2)

	_, err = s.f.access.ListSurveyGrants(s.f.ctx, s.surveyID, carolID)
	s.ErrorIs(err, apperrors.ErrAccessDenied)

	mine, err := s.f.access.GetUserSurveyAccess(s.f.ctx, s.surveyID, carolID)
	s.Require().NoError(err)
	s.Equal(domain.AccessView, mine.AccessType)

	_, err = s.f.access.GetUserSurveyAccess(s.f.ctx, s.surveyID, adminID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	surveys, err := s.f.access.ListAccessibleSurveys(s.f.ctx, carolID)
	s.Require().NoError(err)
	s.Require().Len(surveys, 1)
	s.Equal(s.surveyID, surveys[0].SurveyID)
}
