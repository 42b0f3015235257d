package handlers_test

import (
	"context"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock WorkspaceService ---
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) GetWorkspaceByID(ctx context.Context, workspaceID, userID int64) (*domain.WorkspaceDetails, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceDetails), args.Error(1)
}
func (m *MockWorkspaceService) ListMyWorkspaces(ctx context.Context, userID int64) ([]domain.WorkspaceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkspaceSummary), args.Error(1)
}
func (m *MockWorkspaceService) ListSurveys(ctx context.Context, workspaceID, userID int64) ([]domain.Survey, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Survey), args.Error(1)
}
func (m *MockWorkspaceService) GetActivities(ctx context.Context, workspaceID, userID int64, limit int) ([]domain.WorkspaceActivity, error) {
	args := m.Called(ctx, workspaceID, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkspaceActivity), args.Error(1)
}
func (m *MockWorkspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, ownerID int64) (*domain.Workspace, error) {
	args := m.Called(ctx, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) UpdateWorkspace(ctx context.Context, workspaceID int64, req dto.UpdateWorkspaceRequest, actorID int64) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) DeleteWorkspace(ctx context.Context, workspaceID, actorID int64) error {
	args := m.Called(ctx, workspaceID, actorID)
	return args.Error(0)
}
func (m *MockWorkspaceService) ListMembers(ctx context.Context, workspaceID, userID int64) ([]domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkspaceMember), args.Error(1)
}
func (m *MockWorkspaceService) AddMember(ctx context.Context, workspaceID, actorID int64, req dto.AddMemberRequest) (*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceMember), args.Error(1)
}
func (m *MockWorkspaceService) RemoveMember(ctx context.Context, workspaceID, memberUserID, actorID int64) (bool, error) {
	args := m.Called(ctx, workspaceID, memberUserID, actorID)
	return args.Bool(0), args.Error(1)
}
func (m *MockWorkspaceService) JoinWorkspace(ctx context.Context, workspaceID, userID int64) (*domain.MembershipResult, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipResult), args.Error(1)
}
func (m *MockWorkspaceService) InviteToWorkspace(ctx context.Context, workspaceID, inviterID int64, req dto.InviteRequest) (*domain.WorkspaceInvitation, error) {
	args := m.Called(ctx, workspaceID, inviterID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceInvitation), args.Error(1)
}
func (m *MockWorkspaceService) AcceptInvitation(ctx context.Context, token string, userID int64) (*domain.InvitationAcceptance, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvitationAcceptance), args.Error(1)
}
func (m *MockWorkspaceService) DeclineInvitation(ctx context.Context, token string, userID int64) (*domain.WorkspaceInvitation, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceInvitation), args.Error(1)
}
func (m *MockWorkspaceService) GetInvitationDetails(ctx context.Context, token string) (*domain.InvitationDetails, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvitationDetails), args.Error(1)
}
func (m *MockWorkspaceService) GetPendingInvitations(ctx context.Context, workspaceID, actorID int64) ([]domain.WorkspaceInvitation, error) {
	args := m.Called(ctx, workspaceID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkspaceInvitation), args.Error(1)
}
func (m *MockWorkspaceService) GetReceivedInvitations(ctx context.Context, userID int64) ([]domain.InvitationDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvitationDetails), args.Error(1)
}
func (m *MockWorkspaceService) CancelInvitation(ctx context.Context, invitationID, actorID int64) error {
	args := m.Called(ctx, invitationID, actorID)
	return args.Error(0)
}
func (m *MockWorkspaceService) ResendInvitation(ctx context.Context, invitationID, actorID int64) (*domain.WorkspaceInvitation, error) {
	args := m.Called(ctx, invitationID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceInvitation), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.WorkspaceSvcFacade = (*MockWorkspaceService)(nil)

// --- Mock SurveyAccessService ---
type MockSurveyAccessService struct {
	mock.Mock
}

func (m *MockSurveyAccessService) HasAccess(ctx context.Context, surveyID, userID int64, required domain.AccessType) bool {
	args := m.Called(ctx, surveyID, userID, required)
	return args.Bool(0)
}
func (m *MockSurveyAccessService) CanManageSurvey(ctx context.Context, surveyID, userID int64) (bool, error) {
	args := m.Called(ctx, surveyID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSurveyAccessService) GrantAccess(ctx context.Context, surveyID, actorID int64, req dto.GrantAccessRequest) (*domain.SurveyAccess, error) {
	args := m.Called(ctx, surveyID, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SurveyAccess), args.Error(1)
}
func (m *MockSurveyAccessService) RevokeAccess(ctx context.Context, surveyID, userID, actorID int64) error {
	args := m.Called(ctx, surveyID, userID, actorID)
	return args.Error(0)
}
func (m *MockSurveyAccessService) ListSurveyGrants(ctx context.Context, surveyID, actorID int64) ([]domain.SurveyAccess, error) {
	args := m.Called(ctx, surveyID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SurveyAccess), args.Error(1)
}
func (m *MockSurveyAccessService) GetUserSurveyAccess(ctx context.Context, surveyID, userID int64) (*domain.SurveyAccess, error) {
	args := m.Called(ctx, surveyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SurveyAccess), args.Error(1)
}
func (m *MockSurveyAccessService) ListAccessibleSurveys(ctx context.Context, userID int64) ([]domain.Survey, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Survey), args.Error(1)
}

var _ portssvc.SurveyAccessSvcFacade = (*MockSurveyAccessService)(nil)

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyWorkspaceInvitation(ctx context.Context, userID, workspaceID, inviterID int64, message, token string) error {
	args := m.Called(ctx, userID, workspaceID, inviterID, message, token)
	return args.Error(0)
}
func (m *MockNotificationService) NotifyMemberAdded(ctx context.Context, userID, workspaceID int64, message string) error {
	args := m.Called(ctx, userID, workspaceID, message)
	return args.Error(0)
}
func (m *MockNotificationService) ListNotifications(ctx context.Context, userID int64, params dto.ListNotificationsParams) ([]domain.Notification, int, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}
func (m *MockNotificationService) CountUnread(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, notificationID, userID int64) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}
func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *MockNotificationService) DeleteNotification(ctx context.Context, notificationID, userID int64) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)
