package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/SscSPs/survey_workspace_app/internal/handlers"
	"github.com/SscSPs/survey_workspace_app/internal/middleware"
	"github.com/SscSPs/survey_workspace_app/internal/platform/config"
	"github.com/SscSPs/survey_workspace_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const callerID int64 = 7

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	workspaces    *MockWorkspaceService
	surveyAccess  *MockSurveyAccessService
	notifications *MockNotificationService
	jwtSecret     string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.workspaces = new(MockWorkspaceService)
	suite.surveyAccess = new(MockSurveyAccessService)
	suite.notifications = new(MockNotificationService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	container := &portssvc.ServiceContainer{
		Workspace:    suite.workspaces,
		SurveyAccess: suite.surveyAccess,
		Notification: suite.notifications,
	}

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers.RegisterRoutes(suite.router, cfg, container, handlers.RouteOptions{})
}

// generateTestToken creates a JWT for userID signed with the suite secret.
func (suite *HandlerTestSuite) generateTestToken(userID int64) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "survey-test")
	suite.Require().NoError(err)
	return token
}

// do sends a request as callerID unless anonymous is set and decodes the JSON body.
func (suite *HandlerTestSuite) do(method, url string, body any, anonymous bool) (*httptest.ResponseRecorder, map[string]any) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if !anonymous {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(callerID))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	}
	return w, decoded
}

func (suite *HandlerTestSuite) assertFailure(w *httptest.ResponseRecorder, body map[string]any, status int, code string) {
	suite.Equal(status, w.Code, w.Body.String())
	suite.Equal(false, body["ok"])
	suite.Equal(code, body["code"])
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w, _ := suite.do(http.MethodGet, "/health", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestMissingTokenIsUnauthorized() {
	w, body := suite.do(http.MethodGet, "/api/v1/workspaces/my", nil, true)
	suite.assertFailure(w, body, http.StatusUnauthorized, apperrors.CodeUnauthorized)
	suite.workspaces.AssertNotCalled(suite.T(), "ListMyWorkspaces", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateWorkspace_Success() {
	suite.workspaces.On("CreateWorkspace", mock.Anything, dto.CreateWorkspaceRequest{Name: "Research"}, callerID).
		Return(&domain.Workspace{WorkspaceID: 100, Name: "Research", OwnerID: callerID, Visibility: domain.VisibilityPrivate}, nil).Once()

	w, body := suite.do(http.MethodPost, "/api/v1/workspaces", map[string]any{"name": "Research"}, false)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Equal(true, body["ok"])
	workspace := body["workspace"].(map[string]any)
	suite.Equal("100", workspace["workspaceID"])
	suite.Equal("Research", workspace["name"])
	suite.workspaces.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetWorkspace_ErrorCodes() {
	suite.workspaces.On("GetWorkspaceByID", mock.Anything, int64(5), callerID).Return(nil, apperrors.ErrAccessDenied).Once()
	w, body := suite.do(http.MethodGet, "/api/v1/workspaces/5", nil, false)
	suite.assertFailure(w, body, http.StatusForbidden, apperrors.CodeForbidden)

	suite.workspaces.On("GetWorkspaceByID", mock.Anything, int64(6), callerID).Return(nil, apperrors.ErrWorkspaceNotFound).Once()
	w, body = suite.do(http.MethodGet, "/api/v1/workspaces/6", nil, false)
	suite.assertFailure(w, body, http.StatusNotFound, apperrors.CodeWorkspaceNotFound)
}

func (suite *HandlerTestSuite) TestInvalidPathIDIsRejected() {
	w, body := suite.do(http.MethodGet, "/api/v1/workspaces/abc", nil, false)
	suite.assertFailure(w, body, http.StatusBadRequest, apperrors.CodeValidation)
	suite.workspaces.AssertNotCalled(suite.T(), "GetWorkspaceByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestInternalErrorsAreNotLeaked() {
	suite.workspaces.On("ListMyWorkspaces", mock.Anything, callerID).Return(nil, errors.New("connection refused")).Once()

	w, body := suite.do(http.MethodGet, "/api/v1/workspaces/my", nil, false)

	suite.assertFailure(w, body, http.StatusInternalServerError, apperrors.CodeInternal)
	suite.Equal("Internal server error", body["message"])
}

func (suite *HandlerTestSuite) TestAddMember_OnlyOwner() {
	req := dto.AddMemberRequest{UserID: 5, Role: domain.RoleViewer}
	suite.workspaces.On("AddMember", mock.Anything, int64(3), callerID, req).Return(nil, apperrors.ErrOnlyOwnerCanAddMembers).Once()

	w, body := suite.do(http.MethodPost, "/api/v1/workspaces/3/members", map[string]any{"userID": "5", "role": "viewer"}, false)

	suite.assertFailure(w, body, http.StatusForbidden, apperrors.CodeOnlyOwnerCanAddMembers)
	suite.workspaces.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRemoveMember_MissingMemberSucceeds() {
	suite.workspaces.On("RemoveMember", mock.Anything, int64(3), int64(5), callerID).Return(false, nil).Once()

	w, body := suite.do(http.MethodDelete, "/api/v1/workspaces/3/members/5", nil, false)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(true, body["ok"])
	suite.Equal("Member not found, nothing to remove", body["message"])
}

func (suite *HandlerTestSuite) TestJoinWorkspace() {
	suite.workspaces.On("JoinWorkspace", mock.Anything, int64(3), callerID).Return(nil, apperrors.ErrInviteRequired).Once()
	w, body := suite.do(http.MethodPost, "/api/v1/workspaces/3/join", nil, false)
	suite.assertFailure(w, body, http.StatusForbidden, apperrors.CodeInviteRequired)

	suite.workspaces.On("JoinWorkspace", mock.Anything, int64(4), callerID).Return(&domain.MembershipResult{
		Membership:    domain.WorkspaceMember{WorkspaceID: 4, UserID: callerID, Role: domain.RoleMember},
		AlreadyMember: true,
	}, nil).Once()
	w, body = suite.do(http.MethodPost, "/api/v1/workspaces/4/join", nil, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(true, body["alreadyMember"])
}

func (suite *HandlerTestSuite) TestInvite_Duplicate() {
	req := dto.InviteRequest{Email: "bob@example.com", Role: domain.RoleCollaborator}
	suite.workspaces.On("InviteToWorkspace", mock.Anything, int64(3), callerID, req).Return(nil, apperrors.ErrDuplicateInvitation).Once()

	w, body := suite.do(http.MethodPost, "/api/v1/workspaces/3/invite", map[string]any{"email": "bob@example.com", "role": "collaborator"}, false)

	suite.assertFailure(w, body, http.StatusConflict, apperrors.CodeDuplicateInvitation)
}

func (suite *HandlerTestSuite) TestAcceptInvitation_Expired() {
	suite.workspaces.On("AcceptInvitation", mock.Anything, "tok", callerID).Return(nil, apperrors.ErrInvitationExpired).Once()

	w, body := suite.do(http.MethodPost, "/api/v1/workspaces/accept-invitation", map[string]any{"token": "tok"}, false)

	suite.assertFailure(w, body, http.StatusBadRequest, apperrors.CodeInvitationExpired)
}

func (suite *HandlerTestSuite) TestAcceptInvitation_Success() {
	suite.workspaces.On("AcceptInvitation", mock.Anything, "tok", callerID).Return(&domain.InvitationAcceptance{
		Workspace: domain.Workspace{WorkspaceID: 3, Name: "Research"},
		Role:      domain.RoleViewer,
	}, nil).Once()

	w, body := suite.do(http.MethodPost, "/api/v1/workspaces/accept-invitation", map[string]any{"token": "tok"}, false)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("viewer", body["role"])
	suite.Equal(false, body["alreadyMember"])
}

func (suite *HandlerTestSuite) TestInvitationDetailsArePublic() {
	details := &domain.InvitationDetails{
		WorkspaceInvitation: domain.WorkspaceInvitation{InvitationID: 11, InviteeEmail: "bob@example.com", Token: "tok", Status: domain.InvitationPending},
		WorkspaceName:       "Research",
		InviterName:         "Alice",
	}
	suite.workspaces.On("GetInvitationDetails", mock.Anything, "tok").Return(details, nil).Once()

	w, body := suite.do(http.MethodGet, "/api/v1/invitations/tok", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	invitation := body["invitation"].(map[string]any)
	suite.Equal("Research", invitation["workspaceName"])
	suite.Equal("Alice", invitation["inviterName"])
	suite.NotContains(invitation, "token")
}

func (suite *HandlerTestSuite) TestReceivedInvitationsRouteIsNotAnInvitationID() {
	suite.workspaces.On("GetReceivedInvitations", mock.Anything, callerID).Return([]domain.InvitationDetails{}, nil).Once()

	w, body := suite.do(http.MethodGet, "/api/v1/workspaces/invitations/received", nil, false)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal([]any{}, body["invitations"])
}

func (suite *HandlerTestSuite) TestCancelInvitation_NotPending() {
	suite.workspaces.On("CancelInvitation", mock.Anything, int64(11), callerID).Return(apperrors.ErrInvitationNotPending).Once()

	w, body := suite.do(http.MethodDelete, "/api/v1/workspaces/invitations/11", nil, false)

	suite.assertFailure(w, body, http.StatusConflict, apperrors.CodeInvitationNotPending)
}

func (suite *HandlerTestSuite) TestSurveyAccessCheck() {
	suite.surveyAccess.On("HasAccess", mock.Anything, int64(5), callerID, domain.AccessFull).Return(true).Once()

	w, body := suite.do(http.MethodGet, "/api/v1/surveys/5/access/check?level=full", nil, false)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(true, body["hasAccess"])
	suite.Equal("5", body["surveyID"])

	w, body = suite.do(http.MethodGet, "/api/v1/surveys/5/access/check?level=owner", nil, false)
	suite.assertFailure(w, body, http.StatusBadRequest, apperrors.CodeValidation)
	suite.surveyAccess.AssertNumberOfCalls(suite.T(), "HasAccess", 1)
}

func (suite *HandlerTestSuite) TestRevokeAccess_NoActiveGrant() {
	suite.surveyAccess.On("RevokeAccess", mock.Anything, int64(5), int64(2), callerID).
		Return(apperrors.NewNotFoundError("Access record not found")).Once()

	w, body := suite.do(http.MethodDelete, "/api/v1/surveys/5/access/2", nil, false)

	suite.assertFailure(w, body, http.StatusNotFound, apperrors.CodeNotFound)
	suite.Equal("Access record not found", body["message"])
}

func (suite *HandlerTestSuite) TestListNotifications_ClampsPage() {
	suite.notifications.On("ListNotifications", mock.Anything, callerID, dto.ListNotificationsParams{Limit: 500}).
		Return([]domain.Notification{}, 3, nil).Once()

	w, body := suite.do(http.MethodGet, "/api/v1/notifications?limit=500", nil, false)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(3), body["total"])
	suite.Equal(float64(dto.MaxNotificationLimit), body["limit"])
}

func (suite *HandlerTestSuite) TestMarkAllRead() {
	suite.notifications.On("MarkAllAsRead", mock.Anything, callerID).Return(4, nil).Once()

	w, body := suite.do(http.MethodPatch, "/api/v1/notifications/read-all", nil, false)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(4), body["count"])
	suite.notifications.AssertNotCalled(suite.T(), "MarkAsRead", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
