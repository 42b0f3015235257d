package services

import "github.com/SscSPs/survey_workspace_app/internal/events"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User         UserSvcFacade
	Token        TokenSvcFacade
	Membership   MembershipSvc
	Invitation   InvitationSvcFacade
	Workspace    WorkspaceSvcFacade
	SurveyAccess SurveyAccessSvcFacade
	Notification NotificationSvcFacade
	Activity     ActivitySvc

	// SideEffects executes dispatched events; the stream worker runs it directly.
	SideEffects events.Handler
}
