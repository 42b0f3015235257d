package services

import (
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/events"
	"github.com/SscSPs/survey_workspace_app/internal/mailer"
	"github.com/SscSPs/survey_workspace_app/internal/platform/config"
)

// DispatcherFactory builds the dispatcher that will run the side-effect handler.
type DispatcherFactory func(handler events.Handler) events.Dispatcher

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m mailer.Mailer, newDispatcher DispatcherFactory) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Notification = NewNotificationService(repos.NotificationRepo)
	container.Activity = NewActivityService(repos.ActivityRepo)
	container.Membership = NewMembershipService(repos.WorkspaceRepo, repos.MembershipRepo)
	container.SurveyAccess = NewSurveyAccessService(repos)

	// Side effects are built before the services that dispatch them.
	container.SideEffects = NewSideEffectHandler(m, container.Notification, cfg.FrontendBaseURL)
	dispatcher := newDispatcher(container.SideEffects)

	container.Invitation = NewInvitationService(repos, dispatcher, WithInvitationTTL(cfg.InvitationTTL))
	container.Workspace = NewWorkspaceService(repos, container.Membership, container.Invitation, container.Activity, dispatcher)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.WorkspaceSvcFacade    = (*workspaceService)(nil)
	_ portssvc.InvitationSvcFacade   = (*invitationService)(nil)
	_ portssvc.SurveyAccessSvcFacade = (*surveyAccessService)(nil)
	_ portssvc.TokenSvcFacade        = (*tokenService)(nil)
)
