package services_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/core/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/SscSPs/survey_workspace_app/internal/events"
	"github.com/SscSPs/survey_workspace_app/internal/mailer"
	"github.com/SscSPs/survey_workspace_app/internal/repositories/memstore"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	ownerID   int64 = 1
	bobID     int64 = 2
	carolID   int64 = 3
	adminID   int64 = 9
	strangeID int64 = 42
)

// recordingDispatcher keeps dispatched events for inspection.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Dispatch(_ context.Context, evt events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, evt)
}

func (d *recordingDispatcher) Events() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event(nil), d.events...)
}

func (d *recordingDispatcher) OfType(t events.Type) []events.Event {
	var out []events.Event
	for _, evt := range d.Events() {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWorkspaceInvitation(ctx context.Context, msg mailer.InvitationEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// fixture wires the real services over an in-memory store.
type fixture struct {
	ctx        context.Context
	store      *memstore.Store
	repos      portsrepo.RepositoryProvider
	clock      *fakeClock
	dispatcher *recordingDispatcher

	memberships   portssvc.MembershipSvc
	invitations   portssvc.InvitationSvcFacade
	workspaces    portssvc.WorkspaceSvcFacade
	access        portssvc.SurveyAccessSvcFacade
	notifications portssvc.NotificationSvcFacade
	activity      portssvc.ActivitySvc

	tokens atomic.Int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:        context.Background(),
		store:      memstore.New(),
		clock:      &fakeClock{now: time.Now().UTC().Truncate(time.Second)},
		dispatcher: &recordingDispatcher{},
	}
	f.repos = f.store.Provider()

	f.addUser(ownerID, "olive", "owner@example.com", "Olive Owner", domain.PlatformRoleCreator)
	f.addUser(bobID, "bob", "b@example.com", "Bob", domain.PlatformRoleUser)
	f.addUser(carolID, "carol", "carol@example.com", "", domain.PlatformRoleUser)
	f.addUser(adminID, "root", "admin@example.com", "Admin", domain.PlatformRoleAdmin)

	f.memberships = services.NewMembershipService(f.repos.WorkspaceRepo, f.repos.MembershipRepo)
	f.activity = services.NewActivityService(f.repos.ActivityRepo)
	f.notifications = services.NewNotificationService(f.repos.NotificationRepo)
	f.access = services.NewSurveyAccessService(f.repos)
	f.invitations = services.NewInvitationService(f.repos, f.dispatcher,
		services.WithInvitationClock(f.clock.Now),
		services.WithTokenGenerator(f.nextToken))
	f.workspaces = services.NewWorkspaceService(f.repos, f.memberships, f.invitations, f.activity, f.dispatcher)
	return f
}

func (f *fixture) nextToken() (string, error) {
	return fmt.Sprintf("token-%d", f.tokens.Add(1)), nil
}

func (f *fixture) addUser(userID int64, username, email, name string, role domain.PlatformRole) {
	f.store.PutUser(domain.User{
		UserID:       userID,
		Username:     username,
		Email:        email,
		Name:         name,
		PlatformRole: role,
	})
}

func (f *fixture) createWorkspace(t *testing.T, name string, visibility domain.Visibility) *domain.Workspace {
	t.Helper()
	ws, err := f.workspaces.CreateWorkspace(f.ctx, dto.CreateWorkspaceRequest{Name: name, Visibility: visibility}, ownerID)
	require.NoError(t, err)
	return ws
}

func (f *fixture) addSurvey(surveyID, createdBy int64, workspaceID *int64) {
	f.store.PutSurvey(domain.Survey{
		SurveyID:    surveyID,
		Title:       fmt.Sprintf("Survey %d", surveyID),
		Status:      "draft",
		CreatedBy:   createdBy,
		WorkspaceID: workspaceID,
		Timestamps:  domain.Timestamps{CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
	})
}

func (f *fixture) activityActions(t *testing.T, workspaceID int64) []domain.ActivityAction {
	t.Helper()
	entries, err := f.activity.List(f.ctx, workspaceID, 100)
	require.NoError(t, err)
	actions := make([]domain.ActivityAction, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	return actions
}
