// Package memstore is an in-process implementation of every repository port.
// It backs STORAGE_DRIVER=memory and the service tests.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
)

type memberKey struct {
	workspaceID int64
	userID      int64
}

type accessKey struct {
	surveyID int64
	userID   int64
}

type tables struct {
	users         map[int64]domain.User
	workspaces    map[int64]domain.Workspace
	members       map[memberKey]domain.WorkspaceMember
	invitations   map[int64]domain.WorkspaceInvitation
	surveys       map[int64]domain.Survey
	access        map[accessKey]domain.SurveyAccess
	activities    []domain.WorkspaceActivity
	notifications map[int64]domain.Notification
	nextMemberID  int64
}

func (t *tables) clone() tables {
	return tables{
		users:         maps.Clone(t.users),
		workspaces:    maps.Clone(t.workspaces),
		members:       maps.Clone(t.members),
		invitations:   maps.Clone(t.invitations),
		surveys:       maps.Clone(t.surveys),
		access:        maps.Clone(t.access),
		activities:    slices.Clone(t.activities),
		notifications: maps.Clone(t.notifications),
		nextMemberID:  t.nextMemberID,
	}
}

// Store holds all tables behind a single mutex.
type Store struct {
	mu   sync.Mutex
	data tables
	now  func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data: tables{
			users:         map[int64]domain.User{},
			workspaces:    map[int64]domain.Workspace{},
			members:       map[memberKey]domain.WorkspaceMember{},
			invitations:   map[int64]domain.WorkspaceInvitation{},
			surveys:       map[int64]domain.Survey{},
			access:        map[accessKey]domain.SurveyAccess{},
			notifications: map[int64]domain.Notification{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Provider exposes the store through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	r := &repo{store: s}
	return portsrepo.RepositoryProvider{
		UserRepo:         r,
		WorkspaceRepo:    r,
		MembershipRepo:   r,
		InvitationRepo:   r,
		SurveyRepo:       r,
		SurveyAccessRepo: r,
		ActivityRepo:     r,
		NotificationRepo: r,
		TxRunner:         &txRunner{store: s},
	}
}

// PutSurvey inserts or replaces a survey. Surveys are authored outside this service.
func (s *Store) PutSurvey(survey domain.Survey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.surveys[survey.SurveyID] = survey
}

// PutUser inserts or replaces a user, bypassing uniqueness checks.
func (s *Store) PutUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[user.UserID] = user
}

// repo implements every repository facade over a Store. Inside a transaction
// the store lock is already held, so inTx skips locking.
type repo struct {
	store *Store
	inTx  bool
}

var (
	_ portsrepo.UserRepositoryFacade         = (*repo)(nil)
	_ portsrepo.WorkspaceRepositoryFacade    = (*repo)(nil)
	_ portsrepo.MembershipRepositoryFacade   = (*repo)(nil)
	_ portsrepo.InvitationRepositoryFacade   = (*repo)(nil)
	_ portsrepo.SurveyRepositoryFacade       = (*repo)(nil)
	_ portsrepo.SurveyAccessRepositoryFacade = (*repo)(nil)
	_ portsrepo.ActivityRepositoryFacade     = (*repo)(nil)
	_ portsrepo.NotificationRepositoryFacade = (*repo)(nil)
)

func (r *repo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *repo) db() *tables {
	return &r.store.data
}

type txRunner struct {
	store *Store
}

// WithTx holds the store lock for the whole of fn and restores the previous
// state when fn fails or panics.
func (t *txRunner) WithTx(ctx context.Context, fn func(stores portsrepo.StoreProvider) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snapshot := t.store.data.clone()
	committed := false
	defer func() {
		if !committed {
			t.store.data = snapshot
		}
	}()

	if err := fn(txStores{r: &repo{store: t.store, inTx: true}}); err != nil {
		return err
	}
	committed = true
	return nil
}

type txStores struct {
	r *repo
}

func (s txStores) Users() portsrepo.UserRepositoryFacade             { return s.r }
func (s txStores) Workspaces() portsrepo.WorkspaceRepositoryFacade   { return s.r }
func (s txStores) Memberships() portsrepo.MembershipRepositoryFacade { return s.r }
func (s txStores) Invitations() portsrepo.InvitationRepositoryFacade { return s.r }
