package repositories

import "context"

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	WorkspaceRepo    WorkspaceRepositoryFacade
	MembershipRepo   MembershipRepositoryFacade
	InvitationRepo   InvitationRepositoryFacade
	SurveyRepo       SurveyRepositoryFacade
	SurveyAccessRepo SurveyAccessRepositoryFacade
	ActivityRepo     ActivityRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	TxRunner         TxRunner
}

// StoreProvider exposes the repositories bound to a single transaction.
type StoreProvider interface {
	Users() UserRepositoryFacade
	Workspaces() WorkspaceRepositoryFacade
	Memberships() MembershipRepositoryFacade
	Invitations() InvitationRepositoryFacade
}

// TxRunner runs fn within a transaction. If fn returns an error every write made
// through the provided stores is rolled back.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}
