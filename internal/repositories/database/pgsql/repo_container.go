package pgsql

import (
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every repository over the pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		WorkspaceRepo:    newPgxWorkspaceRepository(dbPool),
		MembershipRepo:   newPgxMembershipRepository(dbPool),
		InvitationRepo:   newPgxInvitationRepository(dbPool),
		SurveyRepo:       newPgxSurveyRepository(dbPool),
		SurveyAccessRepo: newPgxSurveyAccessRepository(dbPool),
		ActivityRepo:     newPgxActivityRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
		TxRunner:         newPgxTxRunner(dbPool),
	}
}
