package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxTxRunner struct {
	pool *pgxpool.Pool
}

func newPgxTxRunner(pool *pgxpool.Pool) portsrepo.TxRunner {
	return &pgxTxRunner{pool: pool}
}

var _ portsrepo.TxRunner = (*pgxTxRunner)(nil)

// WithTx begins a transaction, hands fn repositories bound to it, and commits
// when fn succeeds. Any error or panic rolls back.
func (r *pgxTxRunner) WithTx(ctx context.Context, fn func(stores portsrepo.StoreProvider) error) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, apperrors.NewAppError(500, "failed to rollback transaction", rbErr))
			}
		}
	}()

	if err = fn(txStores{tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

type txStores struct {
	tx pgx.Tx
}

func (s txStores) Users() portsrepo.UserRepositoryFacade {
	return newPgxUserRepository(s.tx)
}

func (s txStores) Workspaces() portsrepo.WorkspaceRepositoryFacade {
	return newPgxWorkspaceRepository(s.tx)
}

func (s txStores) Memberships() portsrepo.MembershipRepositoryFacade {
	return newPgxMembershipRepository(s.tx)
}

func (s txStores) Invitations() portsrepo.InvitationRepositoryFacade {
	return newPgxInvitationRepository(s.tx)
}
