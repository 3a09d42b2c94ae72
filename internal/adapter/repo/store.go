package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"fundledger/internal/domain"
	"fundledger/internal/infra"
	"fundledger/internal/sqlinline"
)

// Store is the Postgres unit of work. Every Transact call runs on its own
// read-committed transaction.
type Store struct {
	runner *infra.SQLRunner
}

func NewStore(runner *infra.SQLRunner) *Store {
	return &Store{runner: runner}
}

func (s *Store) Transact(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) error {
	return s.runner.WithTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(exec infra.SQLExecutor) error {
		return fn(ctx, &pgTx{
			exec:      exec,
			projects:  NewProjectRepository(exec),
			donations: NewDonationRepository(exec),
		})
	})
}

// Projects returns a repository that runs outside any transaction.
func (s *Store) Projects() *ProjectRepositoryPG {
	return NewProjectRepository(s.runner)
}

// Donations returns a repository that runs outside any transaction.
func (s *Store) Donations() *DonationRepositoryPG {
	return NewDonationRepository(s.runner)
}

type pgTx struct {
	exec      infra.SQLExecutor
	projects  *ProjectRepositoryPG
	donations *DonationRepositoryPG
}

func (t *pgTx) Projects() domain.ProjectRepository { return t.projects }

func (t *pgTx) Donations() domain.DonationRepository { return t.donations }

func (t *pgTx) LockAllocation(ctx context.Context) error {
	_, err := t.exec.Exec(ctx, sqlinline.QLockAllocation, sqlinline.AllocationLockKey)
	return mapError(err)
}

var _ domain.Transactor = (*Store)(nil)
