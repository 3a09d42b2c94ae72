// Package ledger runs allocation passes and project administration inside
// transactions.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"fundledger/internal/allocation"
	"fundledger/internal/domain"
)

// Service coordinates entity creation with fund distribution. Every mutating
// call is a single transaction: either all of its writes commit or none do.
type Service struct {
	store  domain.Transactor
	logger zerolog.Logger
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for create and close dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store domain.Transactor, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateDonation records a donation and immediately invests it into open
// projects, oldest first.
func (s *Service) CreateDonation(ctx context.Context, in domain.NewDonation) (*domain.Donation, error) {
	if err := validateAmount(in.FullAmount); err != nil {
		return nil, err
	}

	var created *domain.Donation
	err := s.store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		if err := tx.LockAllocation(ctx); err != nil {
			return fmt.Errorf("lock allocation: %w", err)
		}
		now := s.now()
		donation := &domain.Donation{
			Funding: domain.Funding{FullAmount: in.FullAmount, CreateDate: now},
			UserID:  in.UserID,
			Comment: in.Comment,
		}
		if err := tx.Donations().Create(ctx, donation); err != nil {
			return err
		}
		open, err := tx.Projects().ListOpen(ctx)
		if err != nil {
			return fmt.Errorf("list open projects: %w", err)
		}
		touched := runPass(donation, open, now)
		if err := checkAll(donation, touched); err != nil {
			return err
		}
		if err := tx.Donations().SaveFunding(ctx, donation); err != nil {
			return err
		}
		for _, p := range touched {
			if err := tx.Projects().SaveFunding(ctx, p); err != nil {
				return err
			}
		}
		s.logPass("donation", &donation.Funding, len(touched))
		created = donation
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("full_amount", in.FullAmount).Msg("donation pass rolled back")
		return nil, err
	}
	return created, nil
}

// CreateProject opens a charity project and immediately fills it from
// uninvested donations, oldest first.
func (s *Service) CreateProject(ctx context.Context, in domain.NewProject) (*domain.CharityProject, error) {
	if err := validateNewProject(in); err != nil {
		return nil, err
	}

	var created *domain.CharityProject
	err := s.store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		if err := tx.LockAllocation(ctx); err != nil {
			return fmt.Errorf("lock allocation: %w", err)
		}
		if err := checkNameFree(ctx, tx.Projects(), in.Name, 0); err != nil {
			return err
		}
		now := s.now()
		project := &domain.CharityProject{
			Funding:     domain.Funding{FullAmount: in.FullAmount, CreateDate: now},
			Name:        in.Name,
			Description: in.Description,
		}
		if err := tx.Projects().Create(ctx, project); err != nil {
			return err
		}
		open, err := tx.Donations().ListOpen(ctx)
		if err != nil {
			return fmt.Errorf("list open donations: %w", err)
		}
		touched := runPass(project, open, now)
		if err := checkAll(project, touched); err != nil {
			return err
		}
		if err := tx.Projects().SaveFunding(ctx, project); err != nil {
			return err
		}
		for _, d := range touched {
			if err := tx.Donations().SaveFunding(ctx, d); err != nil {
				return err
			}
		}
		s.logPass("project", &project.Funding, len(touched))
		created = project
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("name", in.Name).Msg("project pass rolled back")
		return nil, err
	}
	return created, nil
}

// UpdateProject edits an open project. All guards run before any write.
func (s *Service) UpdateProject(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.CharityProject, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	var updated *domain.CharityProject
	err := s.store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		project, err := getProject(ctx, tx.Projects(), id)
		if err != nil {
			return err
		}
		if err := checkProjectOpen(project); err != nil {
			return err
		}
		if patch.Name != nil && *patch.Name != project.Name {
			if err := checkNameFree(ctx, tx.Projects(), *patch.Name, project.ID); err != nil {
				return err
			}
		}
		if patch.FullAmount != nil {
			if err := checkFullAmount(project, *patch.FullAmount); err != nil {
				return err
			}
		}

		applyPatch(project, patch)
		if project.Remaining() == 0 {
			allocation.Close(project, s.now())
		}
		if err := project.Check(); err != nil {
			return err
		}
		if err := tx.Projects().Update(ctx, project); err != nil {
			return err
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("project_id", updated.ID).Bool("closed", updated.FullyInvested).Msg("project updated")
	return updated, nil
}

// DeleteProject removes a project that has not received any funds and
// returns it as it was before deletion.
func (s *Service) DeleteProject(ctx context.Context, id int64) (*domain.CharityProject, error) {
	var deleted *domain.CharityProject
	err := s.store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		project, err := getProject(ctx, tx.Projects(), id)
		if err != nil {
			return err
		}
		if err := checkNoFunds(project); err != nil {
			return err
		}
		if err := tx.Projects().Delete(ctx, id); err != nil {
			return err
		}
		deleted = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("project_id", id).Msg("project deleted")
	return deleted, nil
}

func (s *Service) ListProjects(ctx context.Context) ([]*domain.CharityProject, error) {
	var out []*domain.CharityProject
	err := s.store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		out, err = tx.Projects().List(ctx)
		return err
	})
	return out, err
}

func (s *Service) ListDonations(ctx context.Context) ([]*domain.Donation, error) {
	var out []*domain.Donation
	err := s.store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		out, err = tx.Donations().List(ctx)
		return err
	})
	return out, err
}

func (s *Service) ListUserDonations(ctx context.Context, userID string) ([]*domain.Donation, error) {
	var out []*domain.Donation
	err := s.store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		out, err = tx.Donations().ListByUser(ctx, userID)
		return err
	})
	return out, err
}

// Snapshot reads every project and donation from one transaction.
func (s *Service) Snapshot(ctx context.Context) ([]*domain.CharityProject, []*domain.Donation, error) {
	var (
		projects  []*domain.CharityProject
		donations []*domain.Donation
	)
	err := s.store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		if projects, err = tx.Projects().List(ctx); err != nil {
			return err
		}
		donations, err = tx.Donations().List(ctx)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return projects, donations, nil
}

func (s *Service) logPass(kind string, f *domain.Funding, touched int) {
	s.logger.Info().
		Str("kind", kind).
		Int64("id", f.ID).
		Int64("invested", f.InvestedAmount).
		Int64("full", f.FullAmount).
		Bool("closed", f.FullyInvested).
		Int("touched", touched).
		Msg("allocation pass")
}

// runPass distributes funds over open and returns the candidates whose
// invested amount changed.
func runPass[F, I domain.FundedEntity](funds F, open []I, at time.Time) []I {
	before := make([]int64, len(open))
	for i, item := range open {
		before[i] = item.Remaining()
	}
	allocation.Distribute(funds, open, at)

	touched := make([]I, 0, len(open))
	for i, item := range open {
		if item.Remaining() != before[i] || item.IsClosed() {
			touched = append(touched, item)
		}
	}
	return touched
}

func checkAll[F, I domain.FundedEntity](funds F, touched []I) error {
	if err := funds.Check(); err != nil {
		return fmt.Errorf("allocation invariant: %w", err)
	}
	for _, item := range touched {
		if err := item.Check(); err != nil {
			return fmt.Errorf("allocation invariant: %w", err)
		}
	}
	return nil
}
