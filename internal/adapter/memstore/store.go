// Package memstore is an in-memory transactional ledger store. Each
// transaction works on a private copy of the state that replaces the shared
// state on commit, so a failed transaction leaves nothing behind.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"fundledger/internal/domain"
)

type state struct {
	projects       map[int64]domain.CharityProject
	donations      map[int64]domain.Donation
	nextProjectID  int64
	nextDonationID int64
}

func newState() state {
	return state{
		projects:  map[int64]domain.CharityProject{},
		donations: map[int64]domain.Donation{},
	}
}

func (s state) clone() state {
	cp := state{
		projects:       make(map[int64]domain.CharityProject, len(s.projects)),
		donations:      make(map[int64]domain.Donation, len(s.donations)),
		nextProjectID:  s.nextProjectID,
		nextDonationID: s.nextDonationID,
	}
	for id, p := range s.projects {
		cp.projects[id] = cloneProject(p)
	}
	for id, d := range s.donations {
		cp.donations[id] = cloneDonation(d)
	}
	return cp
}

// Store keeps projects and donations in memory. Transactions are serialized.
type Store struct {
	mu    sync.Mutex
	state state
}

func New() *Store {
	return &Store{state: newState()}
}

// Transact runs fn against a copy of the current state and publishes the copy
// only when fn succeeds.
func (s *Store) Transact(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	working := s.state.clone()
	tx := &transaction{state: &working}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	s.state = working
	return nil
}

type transaction struct {
	state *state
}

func (t *transaction) Projects() domain.ProjectRepository { return projectRepo{state: t.state} }

func (t *transaction) Donations() domain.DonationRepository { return donationRepo{state: t.state} }

// LockAllocation is a no-op: Transact already holds the store lock.
func (t *transaction) LockAllocation(context.Context) error { return nil }

type projectRepo struct {
	state *state
}

func (r projectRepo) Create(_ context.Context, project *domain.CharityProject) error {
	for _, existing := range r.state.projects {
		if existing.Name == project.Name {
			return domain.Fail(domain.ErrConflict, domain.MsgProjectNameTaken)
		}
	}
	r.state.nextProjectID++
	project.ID = r.state.nextProjectID
	r.state.projects[project.ID] = cloneProject(*project)
	return nil
}

func (r projectRepo) GetByID(_ context.Context, id int64) (*domain.CharityProject, error) {
	p, ok := r.state.projects[id]
	if !ok {
		return nil, fmt.Errorf("get project %d: %w", id, domain.ErrNotFound)
	}
	cp := cloneProject(p)
	return &cp, nil
}

func (r projectRepo) FindIDByName(_ context.Context, name string) (int64, error) {
	for id, p := range r.state.projects {
		if p.Name == name {
			return id, nil
		}
	}
	return 0, nil
}

func (r projectRepo) List(context.Context) ([]*domain.CharityProject, error) {
	return r.filter(func(domain.CharityProject) bool { return true }), nil
}

func (r projectRepo) ListOpen(context.Context) ([]*domain.CharityProject, error) {
	return r.filter(func(p domain.CharityProject) bool { return !p.FullyInvested }), nil
}

func (r projectRepo) Update(_ context.Context, project *domain.CharityProject) error {
	if _, ok := r.state.projects[project.ID]; !ok {
		return fmt.Errorf("update project %d: %w", project.ID, domain.ErrNotFound)
	}
	for id, existing := range r.state.projects {
		if id != project.ID && existing.Name == project.Name {
			return domain.Fail(domain.ErrConflict, domain.MsgProjectNameTaken)
		}
	}
	r.state.projects[project.ID] = cloneProject(*project)
	return nil
}

func (r projectRepo) SaveFunding(_ context.Context, project *domain.CharityProject) error {
	stored, ok := r.state.projects[project.ID]
	if !ok {
		return fmt.Errorf("update project %d funding: %w", project.ID, domain.ErrNotFound)
	}
	stored.Funding = cloneFunding(project.Funding)
	if err := stored.Check(); err != nil {
		return domain.Fail(domain.ErrConflict, domain.MsgFundsAlreadyAssigned)
	}
	r.state.projects[project.ID] = stored
	return nil
}

func (r projectRepo) Delete(_ context.Context, id int64) error {
	p, ok := r.state.projects[id]
	if !ok {
		return fmt.Errorf("delete project %d: %w", id, domain.ErrNotFound)
	}
	if p.InvestedAmount > 0 {
		return fmt.Errorf("delete project %d: %w", id, domain.Fail(domain.ErrPrecondition, domain.MsgProjectHasFunds))
	}
	delete(r.state.projects, id)
	return nil
}

func (r projectRepo) filter(keep func(domain.CharityProject) bool) []*domain.CharityProject {
	out := make([]*domain.CharityProject, 0, len(r.state.projects))
	for _, p := range r.state.projects {
		if keep(p) {
			cp := cloneProject(p)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].Funding, out[j].Funding)
	})
	return out
}

type donationRepo struct {
	state *state
}

func (r donationRepo) Create(_ context.Context, donation *domain.Donation) error {
	r.state.nextDonationID++
	donation.ID = r.state.nextDonationID
	r.state.donations[donation.ID] = cloneDonation(*donation)
	return nil
}

func (r donationRepo) List(context.Context) ([]*domain.Donation, error) {
	return r.filter(func(domain.Donation) bool { return true }), nil
}

func (r donationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Donation, error) {
	return r.filter(func(d domain.Donation) bool {
		return d.UserID != nil && *d.UserID == userID
	}), nil
}

func (r donationRepo) ListOpen(context.Context) ([]*domain.Donation, error) {
	return r.filter(func(d domain.Donation) bool { return !d.FullyInvested }), nil
}

func (r donationRepo) SaveFunding(_ context.Context, donation *domain.Donation) error {
	stored, ok := r.state.donations[donation.ID]
	if !ok {
		return fmt.Errorf("update donation %d funding: %w", donation.ID, domain.ErrNotFound)
	}
	stored.Funding = cloneFunding(donation.Funding)
	if err := stored.Check(); err != nil {
		return domain.Fail(domain.ErrConflict, domain.MsgFundsAlreadyAssigned)
	}
	r.state.donations[donation.ID] = stored
	return nil
}

func (r donationRepo) filter(keep func(domain.Donation) bool) []*domain.Donation {
	out := make([]*domain.Donation, 0, len(r.state.donations))
	for _, d := range r.state.donations {
		if keep(d) {
			cp := cloneDonation(d)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].Funding, out[j].Funding)
	})
	return out
}

func before(a, b domain.Funding) bool {
	if !a.CreateDate.Equal(b.CreateDate) {
		return a.CreateDate.Before(b.CreateDate)
	}
	return a.ID < b.ID
}

func cloneFunding(f domain.Funding) domain.Funding {
	if f.CloseDate != nil {
		closed := *f.CloseDate
		f.CloseDate = &closed
	}
	return f
}

func cloneProject(p domain.CharityProject) domain.CharityProject {
	p.Funding = cloneFunding(p.Funding)
	return p
}

func cloneDonation(d domain.Donation) domain.Donation {
	d.Funding = cloneFunding(d.Funding)
	if d.UserID != nil {
		userID := *d.UserID
		d.UserID = &userID
	}
	return d
}

var _ domain.Transactor = (*Store)(nil)
