package domain

import "context"

// ProjectRepository defines persistence for charity projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *CharityProject) error
	GetByID(ctx context.Context, id int64) (*CharityProject, error)
	// FindIDByName returns the id of the project called name, or 0 when absent.
	FindIDByName(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]*CharityProject, error)
	// ListOpen returns projects that are not fully invested, oldest first.
	ListOpen(ctx context.Context) ([]*CharityProject, error)
	Update(ctx context.Context, project *CharityProject) error
	SaveFunding(ctx context.Context, project *CharityProject) error
	Delete(ctx context.Context, id int64) error
}

// DonationRepository defines persistence for donations.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	List(ctx context.Context) ([]*Donation, error)
	ListByUser(ctx context.Context, userID string) ([]*Donation, error)
	// ListOpen returns donations that are not fully invested, oldest first.
	ListOpen(ctx context.Context) ([]*Donation, error)
	SaveFunding(ctx context.Context, donation *Donation) error
}

// Tx is the unit of work handed to a Transactor callback.
type Tx interface {
	Projects() ProjectRepository
	Donations() DonationRepository
	// LockAllocation serializes allocation passes for the rest of the transaction.
	LockAllocation(ctx context.Context) error
}

// Transactor runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
type Transactor interface {
	Transact(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
