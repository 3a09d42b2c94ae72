package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fundledger/internal/domain"
	"fundledger/internal/infra"
	"fundledger/internal/sqlinline"
)

// DonationRepositoryPG implements DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	db infra.SQLExecutor
}

// NewDonationRepository creates a donation repo bound to db, which may be a
// pool-backed runner or a transaction.
func NewDonationRepository(db infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{db: db}
}

// Create inserts a new donation record and assigns its id.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	row := r.db.QueryRow(ctx, sqlinline.QInsertDonation, donation.UserID, donation.FullAmount, donation.Comment, donation.CreateDate)
	if err := row.Scan(&donation.ID); err != nil {
		return fmt.Errorf("insert donation: %w", mapError(err))
	}
	return nil
}

func (r *DonationRepositoryPG) List(ctx context.Context) ([]*domain.Donation, error) {
	return r.list(ctx, sqlinline.QListDonations)
}

func (r *DonationRepositoryPG) ListByUser(ctx context.Context, userID string) ([]*domain.Donation, error) {
	return r.list(ctx, sqlinline.QListDonationsByUser, userID)
}

// ListOpen returns uninvested donations in creation order, locking them for
// the rest of the transaction.
func (r *DonationRepositoryPG) ListOpen(ctx context.Context) ([]*domain.Donation, error) {
	return r.list(ctx, sqlinline.QListOpenDonations)
}

// SaveFunding persists the allocation columns of donation.
func (r *DonationRepositoryPG) SaveFunding(ctx context.Context, donation *domain.Donation) error {
	tag, err := r.db.Exec(ctx, sqlinline.QUpdateDonationFunding,
		donation.ID, donation.InvestedAmount, donation.FullyInvested, donation.CloseDate)
	if err != nil {
		return fmt.Errorf("update donation %d funding: %w", donation.ID, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update donation %d funding: %w", donation.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *DonationRepositoryPG) list(ctx context.Context, query string, args ...any) ([]*domain.Donation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", mapError(err))
	}
	defer rows.Close()

	items := make([]*domain.Donation, 0)
	for rows.Next() {
		donation, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donations: %w", mapError(err))
	}
	return items, nil
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var d domain.Donation
	if err := row.Scan(&d.ID, &d.UserID, &d.FullAmount, &d.InvestedAmount, &d.FullyInvested, &d.Comment, &d.CreateDate, &d.CloseDate); err != nil {
		return nil, fmt.Errorf("scan donation: %w", mapError(err))
	}
	return &d, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
