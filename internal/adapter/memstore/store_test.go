package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"fundledger/internal/domain"
)

var t0 = time.Date(2024, 10, 21, 23, 54, 5, 0, time.UTC)

func newProject(name string, full int64, created time.Time) *domain.CharityProject {
	return &domain.CharityProject{
		Name:        name,
		Description: "description",
		Funding:     domain.Funding{FullAmount: full, CreateDate: created},
	}
}

func TestTransactRollsBackOnError(t *testing.T) {
	store := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		if err := tx.Projects().Create(ctx, newProject("Cats", 100, t0)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transact() error = %v, want %v", err, boom)
	}

	err = store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		projects, err := tx.Projects().List(ctx)
		if err != nil {
			return err
		}
		if len(projects) != 0 {
			t.Fatalf("rolled back project is visible: %+v", projects)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Transact() error: %v", err)
	}
}

func TestProjectNameIsUnique(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		if err := tx.Projects().Create(ctx, newProject("Cats", 100, t0)); err != nil {
			return err
		}
		return tx.Projects().Create(ctx, newProject("Cats", 200, t0.Add(time.Minute)))
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Transact() error = %v, want conflict", err)
	}
}

func TestListOpenOrdersByCreationThenID(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		for _, d := range []*domain.Donation{
			{Funding: domain.Funding{FullAmount: 10, CreateDate: t0.Add(time.Hour)}},
			{Funding: domain.Funding{FullAmount: 20, CreateDate: t0}},
			{Funding: domain.Funding{FullAmount: 30, CreateDate: t0}},
		} {
			if err := tx.Donations().Create(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	err = store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		open, err := tx.Donations().ListOpen(ctx)
		if err != nil {
			return err
		}
		var amounts []int64
		for _, d := range open {
			amounts = append(amounts, d.FullAmount)
		}
		if len(amounts) != 3 || amounts[0] != 20 || amounts[1] != 30 || amounts[2] != 10 {
			t.Fatalf("unexpected order %v", amounts)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Transact() error: %v", err)
	}
}

func TestListOpenHidesClosedWithinTransaction(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		p := newProject("Cats", 100, t0)
		if err := tx.Projects().Create(ctx, p); err != nil {
			return err
		}
		p.FillUp()
		p.MarkClosed(t0.Add(time.Minute))
		if err := tx.Projects().SaveFunding(ctx, p); err != nil {
			return err
		}
		open, err := tx.Projects().ListOpen(ctx)
		if err != nil {
			return err
		}
		if len(open) != 0 {
			t.Fatalf("closed project reappeared as open: %+v", open[0])
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Transact() error: %v", err)
	}
}

func TestSaveFundingRejectsBrokenInvariant(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		d := &domain.Donation{Funding: domain.Funding{FullAmount: 10, CreateDate: t0}}
		if err := tx.Donations().Create(ctx, d); err != nil {
			return err
		}
		d.InvestedAmount = 11
		return tx.Donations().SaveFunding(ctx, d)
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Transact() error = %v, want conflict", err)
	}
}

func TestDeleteRequiresEmptyProject(t *testing.T) {
	store := New()
	ctx := context.Background()

	var funded, empty int64
	err := store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		a := newProject("Funded", 100, t0)
		b := newProject("Empty", 100, t0)
		if err := tx.Projects().Create(ctx, a); err != nil {
			return err
		}
		if err := tx.Projects().Create(ctx, b); err != nil {
			return err
		}
		a.Invest(10)
		funded, empty = a.ID, b.ID
		return tx.Projects().SaveFunding(ctx, a)
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	err = store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		return tx.Projects().Delete(ctx, funded)
	})
	if !errors.Is(err, domain.ErrPrecondition) {
		t.Fatalf("Delete(funded) error = %v, want precondition", err)
	}
	err = store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		return tx.Projects().Delete(ctx, empty)
	})
	if err != nil {
		t.Fatalf("Delete(empty) error: %v", err)
	}
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		return tx.Projects().Create(ctx, newProject("Cats", 100, t0))
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	err = store.Transact(ctx, func(ctx context.Context, tx domain.Tx) error {
		p, err := tx.Projects().GetByID(ctx, 1)
		if err != nil {
			return err
		}
		p.Invest(50)
		again, err := tx.Projects().GetByID(ctx, 1)
		if err != nil {
			return err
		}
		if again.InvestedAmount != 0 {
			t.Fatalf("unsaved mutation leaked into the store")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Transact() error: %v", err)
	}
}
