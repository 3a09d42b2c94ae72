package domain

import (
	"fmt"
	"time"
)

// FundedEntity is the shared shape of donations and charity projects that the
// allocation engine moves money between.
type FundedEntity interface {
	Key() int64
	CreatedAt() time.Time
	Remaining() int64
	Invest(amount int64)
	FillUp()
	IsClosed() bool
	MarkClosed(at time.Time)
	Check() error
}

// Funding holds the amounts and lifecycle timestamps common to every funded
// entity. Donation and CharityProject embed it.
type Funding struct {
	ID             int64
	FullAmount     int64
	InvestedAmount int64
	FullyInvested  bool
	CreateDate     time.Time
	CloseDate      *time.Time
}

func (f *Funding) Key() int64 { return f.ID }

func (f *Funding) CreatedAt() time.Time { return f.CreateDate }

// Remaining returns the amount still missing before the entity is full.
func (f *Funding) Remaining() int64 {
	return f.FullAmount - f.InvestedAmount
}

// Invest adds amount to the invested total.
func (f *Funding) Invest(amount int64) {
	f.InvestedAmount += amount
}

// FillUp sets the invested total to the full amount.
func (f *Funding) FillUp() {
	f.InvestedAmount = f.FullAmount
}

func (f *Funding) IsClosed() bool {
	return f.FullyInvested
}

// MarkClosed flags the entity as fully invested. The close date is only
// written the first time.
func (f *Funding) MarkClosed(at time.Time) {
	f.FullyInvested = true
	if f.CloseDate == nil {
		closed := at
		f.CloseDate = &closed
	}
}

// Check verifies the amount and closure invariants.
func (f *Funding) Check() error {
	if f.FullAmount <= 0 {
		return fmt.Errorf("%w: full amount %d must be positive", ErrValidation, f.FullAmount)
	}
	if f.InvestedAmount < 0 || f.InvestedAmount > f.FullAmount {
		return fmt.Errorf("invested amount %d outside [0, %d] for id %d", f.InvestedAmount, f.FullAmount, f.ID)
	}
	if f.FullyInvested != (f.InvestedAmount == f.FullAmount) {
		return fmt.Errorf("fully_invested=%t inconsistent with %d/%d for id %d", f.FullyInvested, f.InvestedAmount, f.FullAmount, f.ID)
	}
	if f.FullyInvested && f.CloseDate == nil {
		return fmt.Errorf("closed entity %d has no close date", f.ID)
	}
	return nil
}
