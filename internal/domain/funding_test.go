package domain

import (
	"errors"
	"testing"
	"time"
)

func TestFundingMarkClosedKeepsFirstCloseDate(t *testing.T) {
	first := time.Date(2024, 10, 19, 2, 18, 40, 0, time.UTC)
	f := &Funding{ID: 1, FullAmount: 100, InvestedAmount: 100}

	f.MarkClosed(first)
	f.MarkClosed(first.Add(time.Hour))

	if !f.FullyInvested {
		t.Fatalf("expected entity to be fully invested")
	}
	if f.CloseDate == nil || !f.CloseDate.Equal(first) {
		t.Fatalf("close date = %v, want %v", f.CloseDate, first)
	}
}

func TestFundingCheck(t *testing.T) {
	closed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		funding Funding
		wantErr bool
	}{
		{name: "open", funding: Funding{FullAmount: 10, InvestedAmount: 3}},
		{name: "closed", funding: Funding{FullAmount: 10, InvestedAmount: 10, FullyInvested: true, CloseDate: &closed}},
		{name: "overfunded", funding: Funding{FullAmount: 10, InvestedAmount: 11}, wantErr: true},
		{name: "negative", funding: Funding{FullAmount: 10, InvestedAmount: -1}, wantErr: true},
		{name: "full but open", funding: Funding{FullAmount: 10, InvestedAmount: 10}, wantErr: true},
		{name: "closed without date", funding: Funding{FullAmount: 10, InvestedAmount: 10, FullyInvested: true}, wantErr: true},
		{name: "flag without amount", funding: Funding{FullAmount: 10, InvestedAmount: 4, FullyInvested: true, CloseDate: &closed}, wantErr: true},
		{name: "zero goal", funding: Funding{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.funding.Check()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestMessageKey(t *testing.T) {
	err := Fail(ErrConflict, MsgProjectNameTaken)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected error to match ErrConflict")
	}
	if got := MessageKey(err); got != MsgProjectNameTaken {
		t.Fatalf("MessageKey() = %q, want %q", got, MsgProjectNameTaken)
	}
	if got := MessageKey(errors.New("boom")); got != "" {
		t.Fatalf("MessageKey() = %q, want empty", got)
	}
}
