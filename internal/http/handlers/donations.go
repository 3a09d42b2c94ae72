package handlers

import (
	"net/http"
	"time"

	"fundledger/internal/domain"
	"fundledger/internal/i18n"
	"fundledger/internal/middleware"
)

type donationRequest struct {
	FullAmount int64  `json:"full_amount"`
	Comment    string `json:"comment"`
}

// donationShortView is what a donor sees about their own donations.
type donationShortView struct {
	ID         int64     `json:"id"`
	Comment    string    `json:"comment,omitempty"`
	FullAmount int64     `json:"full_amount"`
	CreateDate time.Time `json:"create_date"`
}

type donationFullView struct {
	donationShortView
	UserID         *string    `json:"user_id,omitempty"`
	InvestedAmount int64      `json:"invested_amount"`
	FullyInvested  bool       `json:"fully_invested"`
	CloseDate      *time.Time `json:"close_date,omitempty"`
}

func newDonationShortView(d *domain.Donation) donationShortView {
	return donationShortView{
		ID:         d.ID,
		Comment:    d.Comment,
		FullAmount: d.FullAmount,
		CreateDate: d.CreateDate,
	}
}

func newDonationFullView(d *domain.Donation) donationFullView {
	return donationFullView{
		donationShortView: newDonationShortView(d),
		UserID:            d.UserID,
		InvestedAmount:    d.InvestedAmount,
		FullyInvested:     d.FullyInvested,
		CloseDate:         d.CloseDate,
	}
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		a.error(w, r, http.StatusUnauthorized, "unauthorized", i18n.MsgUnauthorized)
		return
	}
	var req donationRequest
	if err := decode(r, &req); err != nil {
		a.error(w, r, http.StatusUnprocessableEntity, "bad_request", i18n.MsgInvalidPayload)
		return
	}
	userID := principal.UserID
	donation, err := a.Ledger.CreateDonation(r.Context(), domain.NewDonation{
		UserID:     &userID,
		FullAmount: req.FullAmount,
		Comment:    req.Comment,
	})
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, newDonationShortView(donation))
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	donations, err := a.Ledger.ListDonations(r.Context())
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	items := make([]donationFullView, 0, len(donations))
	for _, d := range donations {
		items = append(items, newDonationFullView(d))
	}
	a.json(w, http.StatusOK, items)
}

func (a *App) DonationsMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		a.error(w, r, http.StatusUnauthorized, "unauthorized", i18n.MsgUnauthorized)
		return
	}
	donations, err := a.Ledger.ListUserDonations(r.Context(), principal.UserID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	items := make([]donationShortView, 0, len(donations))
	for _, d := range donations {
		items = append(items, newDonationShortView(d))
	}
	a.json(w, http.StatusOK, items)
}
