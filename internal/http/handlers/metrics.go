package handlers

import (
	"net/http"
)

type ledgerSummary struct {
	ProjectsOpen    int   `json:"projects_open"`
	ProjectsClosed  int   `json:"projects_closed"`
	DonationsOpen   int   `json:"donations_open"`
	DonationsClosed int   `json:"donations_closed"`
	Donated         int64 `json:"donated"`
	Invested        int64 `json:"invested"`
	Requested       int64 `json:"requested"`
}

// Summary reports ledger totals. Donated minus invested is the pool still
// waiting for a project.
func (a *App) Summary(w http.ResponseWriter, r *http.Request) {
	projects, donations, err := a.Ledger.Snapshot(r.Context())
	if err != nil {
		a.domainError(w, r, err)
		return
	}

	var s ledgerSummary
	for _, p := range projects {
		if p.FullyInvested {
			s.ProjectsClosed++
		} else {
			s.ProjectsOpen++
		}
		s.Requested += p.FullAmount
	}
	for _, d := range donations {
		if d.FullyInvested {
			s.DonationsClosed++
		} else {
			s.DonationsOpen++
		}
		s.Donated += d.FullAmount
		s.Invested += d.InvestedAmount
	}
	a.json(w, http.StatusOK, s)
}
