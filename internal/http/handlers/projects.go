package handlers

import (
	"net/http"
	"time"

	"fundledger/internal/domain"
	"fundledger/internal/i18n"
)

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	FullAmount  int64  `json:"full_amount"`
}

type projectPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	FullAmount  *int64  `json:"full_amount"`
}

type projectView struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	FullAmount     int64      `json:"full_amount"`
	InvestedAmount int64      `json:"invested_amount"`
	FullyInvested  bool       `json:"fully_invested"`
	CreateDate     time.Time  `json:"create_date"`
	CloseDate      *time.Time `json:"close_date,omitempty"`
}

func newProjectView(p *domain.CharityProject) projectView {
	return projectView{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		FullAmount:     p.FullAmount,
		InvestedAmount: p.InvestedAmount,
		FullyInvested:  p.FullyInvested,
		CreateDate:     p.CreateDate,
		CloseDate:      p.CloseDate,
	}
}

func (a *App) ProjectsCreate(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decode(r, &req); err != nil {
		a.error(w, r, http.StatusUnprocessableEntity, "bad_request", i18n.MsgInvalidPayload)
		return
	}
	project, err := a.Ledger.CreateProject(r.Context(), domain.NewProject{
		Name:        req.Name,
		Description: req.Description,
		FullAmount:  req.FullAmount,
	})
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, newProjectView(project))
}

func (a *App) ProjectsList(w http.ResponseWriter, r *http.Request) {
	projects, err := a.Ledger.ListProjects(r.Context())
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	items := make([]projectView, 0, len(projects))
	for _, p := range projects {
		items = append(items, newProjectView(p))
	}
	a.json(w, http.StatusOK, items)
}

func (a *App) ProjectsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "project_id")
	if !ok {
		a.error(w, r, http.StatusUnprocessableEntity, "bad_request", i18n.MsgInvalidID)
		return
	}
	var req projectPatchRequest
	if err := decode(r, &req); err != nil {
		a.error(w, r, http.StatusUnprocessableEntity, "bad_request", i18n.MsgInvalidPayload)
		return
	}
	project, err := a.Ledger.UpdateProject(r.Context(), id, domain.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		FullAmount:  req.FullAmount,
	})
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newProjectView(project))
}

func (a *App) ProjectsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "project_id")
	if !ok {
		a.error(w, r, http.StatusUnprocessableEntity, "bad_request", i18n.MsgInvalidID)
		return
	}
	project, err := a.Ledger.DeleteProject(r.Context(), id)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newProjectView(project))
}
