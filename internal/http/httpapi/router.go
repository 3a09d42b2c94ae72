package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"fundledger/internal/http/handlers"
	"fundledger/internal/infra"
	"fundledger/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.I18N(cfg.DefaultLocale),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Authenticate(cfg.JWTSecret, cfg.JWTIssuer),
	)

	// Health & docs
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)
	r.With(middleware.RequireSuperuser).Get("/v1/summary", app.Summary)

	r.Route("/charity_project", func(r chi.Router) {
		r.Get("/", app.ProjectsList)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSuperuser)
			r.Post("/", app.ProjectsCreate)
			r.Patch("/{project_id}", app.ProjectsUpdate)
			r.Delete("/{project_id}", app.ProjectsDelete)
		})
	})

	r.Route("/donation", func(r chi.Router) {
		r.With(middleware.RequireUser, middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)).
			Post("/", app.DonationsCreate)
		r.With(middleware.RequireSuperuser).Get("/", app.DonationsList)
		r.With(middleware.RequireUser).Get("/my", app.DonationsMine)
	})

	return r
}
