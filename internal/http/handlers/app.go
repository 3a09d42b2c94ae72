package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"fundledger/internal/domain"
	"fundledger/internal/http/respond"
	"fundledger/internal/i18n"
	"fundledger/internal/ledger"
)

type App struct {
	Ledger *ledger.Service
	Logger zerolog.Logger
}

func NewApp(svc *ledger.Service, logger zerolog.Logger) *App {
	return &App{Ledger: svc, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	respond.JSON(w, code, v)
}

func (a *App) error(w http.ResponseWriter, r *http.Request, code int, errCode, messageKey string) {
	respond.Error(w, r, code, errCode, messageKey)
}

// domainError maps ledger errors to HTTP statuses. Unknown errors are logged
// and hidden behind a generic message.
func (a *App) domainError(w http.ResponseWriter, r *http.Request, err error) {
	key := func(kind error) string {
		if k := domain.MessageKey(err); k != "" {
			return k
		}
		return kind.Error()
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, "not_found", key(domain.ErrNotFound))
	case errors.Is(err, domain.ErrValidation):
		a.error(w, r, http.StatusBadRequest, "validation", key(domain.ErrValidation))
	case errors.Is(err, domain.ErrPrecondition):
		a.error(w, r, http.StatusBadRequest, "precondition", key(domain.ErrPrecondition))
	case errors.Is(err, domain.ErrConflict):
		a.error(w, r, http.StatusBadRequest, "conflict", key(domain.ErrConflict))
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, r, http.StatusUnauthorized, "unauthorized", i18n.MsgUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, r, http.StatusForbidden, "forbidden", i18n.MsgForbidden)
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, r, http.StatusInternalServerError, "internal", i18n.MsgInternal)
	}
}

// decode reads a JSON body into dst and rejects unknown fields.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
