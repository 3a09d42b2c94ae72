// Package respond writes JSON bodies and localized error envelopes.
package respond

import (
	"encoding/json"
	"net/http"

	"fundledger/internal/i18n"
)

type contextKey struct{}

// LocaleKey is the request context key holding the negotiated locale.
var LocaleKey = contextKey{}

// Locale returns the negotiated locale of r, English when none was set.
func Locale(r *http.Request) string {
	if v, ok := r.Context().Value(LocaleKey).(string); ok && v != "" {
		return v
	}
	return "en"
}

// JSON writes v with status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error  errorDetail `json:"error"`
	Detail string      `json:"detail"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error writes the error envelope with messageKey translated to the request locale.
func Error(w http.ResponseWriter, r *http.Request, code int, errCode, messageKey string) {
	msg := i18n.Translate(Locale(r), messageKey)
	JSON(w, code, errorBody{
		Error:  errorDetail{Code: errCode, Message: msg},
		Detail: msg,
	})
}
