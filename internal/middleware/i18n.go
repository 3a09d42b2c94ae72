package middleware

import (
	"context"
	"net/http"
	"strings"

	"fundledger/internal/http/respond"
	"fundledger/internal/i18n"
)

// I18N stores the negotiated response locale in the request context. X-Locale
// wins over Accept-Language.
func I18N(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale)
			ctx := context.WithValue(r.Context(), respond.LocaleKey, locale)
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string) string {
	if v := strings.TrimSpace(r.Header.Get("X-Locale")); v != "" {
		return i18n.Normalize(v)
	}
	return i18n.Match(r.Header.Get("Accept-Language"), fallback)
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(respond.LocaleKey).(string); ok {
		return v
	}
	return "en"
}
