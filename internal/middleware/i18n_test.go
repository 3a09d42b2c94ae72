package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fundledger/internal/http/respond"
)

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		fallback string
		want     string
	}{
		{
			name: "x-locale overrides",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "RU")
				r.Header.Set("Accept-Language", "en-US")
			},
			fallback: "en",
			want:     "ru",
		},
		{
			name: "accept-language used",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-US,en;q=0.9")
			},
			fallback: "ru",
			want:     "en",
		},
		{
			name: "accept-language ru preference",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "ru-RU,en;q=0.8")
			},
			fallback: "en",
			want:     "ru",
		},
		{
			name:     "configured fallback",
			fallback: "ru",
			want:     "ru",
		},
		{
			name: "default to en",
			want: "en",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.setup != nil {
				tc.setup(req)
			}
			if got := detectLocale(req, tc.fallback); got != tc.want {
				t.Fatalf("detectLocale() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestI18NSetsContextAndHeader(t *testing.T) {
	var seen string
	h := I18N("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = LocaleFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ru")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if seen != "ru" {
		t.Fatalf("locale in context = %q, want ru", seen)
	}
	if got := rr.Header().Get("Content-Language"); got != "ru" {
		t.Fatalf("Content-Language = %q, want ru", got)
	}
}

func TestLocaleFromContext(t *testing.T) {
	ctx := context.Background()
	if got := LocaleFromContext(ctx); got != "en" {
		t.Fatalf("LocaleFromContext() default = %q, want %q", got, "en")
	}
	ctx = context.WithValue(ctx, respond.LocaleKey, "ru")
	if got := LocaleFromContext(ctx); got != "ru" {
		t.Fatalf("LocaleFromContext() with value = %q, want %q", got, "ru")
	}
}
