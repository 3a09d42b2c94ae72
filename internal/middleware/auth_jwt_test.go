package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignAndVerifyJWT(t *testing.T) {
	token, err := SignJWT("test-secret", "fundledger", "user-123", true, time.Hour)
	if err != nil {
		t.Fatalf("SignJWT() unexpected error: %v", err)
	}
	claims, err := VerifyJWT("test-secret", "fundledger", token)
	if err != nil {
		t.Fatalf("VerifyJWT() unexpected error: %v", err)
	}
	if claims.Subject != "user-123" || !claims.Superuser {
		t.Fatalf("VerifyJWT() returned %+v", claims)
	}
}

func TestVerifyJWTRejects(t *testing.T) {
	good, err := SignJWT("secret-a", "fundledger", "user-123", false, time.Hour)
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	expired, err := SignJWT("secret-a", "fundledger", "user-123", false, -time.Minute)
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}

	tests := []struct {
		name   string
		secret string
		issuer string
		token  string
	}{
		{name: "wrong secret", secret: "secret-b", issuer: "fundledger", token: good},
		{name: "wrong issuer", secret: "secret-a", issuer: "other", token: good},
		{name: "expired", secret: "secret-a", issuer: "fundledger", token: expired},
		{name: "garbage", secret: "secret-a", issuer: "fundledger", token: "a.b.c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyJWT(tt.secret, tt.issuer, tt.token); err == nil {
				t.Fatalf("VerifyJWT() expected error")
			}
		})
	}
}

func TestSignJWTRequiresSubject(t *testing.T) {
	if _, err := SignJWT("secret", "fundledger", " ", false, time.Hour); err == nil {
		t.Fatalf("SignJWT() expected error for empty subject")
	}
}

func TestRoleGuards(t *testing.T) {
	const secret = "test-secret"
	userToken, err := SignJWT(secret, "", "7", false, time.Hour)
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	adminToken, err := SignJWT(secret, "", "1", true, time.Hour)
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	tests := []struct {
		name  string
		guard func(http.Handler) http.Handler
		auth  string
		want  int
	}{
		{name: "user anonymous", guard: RequireUser, want: http.StatusUnauthorized},
		{name: "user ok", guard: RequireUser, auth: "Bearer " + userToken, want: http.StatusNoContent},
		{name: "superuser anonymous", guard: RequireSuperuser, want: http.StatusUnauthorized},
		{name: "superuser with user token", guard: RequireSuperuser, auth: "Bearer " + userToken, want: http.StatusForbidden},
		{name: "superuser ok", guard: RequireSuperuser, auth: "bearer " + adminToken, want: http.StatusNoContent},
		{name: "bad scheme", guard: RequireUser, auth: "Basic abc", want: http.StatusUnauthorized},
		{name: "bad token", guard: RequireUser, auth: "Bearer nope", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Authenticate(secret, "")(tt.guard(ok))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
