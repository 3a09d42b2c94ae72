package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fundledger/internal/http/respond"
	"fundledger/internal/i18n"
)

// TokenClaims are the bearer token claims. Subject is the user id.
type TokenClaims struct {
	Superuser bool   `json:"superuser,omitempty"`
	Locale    string `json:"locale,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller.
type Principal struct {
	UserID    string
	Superuser bool
}

type principalKey struct{}

// SignJWT issues an HS256 token for subject valid for ttl.
func SignJWT(secret, issuer, subject string, superuser bool, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("jwt subject is empty")
	}
	now := time.Now()
	claims := TokenClaims{
		Superuser: superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyJWT validates signature, expiry and issuer of token.
func VerifyJWT(secret, issuer, token string) (*TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("verify token: missing subject")
	}
	return &claims, nil
}

// Authenticate resolves the bearer token into a Principal. Requests without
// an Authorization header pass through anonymously; a bad token is rejected.
func Authenticate(secret, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respond.Error(w, r, http.StatusUnauthorized, "unauthorized", i18n.MsgInvalidToken)
				return
			}
			claims, err := VerifyJWT(secret, issuer, strings.TrimSpace(parts[1]))
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "unauthorized", i18n.MsgInvalidToken)
				return
			}
			ctx := ContextWithPrincipal(r.Context(), Principal{UserID: claims.Subject, Superuser: claims.Superuser})
			if claims.Locale != "" && r.Header.Get("X-Locale") == "" {
				ctx = context.WithValue(ctx, respond.LocaleKey, i18n.Normalize(claims.Locale))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			respond.Error(w, r, http.StatusUnauthorized, "unauthorized", i18n.MsgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperuser rejects anonymous and non-superuser requests.
func RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			respond.Error(w, r, http.StatusUnauthorized, "unauthorized", i18n.MsgUnauthorized)
			return
		}
		if !p.Superuser {
			respond.Error(w, r, http.StatusForbidden, "forbidden", i18n.MsgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	if strings.TrimSpace(p.UserID) == "" {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, p)
}
