// Package gate authenticates requests and enforces the capability policy.
package gate

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/auth"
	"github.com/MrJamesThe3rd/gastrack/internal/http/respond"
)

type Verifier interface {
	Verify(raw string) (auth.Identity, error)
}

// Authenticate requires a bearer token. A missing token is refused with 403;
// a token that is malformed, forged or expired gets 401.
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				respond.Error(w, r, apperror.Forbidden("authorization token required"))
				return
			}

			id, err := v.Verify(raw)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					msg = "token expired"
				}

				respond.Error(w, r, apperror.Unauthenticated(msg))

				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// Require lets the request through only when the caller's role holds c.
func Require(c auth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.FromContext(r.Context())
			if !ok {
				respond.Error(w, r, apperror.Forbidden("authorization token required"))
				return
			}

			if !auth.Allows(id.Role, c) {
				respond.Error(w, r, apperror.Forbidden("role "+string(id.Role)+" may not perform "+string(c)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}

	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}

	return strings.TrimSpace(token), true
}
