package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wolfman30/wellness-portal/internal/directory"
	"github.com/wolfman30/wellness-portal/internal/session"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

// SessionResolver loads a live session by id.
type SessionResolver interface {
	Resolve(ctx context.Context, id string) (*session.Session, error)
}

type errorBody struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg, Redirect: redirect})
}

// RequireSession resolves the session cookie and stores the session in the
// request context. Missing, unknown or expired sessions get 401 with the
// login path, and the stale cookie is cleared.
func RequireSession(resolver SessionResolver, cookie session.Cookie, loginPath string, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := cookie.Read(r)
			if id == "" {
				writeError(w, http.StatusUnauthorized, "authentication required", loginPath)
				return
			}
			s, err := resolver.Resolve(r.Context(), id)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) && !errors.Is(err, session.ErrExpired) {
					logger.Error("session lookup failed", "error", err)
					writeError(w, http.StatusServiceUnavailable, "session store unavailable", "")
					return
				}
				cookie.Clear(w)
				writeError(w, http.StatusUnauthorized, "session expired", loginPath)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

// RequireRole lets the request through when the session holds any of roles.
// It must run after RequireSession.
func RequireRole(roles ...directory.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.FromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required", "")
				return
			}
			if !directory.HasAnyRole(s.Roles(), roles...) {
				writeError(w, http.StatusForbidden, "insufficient role", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionOrIP keys rate limiting by session cookie, falling back to client IP.
func SessionOrIP(cookie session.Cookie) KeyFunc {
	return func(r *http.Request) string {
		if id := cookie.Read(r); id != "" {
			return "session:" + id
		}
		return "ip:" + ClientIP(r)
	}
}
