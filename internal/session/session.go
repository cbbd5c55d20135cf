// Package session keeps the portal's server-side sessions: the backend bearer
// token and a snapshot of the signed-in account, addressed by an opaque id
// that travels in a cookie.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/wolfman30/wellness-portal/internal/directory"
)

var (
	// ErrNotFound means no session exists for the id.
	ErrNotFound = errors.New("session: not found")
	// ErrExpired means the session existed but is past its expiry.
	ErrExpired = errors.New("session: expired")
)

// Session is one signed-in browser.
type Session struct {
	ID        string         `json:"id"`
	Token     string         `json:"token"`
	User      directory.User `json:"user"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// HasRole is nil-safe.
func (s *Session) HasRole(r directory.Role) bool {
	if s == nil {
		return false
	}
	return s.User.HasRole(r)
}

// Roles returns the account roles, nil for a nil session.
func (s *Session) Roles() []directory.Role {
	if s == nil {
		return nil
	}
	return s.User.Roles
}

// Store persists sessions.
type Store interface {
	Save(ctx context.Context, s *Session) error
	// Get returns ErrNotFound when the id is unknown and ErrExpired when the
	// record is still stored but past its expiry.
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type ctxKey struct{}

// WithSession attaches s to ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached by WithSession, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
