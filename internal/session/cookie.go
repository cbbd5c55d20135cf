package session

import (
	"net/http"
	"strings"
	"time"
)

const defaultCookieName = "portal_session"

// Cookie carries the session id between browser and portal.
type Cookie struct {
	Name   string
	Secure bool
}

func (c Cookie) name() string {
	if strings.TrimSpace(c.Name) == "" {
		return defaultCookieName
	}
	return c.Name
}

// Set writes the session cookie, expiring with s.
func (c Cookie) Set(w http.ResponseWriter, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear tells the browser to drop the session cookie.
func (c Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the session id from r, or "".
func (c Cookie) Read(r *http.Request) string {
	ck, err := r.Cookie(c.name())
	if err != nil {
		return ""
	}
	return ck.Value
}
