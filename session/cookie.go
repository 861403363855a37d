// Package session owns the session-credential cookie: one opaque bearer token
// issued by the identity provider and held by the browser. Nothing else in the
// process stores the credential.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DefaultCookieName is used when no cookie name is configured.
const DefaultCookieName = "_session"

// Store reads and writes the session cookie under a configured name. The
// transport constraints (site-wide path, HTTP-only, SameSite=Strict, Secure)
// are fixed, not configurable.
type Store struct {
	name string
}

// NewStore creates a cookie store. An empty name falls back to DefaultCookieName.
func NewStore(name string) *Store {
	if name == "" {
		name = DefaultCookieName
	}
	return &Store{name: name}
}

// Name returns the configured cookie name.
func (s *Store) Name() string { return s.name }

// Read returns the session secret carried by the request, if any. An empty
// cookie value counts as absent.
func (s *Store) Read(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(s.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Write sets the session cookie on the response.
func (s *Store) Write(c echo.Context, secret string) {
	c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    secret,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   true,
	})
}

// Clear expires the session cookie. Clearing is the browser-local source of
// truth for leaving the authenticated state; provider-side revocation is a
// separate, best-effort step.
func (s *Store) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
