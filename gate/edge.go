package gate

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"go.pilab.hu/portal/session"
)

// Decision is the edge gate's verdict for one request: pass through, or
// redirect. Explicit values, no control-flow-by-panic.
type Decision struct {
	// Redirect is empty for pass-through, otherwise the target path.
	Redirect string
}

// Proceed reports whether the request passes through unchanged.
func (d Decision) Proceed() bool { return d.Redirect == "" }

// Decide applies the edge rules to a path and the raw presence of the session
// cookie. It never inspects the cookie's validity and never contacts the
// provider; the authoritative gate does that later. Idempotent, no side
// effects.
func Decide(path string, hasCookie bool) Decision {
	if Excluded(path) {
		return Decision{}
	}
	switch Classify(path) {
	case ClassProtected:
		if !hasCookie {
			return Decision{Redirect: PathLogin}
		}
	case ClassAuth:
		if hasCookie {
			return Decision{Redirect: PathAccount}
		}
	}
	return Decision{}
}

// EdgeGate returns the middleware form of Decide, applied before any handler.
func EdgeGate(cookies *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, hasCookie := cookies.Read(c)
			if d := Decide(c.Request().URL.Path, hasCookie); !d.Proceed() {
				return c.Redirect(http.StatusFound, d.Redirect)
			}
			return next(c)
		}
	}
}
