package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoSession is returned by session-handle operations when the handle was
// built without a session secret. It is checked before any network call.
var ErrNoSession = errors.New("no session credential")

// Error is the identity provider's error body. Code mirrors the HTTP status,
// Type is the provider's machine-readable error class.
type Error struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider: %s (%d %s)", e.Message, e.Code, e.Type)
}

// IsUnauthorized reports whether err is a provider rejection of the session
// credential (expired, revoked, malformed).
func IsUnauthorized(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == http.StatusUnauthorized
}

// IsConflict reports whether err is a provider uniqueness conflict, e.g. an
// account created with an already registered email.
func IsConflict(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == http.StatusConflict
}
