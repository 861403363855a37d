package provider

import (
	"fmt"
	"time"
)

// Identity is the authenticated user's record as held by the identity
// provider. The portal never stores it; a copy lives only for the duration of
// a request (plus the resolver's short staleness window).
type Identity struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username,omitempty"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerification"`
	CreatedAt     time.Time `json:"createdAt"`
}

// validate shapes the provider response once at the boundary. Anything the
// portal renders must be present here; Username stays optional.
func (i *Identity) validate() error {
	if i.ID == "" {
		return fmt.Errorf("identity missing id")
	}
	if i.Email == "" {
		return fmt.Errorf("identity %s missing email", i.ID)
	}
	return nil
}

// Session is the provider's view of a freshly created session. Secret is the
// opaque bearer token the browser holds as the session-credential cookie.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}
