package provider

import (
	"context"
	"net/http"
)

// AccountAPI is the narrow account-operations surface the portal needs from
// the provider. Both handle kinds implement it; which operations actually
// succeed depends on the handle's authorization.
type AccountAPI interface {
	CreateAccount(ctx context.Context, userID, email, password, name string) (*Identity, error)
	CreateSession(ctx context.Context, email, password string) (*Session, error)
	GetIdentity(ctx context.Context) (*Identity, error)
	DeleteSessions(ctx context.Context) error
	UpdatePassword(ctx context.Context, newPassword, oldPassword string) error
	UpdateEmail(ctx context.Context, newEmail, password string) error
	CreateRecovery(ctx context.Context, email, redirectURL string) error
	ConsumeRecovery(ctx context.Context, userID, secret, newPassword string) error
}

var _ AccountAPI = (*Client)(nil)

type createAccountRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// CreateAccount registers a new identity with the provider (admin handle).
func (c *Client) CreateAccount(ctx context.Context, userID, email, password, name string) (*Identity, error) {
	var id Identity
	req := createAccountRequest{UserID: userID, Email: email, Password: password, Name: name}
	if err := c.do(ctx, "createAccount", http.MethodPost, "/account", req, &id); err != nil {
		return nil, err
	}
	if err := id.validate(); err != nil {
		return nil, err
	}
	return &id, nil
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateSession exchanges email/password credentials for a new session. The
// returned Secret is what the browser holds as its session-credential cookie.
func (c *Client) CreateSession(ctx context.Context, email, password string) (*Session, error) {
	var sess Session
	req := createSessionRequest{Email: email, Password: password}
	if err := c.do(ctx, "createSession", http.MethodPost, "/account/sessions/email", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetIdentity resolves the session handle's secret into a live Identity. The
// provider rejects it with Unauthorized when the session is expired, revoked
// or malformed.
func (c *Client) GetIdentity(ctx context.Context) (*Identity, error) {
	if c.session == "" {
		return nil, ErrNoSession
	}
	var id Identity
	if err := c.do(ctx, "getIdentity", http.MethodGet, "/account", nil, &id); err != nil {
		return nil, err
	}
	if err := id.validate(); err != nil {
		return nil, err
	}
	return &id, nil
}

// DeleteSessions revokes every provider-side session of the identity behind
// the session handle.
func (c *Client) DeleteSessions(ctx context.Context) error {
	if c.session == "" {
		return ErrNoSession
	}
	return c.do(ctx, "deleteSessions", http.MethodDelete, "/account/sessions", nil, nil)
}

type updatePasswordRequest struct {
	Password    string `json:"password"`
	OldPassword string `json:"oldPassword"`
}

// UpdatePassword changes the authenticated identity's password. The provider
// re-verifies the old password; the session stays valid.
func (c *Client) UpdatePassword(ctx context.Context, newPassword, oldPassword string) error {
	if c.session == "" {
		return ErrNoSession
	}
	req := updatePasswordRequest{Password: newPassword, OldPassword: oldPassword}
	return c.do(ctx, "updatePassword", http.MethodPatch, "/account/password", req, nil)
}

type updateEmailRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateEmail changes the authenticated identity's email address, verified
// against the current password.
func (c *Client) UpdateEmail(ctx context.Context, newEmail, password string) error {
	if c.session == "" {
		return ErrNoSession
	}
	req := updateEmailRequest{Email: newEmail, Password: password}
	return c.do(ctx, "updateEmail", http.MethodPatch, "/account/email", req, nil)
}

type createRecoveryRequest struct {
	Email string `json:"email"`
	URL   string `json:"url"`
}

// CreateRecovery asks the provider to mail a one-time recovery link for email.
// redirectURL is the page the link lands on, carrying secret and userId query
// parameters.
func (c *Client) CreateRecovery(ctx context.Context, email, redirectURL string) error {
	req := createRecoveryRequest{Email: email, URL: redirectURL}
	return c.do(ctx, "createRecovery", http.MethodPost, "/account/recovery", req, nil)
}

type consumeRecoveryRequest struct {
	UserID   string `json:"userId"`
	Secret   string `json:"secret"`
	Password string `json:"password"`
}

// ConsumeRecovery redeems a recovery token for a password update (admin
// handle). The provider invalidates the token on first use.
func (c *Client) ConsumeRecovery(ctx context.Context, userID, secret, newPassword string) error {
	req := consumeRecoveryRequest{UserID: userID, Secret: secret, Password: newPassword}
	return c.do(ctx, "consumeRecovery", http.MethodPut, "/account/recovery", req, nil)
}
