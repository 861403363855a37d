package web

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"go.pilab.hu/portal/gate"
	"go.pilab.hu/portal/provider"
)

// genericRecoveryMessage is returned for every recovery request, whether or
// not the address exists and whether or not the provider succeeded. Anything
// more specific would let a caller probe which emails are registered.
const genericRecoveryMessage = "If an account exists for that address, a recovery link is on its way."

// SignUp handles POST /auth/register: create the account, open a session, set
// the cookie. Both provider calls go through the admin handle.
func (h *Handlers) SignUp(c echo.Context) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm")

	form := map[string]string{"name": name, "email": email}
	result := &Result{}
	checkRequired(result, "name", name, "Name is required.")
	checkEmail(result, "email", email)
	checkNewPassword(result, password, confirm)
	if result.Failed() {
		return c.Render(http.StatusBadRequest, "register",
			pageData{Title: "Create Account", Result: result, Form: form})
	}

	ctx := c.Request().Context()
	admin := h.admin()

	if _, err := admin.CreateAccount(ctx, uuid.NewString(), email, password, name); err != nil {
		msg := "Registration failed. Please try again."
		if provider.IsConflict(err) {
			msg = "An account with this email already exists."
		}
		h.logger.Warn(ctx, "sign-up rejected", map[string]any{"error": err.Error()})
		return c.Render(http.StatusOK, "register",
			pageData{Title: "Create Account", Result: &Result{Message: msg}, Form: form})
	}

	sess, err := admin.CreateSession(ctx, email, password)
	if err != nil {
		// Account exists but the session didn't open; the visitor can still
		// sign in normally. No cookie is set.
		h.logger.Error(ctx, "post-registration session failed", err, nil)
		return c.Render(http.StatusOK, "login", pageData{
			Title:  "Sign In",
			Result: &Result{Message: "Account created. Please sign in."},
		})
	}

	h.cookies.Write(c, sess.Secret)
	return c.Redirect(http.StatusSeeOther, gate.PathAccount)
}

// SignIn handles POST /auth/login: one createSession exchange; the cookie is
// only touched on success.
func (h *Handlers) SignIn(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	result := &Result{}
	checkEmail(result, "email", email)
	checkRequired(result, "password", password, "Password is required.")
	if result.Failed() {
		return c.Render(http.StatusBadRequest, "login",
			pageData{Title: "Sign In", Result: result, Form: map[string]string{"email": email}})
	}

	ctx := c.Request().Context()
	sess, err := h.admin().CreateSession(ctx, email, password)
	if err != nil {
		msg := "Sign-in failed. Please try again."
		if provider.IsUnauthorized(err) {
			msg = "Invalid email or password."
		}
		return c.Render(http.StatusOK, "login",
			pageData{Title: "Sign In", Result: &Result{Message: msg}, Form: map[string]string{"email": email}})
	}

	h.cookies.Write(c, sess.Secret)
	return c.Redirect(http.StatusSeeOther, gate.PathAccount)
}

// SignOut handles POST /auth/logout. Cookie deletion and the redirect to the
// public landing page are unconditional: the cookie is the browser's local
// source of truth for "am I trying to be logged in", and the provider-side
// session is revoked best-effort only.
func (h *Handlers) SignOut(c echo.Context) error {
	ctx := c.Request().Context()
	if secret, ok := h.cookies.Read(c); ok {
		if err := h.sessions(secret).DeleteSessions(ctx); err != nil {
			h.logger.Error(ctx, "provider session deletion failed during sign-out", err, nil)
		}
		h.resolver.Invalidate(secret)
	}
	h.cookies.Clear(c)
	return c.Redirect(http.StatusSeeOther, gate.PathHome)
}

// ChangePassword handles POST /account/password. Requires an authenticated
// caller; anonymous attempts are turned away before any mutating provider
// call. The session survives a successful change.
func (h *Handlers) ChangePassword(c echo.Context) error {
	identity := h.resolver.Current(c)
	if identity == nil {
		return c.Redirect(http.StatusSeeOther, gate.PathLogin)
	}

	oldPassword := c.FormValue("old_password")
	newPassword := c.FormValue("new_password")
	confirm := c.FormValue("confirm")

	result := &Result{}
	checkRequired(result, "old_password", oldPassword, "Current password is required.")
	checkNewPassword(result, newPassword, confirm)
	if result.Failed() {
		return c.Render(http.StatusBadRequest, "account",
			pageData{Title: "Your Account", Identity: identity, Result: result})
	}

	ctx := c.Request().Context()
	secret, _ := h.cookies.Read(c)
	if err := h.sessions(secret).UpdatePassword(ctx, newPassword, oldPassword); err != nil {
		msg := "Password change failed. Please try again."
		if provider.IsUnauthorized(err) {
			msg = "Current password is incorrect."
		}
		return c.Render(http.StatusOK, "account",
			pageData{Title: "Your Account", Identity: identity, Result: &Result{Message: msg}})
	}

	h.resolver.Invalidate(secret)
	return c.Render(http.StatusOK, "account", pageData{
		Title:    "Your Account",
		Identity: identity,
		Result:   &Result{Success: true, Message: "Password updated."},
	})
}

// ChangeEmail handles POST /account/email, verified against the current
// password by the provider.
func (h *Handlers) ChangeEmail(c echo.Context) error {
	identity := h.resolver.Current(c)
	if identity == nil {
		return c.Redirect(http.StatusSeeOther, gate.PathLogin)
	}

	newEmail := c.FormValue("email")
	password := c.FormValue("password")

	result := &Result{}
	checkEmail(result, "email", newEmail)
	checkRequired(result, "password", password, "Current password is required.")
	if result.Failed() {
		return c.Render(http.StatusBadRequest, "account",
			pageData{Title: "Your Account", Identity: identity, Result: result})
	}

	ctx := c.Request().Context()
	secret, _ := h.cookies.Read(c)
	if err := h.sessions(secret).UpdateEmail(ctx, newEmail, password); err != nil {
		msg := "Email change failed. Please try again."
		switch {
		case provider.IsUnauthorized(err):
			msg = "Current password is incorrect."
		case provider.IsConflict(err):
			msg = "That email address is already in use."
		}
		return c.Render(http.StatusOK, "account",
			pageData{Title: "Your Account", Identity: identity, Result: &Result{Message: msg}})
	}

	h.resolver.Invalidate(secret)
	// Render with the new address without touching the resolver's copy.
	updated := *identity
	updated.Email = newEmail
	return c.Render(http.StatusOK, "account", pageData{
		Title:    "Your Account",
		Identity: &updated,
		Result:   &Result{Success: true, Message: "Email updated."},
	})
}

// RequestRecovery handles POST /auth/forgot-password. Only malformed input
// surfaces distinctly; existing addresses, unknown addresses and provider
// failures all produce the same generic message.
func (h *Handlers) RequestRecovery(c echo.Context) error {
	email := c.FormValue("email")

	result := &Result{}
	checkEmail(result, "email", email)
	if result.Failed() {
		return c.Render(http.StatusBadRequest, "forgot_password",
			pageData{Title: "Forgot Password", Result: result})
	}

	ctx := c.Request().Context()
	recoveryURL := h.cfg.RecoveryBaseURL + gate.PathResetPassword
	if err := h.admin().CreateRecovery(ctx, email, recoveryURL); err != nil {
		h.logger.Warn(ctx, "recovery request failed", map[string]any{"error": err.Error()})
	}

	return c.Render(http.StatusOK, "forgot_password", pageData{
		Title:  "Forgot Password",
		Result: &Result{Success: true, Message: genericRecoveryMessage},
	})
}

// ConsumeRecovery handles POST /auth/reset-password. The recovery link's
// secret and userId travel through the form; either one missing rejects the
// request before any provider call. Success does not sign the visitor in.
func (h *Handlers) ConsumeRecovery(c echo.Context) error {
	secret := c.FormValue("secret")
	userID := c.FormValue("userId")
	if secret == "" || userID == "" {
		return c.Render(http.StatusBadRequest, "reset_password",
			pageData{Title: "Reset Password", InvalidLink: true})
	}

	password := c.FormValue("password")
	confirm := c.FormValue("confirm")
	result := &Result{}
	checkNewPassword(result, password, confirm)
	if result.Failed() {
		return c.Render(http.StatusBadRequest, "reset_password",
			pageData{Title: "Reset Password", Result: result, Secret: secret, UserID: userID})
	}

	ctx := c.Request().Context()
	if err := h.admin().ConsumeRecovery(ctx, userID, secret, password); err != nil {
		h.logger.Warn(ctx, "recovery consumption rejected", map[string]any{"error": err.Error()})
		return c.Render(http.StatusOK, "reset_password", pageData{
			Title:  "Reset Password",
			Result: &Result{Message: "This recovery link is invalid or has expired."},
			Secret: secret,
			UserID: userID,
		})
	}

	return c.Render(http.StatusOK, "reset_password", pageData{
		Title:  "Reset Password",
		Result: &Result{Success: true, Message: "Password updated. You can now sign in."},
	})
}
