// Package web serves the portal's pages and form endpoints. Page handlers run
// behind the edge gate but trust only the authoritative gate: privileged
// content renders solely from an identity the resolver actually fetched.
package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"go.pilab.hu/portal/config"
	"go.pilab.hu/portal/gate"
	"go.pilab.hu/portal/log"
	"go.pilab.hu/portal/provider"
	"go.pilab.hu/portal/session"
)

// AdminFactory builds a request-scoped admin handle.
type AdminFactory func() provider.AccountAPI

// ProviderAdmin is the production AdminFactory.
func ProviderAdmin(cfg provider.Config) AdminFactory {
	return func() provider.AccountAPI {
		return provider.NewAdminClient(cfg)
	}
}

// Handlers holds the portal's HTTP handlers and their collaborators.
type Handlers struct {
	cfg      *config.Config
	cookies  *session.Store
	resolver *gate.Resolver
	admin    AdminFactory
	sessions gate.SessionFactory
	logger   log.Logger
}

// NewHandlers wires the page and auth-operation handlers.
func NewHandlers(
	cfg *config.Config,
	cookies *session.Store,
	resolver *gate.Resolver,
	admin AdminFactory,
	sessions gate.SessionFactory,
	logger log.Logger,
) *Handlers {
	return &Handlers{
		cfg:      cfg,
		cookies:  cookies,
		resolver: resolver,
		admin:    admin,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes registers every route of the portal's surface.
func (h *Handlers) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.HomePage)
	e.GET("/healthz", h.Healthz)
	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	e.GET(gate.PathLogin, h.LoginPage)
	e.POST(gate.PathLogin, h.SignIn)
	e.GET(gate.PathRegister, h.RegisterPage)
	e.POST(gate.PathRegister, h.SignUp)
	e.GET(gate.PathForgotPassword, h.ForgotPasswordPage)
	e.POST(gate.PathForgotPassword, h.RequestRecovery)
	e.GET(gate.PathResetPassword, h.ResetPasswordPage)
	e.POST(gate.PathResetPassword, h.ConsumeRecovery)
	e.POST("/auth/logout", h.SignOut)

	e.GET(gate.PathAccount, h.AccountPage)
	e.POST(gate.PathAccount+"/password", h.ChangePassword)
	e.POST(gate.PathAccount+"/email", h.ChangeEmail)
}

// pageData is the shared template payload.
type pageData struct {
	Title    string
	Identity *provider.Identity
	Result   *Result
	Form     map[string]string
	// Recovery link parameters carried through the reset form.
	Secret      string
	UserID      string
	InvalidLink bool
}

// Healthz is the liveness endpoint, excluded from gating.
func (h *Handlers) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// HomePage renders the public landing page; authenticated visitors are sent
// to the account page instead.
func (h *Handlers) HomePage(c echo.Context) error {
	if identity := h.resolver.Current(c); identity != nil {
		return c.Redirect(http.StatusFound, gate.PathAccount)
	}
	return c.Render(http.StatusOK, "home", pageData{Title: "Welcome"})
}

// AccountPage renders the protected account overview. The edge gate already
// filtered cookie-less requests; this handler still re-checks through the
// authoritative gate, which is the only decision privileged rendering trusts.
func (h *Handlers) AccountPage(c echo.Context) error {
	identity := h.resolver.Current(c)
	if identity == nil {
		return c.Redirect(http.StatusFound, gate.PathLogin)
	}
	return c.Render(http.StatusOK, "account", pageData{Title: "Your Account", Identity: identity})
}

// LoginPage renders the sign-in form.
func (h *Handlers) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", pageData{Title: "Sign In"})
}

// RegisterPage renders the sign-up form.
func (h *Handlers) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", pageData{Title: "Create Account"})
}

// ForgotPasswordPage renders the recovery-request form.
func (h *Handlers) ForgotPasswordPage(c echo.Context) error {
	return c.Render(http.StatusOK, "forgot_password", pageData{Title: "Forgot Password"})
}

// ResetPasswordPage renders the password-reset form reached from a recovery
// link. Both link parameters must be present; otherwise a static invalid-link
// message replaces the form and the provider is never involved.
func (h *Handlers) ResetPasswordPage(c echo.Context) error {
	secret := c.QueryParam("secret")
	userID := c.QueryParam("userId")
	if secret == "" || userID == "" {
		return c.Render(http.StatusOK, "reset_password", pageData{Title: "Reset Password", InvalidLink: true})
	}
	return c.Render(http.StatusOK, "reset_password", pageData{
		Title:  "Reset Password",
		Secret: secret,
		UserID: userID,
	})
}
