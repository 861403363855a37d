package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.pilab.hu/portal/session"
)

func newContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestStore_DefaultName(t *testing.T) {
	assert.Equal(t, "_session", session.NewStore("").Name())
	assert.Equal(t, "portal_session", session.NewStore("portal_session").Name())
}

func TestStore_WriteSetsTransportConstraints(t *testing.T) {
	c, rec := newContext(t)
	store := session.NewStore("_session")

	store.Write(c, "opaque-token")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "_session", cookie.Name)
	assert.Equal(t, "opaque-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestStore_ReadPresenceOnly(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "_session", Value: "opaque-token"})
	c := e.NewContext(req, httptest.NewRecorder())

	secret, ok := session.NewStore("_session").Read(c)
	assert.True(t, ok)
	assert.Equal(t, "opaque-token", secret)

	// Absent and empty cookies both read as no credential.
	c2, _ := newContext(t)
	_, ok = session.NewStore("_session").Read(c2)
	assert.False(t, ok)

	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.AddCookie(&http.Cookie{Name: "_session", Value: ""})
	c3 := e.NewContext(req3, httptest.NewRecorder())
	_, ok = session.NewStore("_session").Read(c3)
	assert.False(t, ok)
}

func TestStore_ClearExpiresCookie(t *testing.T) {
	c, rec := newContext(t)
	store := session.NewStore("_session")

	store.Clear(c)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
