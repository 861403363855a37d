package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.pilab.hu/portal/gate"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		path string
		want gate.Class
	}{
		{"/", gate.ClassPublic},
		{"/about", gate.ClassPublic},
		{"/account", gate.ClassProtected},
		{"/account/settings", gate.ClassProtected},
		{"/accounting", gate.ClassPublic}, // prefix match is segment-aware
		{"/auth/login", gate.ClassAuth},
		{"/auth/register", gate.ClassAuth},
		{"/auth/forgot-password", gate.ClassAuth},
		{"/auth/reset-password", gate.ClassAuth},
		{"/auth/unknown", gate.ClassPublic},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, gate.Classify(tc.path), "path %s", tc.path)
	}
}

func TestClassify_TotalAndDisjoint(t *testing.T) {
	// Classify is a pure function returning exactly one class; spot-check
	// that every route the server registers lands somewhere sensible.
	paths := []string{
		"/", "/account", "/account/password", "/account/email",
		"/auth/login", "/auth/register", "/auth/forgot-password",
		"/auth/reset-password", "/auth/logout", "/anything/else",
	}
	for _, p := range paths {
		class := gate.Classify(p)
		assert.Contains(t, []gate.Class{gate.ClassPublic, gate.ClassProtected, gate.ClassAuth}, class)
	}
}

func TestExcluded(t *testing.T) {
	assert.True(t, gate.Excluded("/static/app.css"))
	assert.True(t, gate.Excluded("/favicon.ico"))
	assert.True(t, gate.Excluded("/healthz"))
	assert.False(t, gate.Excluded("/account"))
	assert.False(t, gate.Excluded("/"))
}
