// Package gate decides who gets where. It carries two deliberately separate
// layers: the edge gate, a cheap cookie-presence check run on every request,
// and the authoritative gate, which resolves the cookie into a live identity
// through the provider before any privileged content is rendered. The edge
// gate is defense in depth; the authoritative gate is the trust boundary.
package gate

import "strings"

// Class partitions the route surface. Every non-excluded path maps to exactly
// one class.
type Class int

const (
	// ClassPublic paths carry no session constraint.
	ClassPublic Class = iota
	// ClassProtected paths require a session.
	ClassProtected
	// ClassAuth paths (login, register, recovery) are for anonymous visitors;
	// a present session cookie redirects away from them.
	ClassAuth
)

// Well-known navigation targets.
const (
	PathHome           = "/"
	PathLogin          = "/auth/login"
	PathRegister       = "/auth/register"
	PathForgotPassword = "/auth/forgot-password"
	PathResetPassword  = "/auth/reset-password"
	PathAccount        = "/account"
)

var protectedPrefixes = []string{
	PathAccount,
}

var authPaths = map[string]struct{}{
	PathLogin:          {},
	PathRegister:       {},
	PathForgotPassword: {},
	PathResetPassword:  {},
}

var excludedPrefixes = []string{
	"/static/",
	"/favicon.ico",
	"/healthz",
}

// Excluded reports whether path is outside the gated surface entirely
// (static assets, liveness).
func Excluded(path string) bool {
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Classify maps a request path to its route class. Protected prefixes win
// over auth paths; everything else is public.
func Classify(path string) Class {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return ClassProtected
		}
	}
	if _, ok := authPaths[path]; ok {
		return ClassAuth
	}
	return ClassPublic
}
