package web

import (
	"net/mail"
	"strings"
)

// minPasswordLength mirrors the provider's own minimum so obviously bad input
// never leaves the portal.
const minPasswordLength = 8

// Result is what an auth operation hands back to the template layer: a single
// outcome value instead of an error chain. Message carries provider
// rejections; FieldErrors carry input validation caught before any provider
// call.
type Result struct {
	Success     bool
	Message     string
	FieldErrors map[string]string
}

func (r *Result) fail(field, msg string) {
	if r.FieldErrors == nil {
		r.FieldErrors = map[string]string{}
	}
	r.FieldErrors[field] = msg
}

// Failed reports whether any field validation failed.
func (r *Result) Failed() bool { return len(r.FieldErrors) > 0 }

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func checkEmail(r *Result, field, email string) {
	if strings.TrimSpace(email) == "" {
		r.fail(field, "Email is required.")
		return
	}
	if !validEmail(email) {
		r.fail(field, "Enter a valid email address.")
	}
}

func checkNewPassword(r *Result, password, confirm string) {
	if len(password) < minPasswordLength {
		r.fail("password", "Password must be at least 8 characters.")
		return
	}
	if password != confirm {
		r.fail("confirm", "Passwords do not match.")
	}
}

func checkRequired(r *Result, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		r.fail(field, msg)
	}
}
