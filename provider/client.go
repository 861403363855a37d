// Package provider is the REST client for the external identity provider: the
// service that owns credential storage, session validity and recovery tokens.
// The portal talks to it through two narrow handles. The admin handle (project
// + API key) may create accounts and sessions and consume recovery tokens; the
// session handle (project + one session secret) acts as the already
// authenticated identity behind that secret.
//
// Handles are request scoped: callers build one per request from configuration
// and the current request's cookie. No package-level client survives across
// requests.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"go.pilab.hu/portal/tracing"
)

// Header names the provider expects on every request.
const (
	headerProject = "X-Account-Project"
	headerKey     = "X-Account-Key"
	headerSession = "X-Account-Session"
)

const defaultTimeout = 10 * time.Second

// Config holds the provider connection settings (spec'd per environment).
type Config struct {
	Endpoint  string // e.g. "https://accounts.example.com/v1"
	ProjectID string
	APIKey    string // admin handle only
}

// Client is one handle to the provider. Whether it is an admin or a session
// handle only changes the headers it sends.
type Client struct {
	endpoint string
	project  string
	key      string
	session  string
	httpc    *http.Client
}

// NewAdminClient builds the privileged handle. It can create accounts and
// sessions and perform recovery updates, but cannot answer "who am I".
func NewAdminClient(cfg Config) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		project:  cfg.ProjectID,
		key:      cfg.APIKey,
		httpc:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewSessionClient builds a handle acting as the identity behind secret. The
// secret may be empty (no cookie on the request); session operations then fail
// with ErrNoSession before any network call.
func NewSessionClient(cfg Config, secret string) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		project:  cfg.ProjectID,
		session:  secret,
		httpc:    &http.Client{Timeout: defaultTimeout},
	}
}

// do performs one provider exchange: encode body, send, decode out or the
// provider's error envelope. op names the span.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	ctx, span := tracing.Tracer.Start(ctx, "provider."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("provider.operation", op),
		attribute.String("http.method", method),
	)

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, payload)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerProject, c.project)
	if c.key != "" {
		req.Header.Set(headerKey, c.key)
	}
	if c.session != "" {
		req.Header.Set(headerSession, c.session)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider unreachable")
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		perr := &Error{Code: resp.StatusCode, Type: "general_error", Message: "provider request failed"}
		// Best effort: the provider's JSON envelope, when present, replaces
		// the synthesized one.
		_ = json.NewDecoder(resp.Body).Decode(perr)
		if perr.Code == 0 {
			perr.Code = resp.StatusCode
		}
		span.SetStatus(codes.Error, perr.Type)
		return perr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", op, err)
		}
	}
	return nil
}
