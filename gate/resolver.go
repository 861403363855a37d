package gate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"go.pilab.hu/portal/provider"
	"go.pilab.hu/portal/session"
)

// identityTTL is the staleness window for the resolver's identity cache. It
// only spares redundant provider round-trips within one browsing burst; it is
// not an authority, and mutations invalidate it.
const identityTTL = 30 * time.Second

// SessionFactory builds a request-scoped session handle from a cookie secret.
type SessionFactory func(secret string) provider.AccountAPI

// ProviderSessions is the production SessionFactory.
func ProviderSessions(cfg provider.Config) SessionFactory {
	return func(secret string) provider.AccountAPI {
		return provider.NewSessionClient(cfg, secret)
	}
}

// Resolver is the authoritative gate: it exchanges the session cookie for a
// live Identity. Every failure mode (no cookie, expired or revoked session,
// provider unreachable) uniformly resolves to nil, so page logic never learns
// provider-internal error states and absence of proof always reads as
// unauthenticated.
type Resolver struct {
	cookies  *session.Store
	sessions SessionFactory
	cache    *ttlcache.Cache[string, *provider.Identity]
}

// NewResolver creates the authoritative gate over the given cookie store and
// session-handle factory.
func NewResolver(cookies *session.Store, sessions SessionFactory) *Resolver {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *provider.Identity](identityTTL),
		ttlcache.WithDisableTouchOnHit[string, *provider.Identity](),
	)
	go cache.Start()

	return &Resolver{
		cookies:  cookies,
		sessions: sessions,
		cache:    cache,
	}
}

// Current resolves the request's session cookie into an Identity, or nil for
// anonymous. nil is a result, not an error.
func (r *Resolver) Current(c echo.Context) *provider.Identity {
	secret, ok := r.cookies.Read(c)
	if !ok {
		return nil
	}
	return r.Resolve(c.Request().Context(), secret)
}

// Resolve looks up the identity behind one session secret, consulting the
// staleness cache first. Failures are logged at debug level only; callers see
// nil.
func (r *Resolver) Resolve(ctx context.Context, secret string) *provider.Identity {
	key := hashSecret(secret)
	if item := r.cache.Get(key); item != nil {
		return item.Value()
	}

	identity, err := r.sessions(secret).GetIdentity(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("session did not resolve to an identity")
		return nil
	}

	r.cache.Set(key, identity, ttlcache.DefaultTTL)
	return identity
}

// Invalidate drops the cached identity for a secret. Sign-out and identity
// mutations call it so the next resolve re-fetches.
func (r *Resolver) Invalidate(secret string) {
	r.cache.Delete(hashSecret(secret))
}

// hashSecret keys the cache by a digest so the raw session secret never sits
// in cache memory.
func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
