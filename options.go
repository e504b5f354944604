package coursegate

import (
	"time"

	"github.com/cccteam/coursegate/guard"
	"github.com/cccteam/coursegate/internal/basesession"
	"github.com/cccteam/coursegate/internal/cookie"
	"github.com/cccteam/coursegate/internal/oidc"
	"github.com/cccteam/coursegate/policy"
)

// Option defines the interface for functional options used when creating a new OIDC.
type Option interface {
	isOption()
}

// CookieOption defines a function signature for setting cookie client options.
type CookieOption func(*cookie.Client)

func (CookieOption) isOption() {}

// WithCookieName sets the cookie name for the session cookie.
func WithCookieName(name string) CookieOption {
	return CookieOption(cookie.WithCookieName(name))
}

// WithCookieDomain sets the domain for the session cookie.
func WithCookieDomain(domain string) CookieOption {
	return CookieOption(cookie.WithCookieDomain(domain))
}

// BaseSessionOption defines a function signature for setting session options.
type BaseSessionOption func(*basesession.BaseSession)

func (BaseSessionOption) isOption() {}

// WithLogHandler sets the LogHandler. (default: httpio.Log)
func WithLogHandler(l LogHandler) BaseSessionOption {
	return BaseSessionOption(func(b *basesession.BaseSession) {
		b.Handle = basesession.LogHandler(l)
	})
}

// WithSessionTimeout sets the session idle timeout. (default: 10m)
func WithSessionTimeout(d time.Duration) BaseSessionOption {
	return BaseSessionOption(func(b *basesession.BaseSession) {
		b.SessionTimeout = d
	})
}

// OIDCOption defines a function signature for setting identity provider options.
type OIDCOption func(oidc.Authenticator)

func (OIDCOption) isOption() {}

// WithLoginURL sets the URL failed sign-ins are redirected to. (default: /auth/login)
func WithLoginURL(loginURL string) OIDCOption {
	return OIDCOption(func(o oidc.Authenticator) {
		o.SetLoginURL(loginURL)
	})
}

// WithRoleClaim sets the dotted path of the ID token claim holding the role metadata.
// (default: public_metadata.role)
func WithRoleClaim(path string) OIDCOption {
	return OIDCOption(func(o oidc.Authenticator) {
		o.SetRoleClaim(path)
	})
}

// GuardOption defines a function signature for setting guarded view options.
type GuardOption func(*OIDC)

func (GuardOption) isOption() {}

// WithPolicy sets the route policy of the guarded views. (default: no routes, landing
// /dashboard, sign-in /auth/login)
func WithPolicy(p *policy.Policy) GuardOption {
	return GuardOption(func(o *OIDC) {
		o.policy = p
	})
}

// WithGuardOptions passes options through to the Guard.
func WithGuardOptions(opts ...guard.Option) GuardOption {
	return GuardOption(func(o *OIDC) {
		o.guardOpts = append(o.guardOpts, opts...)
	})
}
