// Package guard renders access decisions over HTTP.
//
// A Guard wraps handlers of guarded views: while the session is not loaded it serves a
// loading response, when access is granted it serves the view, and when access is denied
// it redirects either to sign-in or to the landing view. The wrapped handler never runs
// for a pending or denied navigation.
package guard

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cccteam/coursegate/access"
	"github.com/cccteam/coursegate/identity"
	"github.com/cccteam/coursegate/policy"
	"github.com/cccteam/coursegate/role"
	"github.com/cccteam/httpio"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/coursegate/guard"

// ReturnURLParam is the sign-in query parameter carrying the requested location.
const ReturnURLParam = "returnUrl"

// LogHandler defines the handler signature required for handling logs.
type LogHandler func(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc

// Resolver reports the Session of a request.
type Resolver interface {
	Resolve(r *http.Request) access.Session
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(r *http.Request) access.Session

// Resolve calls f(r).
func (f ResolverFunc) Resolve(r *http.Request) access.Session {
	return f(r)
}

// Guard binds guarded views to their capability sets.
type Guard struct {
	resolver Resolver
	hub      *identity.Hub
	policy   *policy.Policy
	matcher  *chi.Mux
	notifier access.Notifier
	loading  http.Handler
	handle   LogHandler
}

// New returns a Guard evaluating requests with resolver against p. A nil p guards no
// routes and redirects to the default views. hub provides the Session updates for Watch
// and may be nil when Watch is not served.
func New(resolver Resolver, hub *identity.Hub, p *policy.Policy, options ...Option) *Guard {
	if p == nil {
		p = policy.Default()
	}

	g := &Guard{
		resolver: resolver,
		hub:      hub,
		policy:   p,
		matcher:  chi.NewRouter(),
		loading:  http.HandlerFunc(Loading),
		handle:   httpio.Log,
	}
	for _, opt := range options {
		opt(g)
	}

	for _, route := range p.Routes {
		g.matcher.Get(route.Path, func(http.ResponseWriter, *http.Request) {})
	}

	return g
}

// Loading is the default response for a pending navigation.
func Loading(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Retry-After", "1")
	w.Header().Set("Cache-Control", "no-store")
	http.Error(w, "loading", http.StatusServiceUnavailable)
}

// Require returns middleware that admits a request only when its principal holds one of
// the allowed roles.
func (g *Guard) Require(allowed role.Set) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := otel.Tracer(name).Start(r.Context(), "Guard.Require()")
			defer span.End()

			r = r.WithContext(withResponseWriter(ctx, w))
			nav := access.NewNavigation(allowed, g.notifier)
			o := nav.Evaluate(r.Context(), g.resolver.Resolve(r))

			switch o.State {
			case access.AwaitingSession:
				g.loading.ServeHTTP(w, r)
			case access.Unauthenticated:
				http.Redirect(w, r, g.signInURL(r.URL.RequestURI()), http.StatusSeeOther)
			case access.Unauthorized:
				http.Redirect(w, r, g.policy.Landing, http.StatusSeeOther)
			case access.Authorized:
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

// Mount registers h for every route of the policy, each guarded by its own capability set.
func (g *Guard) Mount(r chi.Router, h http.Handler) {
	for _, route := range g.policy.Routes {
		r.With(g.Require(route.Allowed)).Get(route.Path, h.ServeHTTP)
	}
}

func (g *Guard) signInURL(returnURL string) string {
	u, err := url.Parse(g.policy.SignIn)
	if err != nil {
		u = &url.URL{Path: g.policy.SignIn}
	}

	q := u.Query()
	q.Set(ReturnURLParam, returnURL)
	u.RawQuery = q.Encode()

	return u.String()
}

// redirect returns the location a denied Outcome sends the navigation to.
func (g *Guard) redirect(o access.Outcome, path string) string {
	switch o.State {
	case access.Unauthenticated:
		return g.signInURL(path)
	case access.Unauthorized:
		return g.policy.Landing
	default:
		return ""
	}
}

type ctxKey string

const responseWriterKey ctxKey = "responseWriter"

func withResponseWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, responseWriterKey, w)
}

func responseWriterFromCtx(ctx context.Context) (http.ResponseWriter, bool) {
	w, ok := ctx.Value(responseWriterKey).(http.ResponseWriter)

	return w, ok
}
