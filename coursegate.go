// Package coursegate wires OIDC sign-in, persisted sessions and role guarded views
// together for the course application.
package coursegate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/coursegate/access"
	"github.com/cccteam/coursegate/guard"
	"github.com/cccteam/coursegate/identity"
	"github.com/cccteam/coursegate/internal/basesession"
	"github.com/cccteam/coursegate/internal/cookie"
	"github.com/cccteam/coursegate/internal/oidc"
	"github.com/cccteam/coursegate/policy"
	"github.com/cccteam/coursegate/sessionstorage"
	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/coursegate"

var defaultSessionTimeout = time.Minute * 10

// LogHandler defines the handler signature required for handling logs.
type LogHandler func(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc

var _ OIDCHandlers = &OIDC{}

// OIDC implements the OIDCHandlers interface for OIDC sign-in with role guarded views.
type OIDC struct {
	oidc        oidc.Authenticator
	storage     sessionstorage.OIDCStore
	baseSession *basesession.BaseSession
	hub         *identity.Hub
	policy      *policy.Policy
	guardOpts   []guard.Option
	guard       *guard.Guard
}

// NewOIDC creates a new OIDC.
// cookieKey: A Base64-encoded string representing at least 96 bytes
// of cryptographically secure random data.
//
// Guarded views stay pending until Warm completes.
func NewOIDC(
	storage sessionstorage.OIDCStore,
	cookieKey string,
	issuerURL, clientID, clientSecret, redirectURL string,
	options ...Option,
) (*OIDC, error) {
	var cookieOpts []cookie.Option
	for _, opt := range options {
		if o, ok := opt.(CookieOption); ok {
			cookieOpts = append(cookieOpts, cookie.Option(o))
		}
	}

	cookieClient, err := cookie.NewCookieClient(cookieKey, cookieOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "cookie.NewCookieClient()")
	}

	o := &OIDC{
		oidc:    oidc.New(cookieClient, issuerURL, clientID, clientSecret, redirectURL),
		storage: storage,
		hub:     identity.NewHub(),
		baseSession: &basesession.BaseSession{
			Handle:         httpio.Log,
			CookieHandler:  cookieClient,
			SessionTimeout: defaultSessionTimeout,
			Storage:        storage,
		},
	}

	for _, opt := range options {
		switch opt := opt.(type) {
		case BaseSessionOption:
			opt(o.baseSession)
		case OIDCOption:
			opt(o.oidc)
		case GuardOption:
			opt(o)
		}
	}

	o.baseSession.Hub = o.hub
	o.guard = o.newGuard()

	return o, nil
}

// GenerateCookieKey returns a random cookie key suitable for NewOIDC.
func GenerateCookieKey() (string, error) {
	key, err := cookie.GenerateKey()
	if err != nil {
		return "", errors.Wrap(err, "cookie.GenerateKey()")
	}

	return key, nil
}

func (o *OIDC) newGuard() *guard.Guard {
	opts := []guard.Option{
		guard.WithLogHandler(guard.LogHandler(o.baseSession.Handle)),
		guard.WithNotifier(guard.MultiNotifier(guard.CookieNotifier(o.baseSession.CookieHandler), guard.LogNotifier())),
	}

	return guard.New(o.baseSession, o.hub, o.policy, append(opts, o.guardOpts...)...)
}

// Guard returns the Guard for the views of the configured policy.
func (o *OIDC) Guard() *guard.Guard {
	return o.guard
}

// Hub returns the Hub pushing load, sign-in and sign-out events to watchers.
func (o *OIDC) Hub() *identity.Hub {
	return o.hub
}

// Warm discovers the identity provider, retrying every interval until it succeeds or ctx
// ends. On success pending navigations are released.
func (o *OIDC) Warm(ctx context.Context, interval time.Duration) error {
	if err := o.oidc.Warm(ctx, interval); err != nil {
		return errors.Wrap(err, "oidc.Authenticator.Warm()")
	}

	o.hub.MarkLoaded()
	logger.Ctx(ctx).Infof("identity provider ready")

	return nil
}

// Authenticated is the handler reports if the session is authenticated
func (o *OIDC) Authenticated() http.HandlerFunc {
	return o.baseSession.Authenticated()
}

// Logout destroys the current session
func (o *OIDC) Logout() http.HandlerFunc {
	return o.baseSession.Logout()
}

// SetXSRFToken sets the XSRF Token
func (o *OIDC) SetXSRFToken(next http.Handler) http.Handler {
	return o.baseSession.SetXSRFToken(next)
}

// StartSession initializes a session by restoring it from a cookie, or if that fails, initializing
// a new session. The session cookie is then updated and the sessionID is inserted into the context.
func (o *OIDC) StartSession(next http.Handler) http.Handler {
	return o.baseSession.StartSession(next)
}

// ValidateSession checks the sessionID in the database to validate that it has not expired and updates
// the last activity timestamp if it is still valid. Requests without a valid session continue signed out.
// StartSession handler must be called before calling ValidateSession
func (o *OIDC) ValidateSession(next http.Handler) http.Handler {
	return o.baseSession.ValidateSession(next)
}

// ValidateXSRFToken validates the XSRF Token
func (o *OIDC) ValidateXSRFToken(next http.Handler) http.Handler {
	return o.baseSession.ValidateXSRFToken(next)
}

// Resolve returns the access.Session of the request. ValidateSession must run first for
// the request to be signed in.
func (o *OIDC) Resolve(r *http.Request) access.Session {
	return o.baseSession.Resolve(r)
}

// Notice is the handler returning and clearing the pending access notice
func (o *OIDC) Notice() http.HandlerFunc {
	return o.guard.Notice(o.baseSession.CookieHandler)
}

// Login initiates the OIDC login flow by redirecting the user to the authorization URL.
func (o *OIDC) Login() http.HandlerFunc {
	return o.baseSession.Handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "OIDC.Login()")
		defer span.End()

		returnURL := r.URL.Query().Get(guard.ReturnURLParam)
		authCodeURL, err := o.oidc.AuthCodeURL(ctx, w, returnURL)
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		http.Redirect(w, r, authCodeURL, http.StatusFound)

		return nil
	})
}

// CallbackOIDC is the handler for the callback from the OIDC auth provider
func (o *OIDC) CallbackOIDC() http.HandlerFunc {
	return o.baseSession.Handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "OIDC.CallbackOIDC()")
		defer span.End()

		ident, err := o.oidc.Verify(ctx, w, r)
		if err != nil {
			http.Redirect(w, r, o.loginURLWithMessage(httpio.Message(err)), http.StatusFound)

			return errors.Wrap(err, "oidc.Authenticator.Verify()")
		}

		// user is successfully authenticated, start a new session
		sessionID, err := o.startNewSession(ctx, w, ident)
		if err != nil {
			http.Redirect(w, r, o.loginURLWithMessage("Internal Server Error"), http.StatusFound)

			return errors.Wrap(err, "OIDC.startNewSession()")
		}

		// Log the association between the sessionID and Username
		logger.Ctx(ctx).AddRequestAttribute("username", ident.Username)
		logger.Ctx(ctx).AddRequestAttribute(string(cookie.SessionID), sessionID.String())

		o.hub.SignedIn(ident.Username, ident.RoleMetadata)

		http.Redirect(w, r, ident.ReturnURL, http.StatusFound)

		return nil
	})
}

// FrontChannelLogout is a handler which destroys the sessions of a user for a logout request initiated by the OIDC provider
func (o *OIDC) FrontChannelLogout() http.HandlerFunc {
	return o.baseSession.Handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "OIDC.FrontChannelLogout()")
		defer span.End()

		sid := r.URL.Query().Get("sid")
		if sid == "" {
			return httpio.NewEncoder(w).ClientMessage(ctx, httpio.NewBadRequestMessage("missing sid query parameter"))
		}

		username, err := o.storage.DestroySessionOIDC(ctx, sid)
		if err != nil {
			logger.Req(r).Error(errors.Wrap(err, "sessionstorage.OIDCStore.DestroySessionOIDC()"))
		}
		o.hub.SignedOut(username)

		return httpio.NewEncoder(w).Ok(nil)
	})
}

// startNewSession starts a new session for the verified identity and returns the session ID
func (o *OIDC) startNewSession(ctx context.Context, w http.ResponseWriter, ident *oidc.Identity) (ccc.UUID, error) {
	// Create new Session in database
	id, err := o.storage.NewSession(ctx, ident.Username, ident.SID, ident.RoleMetadata)
	if err != nil {
		return ccc.NilUUID, errors.Wrap(err, "sessionstorage.OIDCStore.NewSession()")
	}

	// SameSite=None until StartSession upgrades it, so the cookie survives the provider redirect
	if _, err := o.baseSession.CookieHandler.NewAuthCookie(w, false, id); err != nil {
		return ccc.NilUUID, errors.Wrap(err, "cookie.Handler.NewAuthCookie()")
	}

	// write new XSRF Token Cookie to match the new SessionID
	if err := o.baseSession.CookieHandler.CreateXSRFTokenCookie(w, id); err != nil {
		return ccc.NilUUID, errors.Wrap(err, "cookie.Handler.CreateXSRFTokenCookie()")
	}

	return id, nil
}

func (o *OIDC) loginURLWithMessage(message string) string {
	return fmt.Sprintf("%s?message=%s", o.oidc.LoginURL(), url.QueryEscape(message))
}
