//go:build skipAuth

// Package oidc implements an OIDC Authenticator where authentication is skipped for
// development by using the skipAuth build tag. The signed in user and role metadata
// come from COURSEGATE_DEV_USERNAME and COURSEGATE_DEV_ROLE.
package oidc

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/cccteam/coursegate/internal/cookie"
	"github.com/go-playground/errors/v5"
	"github.com/gofrs/uuid"
)

var _ Authenticator = &OIDC{}

const defaultLoginURL = "/auth/login"

// OIDC implements the Authenticator interface without contacting an identity provider.
type OIDC struct {
	cookieHandler cookie.Handler
	redirectURL   string
	loginURL      string
}

// New returns a new OIDC Authenticator
func New(cookieHandler cookie.Handler, _, _, _, redirectURL string) *OIDC {
	return &OIDC{
		cookieHandler: cookieHandler,
		redirectURL:   redirectURL,
	}
}

// SetRoleClaim is a no-op; the role metadata comes from COURSEGATE_DEV_ROLE.
func (o *OIDC) SetRoleClaim(string) {}

// Ready always reports true.
func (o *OIDC) Ready() bool { return true }

// Warm returns immediately.
func (o *OIDC) Warm(context.Context, time.Duration) error { return nil }

// SetLoginURL sets the URL to redirect to when an error occurs during the OIDC authentication process
func (o *OIDC) SetLoginURL(url string) {
	o.loginURL = url
}

// LoginURL returns the URL to redirect to when an error occurs during the OIDC authentication process
func (o *OIDC) LoginURL() string {
	if o.loginURL == "" {
		return defaultLoginURL
	}

	return o.loginURL
}

// AuthCodeURL stores the return URL and sends the browser straight to the callback.
func (o *OIDC) AuthCodeURL(_ context.Context, w http.ResponseWriter, returnURL string) (string, error) {
	if err := o.cookieHandler.WriteOIDCCookie(w, cookie.Values{cookie.ReturnURL: returnURL}); err != nil {
		return "", errors.Wrap(err, "cookie.Handler.WriteOIDCCookie()")
	}

	return o.redirectURL, nil
}

// Verify returns the simulated Identity.
func (o *OIDC) Verify(_ context.Context, w http.ResponseWriter, r *http.Request) (*Identity, error) {
	cval, ok := o.cookieHandler.ReadOIDCCookie(r)
	if !ok {
		return nil, errors.New("No OIDC cookie")
	}
	o.cookieHandler.DeleteOIDCCookie(w)

	returnURL := localReturnURL(cval[cookie.ReturnURL])

	sid, err := uuid.NewV4()
	if err != nil {
		return nil, errors.Wrap(err, "uuid.NewV4()")
	}

	var roleMetadata any
	if v, ok := os.LookupEnv("COURSEGATE_DEV_ROLE"); ok {
		roleMetadata = v
	}

	return &Identity{
		Username:     os.Getenv("COURSEGATE_DEV_USERNAME"),
		SID:          sid.String(),
		RoleMetadata: roleMetadata,
		ReturnURL:    returnURL,
	}, nil
}
