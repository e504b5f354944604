//go:build !skipAuth

// Package oidc implements the OIDC Authorization Code Flow with PKCE (Proof Key for Code Exchange).
package oidc

import (
	"context"
	"net/http"

	"github.com/cccteam/coursegate/internal/cookie"
	"github.com/cccteam/coursegate/internal/oidc/loader"
	"github.com/cccteam/httpio"
	"github.com/go-playground/errors/v5"
	"github.com/gofrs/uuid"
	"golang.org/x/oauth2"
)

var _ Authenticator = &OIDC{}

// OIDC implements the Authenticator interface for OpenID Connect authentication.
type OIDC struct {
	cookieHandler cookie.Handler
	roleClaim     []string
	loader.Loader
}

// New returns a new OIDC Authenticator
func New(cookieHandler cookie.Handler, issuerURL, clientID, clientSecret, redirectURL string) *OIDC {
	return &OIDC{
		cookieHandler: cookieHandler,
		roleClaim:     splitClaimPath(DefaultRoleClaim),
		Loader:        loader.New(issuerURL, clientID, clientSecret, redirectURL),
	}
}

// SetRoleClaim sets the dotted path of the ID Token claim holding the role metadata.
func (o *OIDC) SetRoleClaim(path string) {
	o.roleClaim = splitClaimPath(path)
}

// AuthCodeURL returns the URL to redirect to in order to initiate the OIDC authentication process
func (o *OIDC) AuthCodeURL(ctx context.Context, w http.ResponseWriter, returnURL string) (string, error) {
	provider, err := o.Provider(ctx)
	if err != nil {
		return "", errors.Wrap(err, "loader.Loader.Provider()")
	}

	// Using PKCE (Proof Key for Code Exchange) to protect against authorization code interception attacks
	pkceVerifier := oauth2.GenerateVerifier()

	// Use a random string as the state to protect against CSRF attacks
	state, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "uuid.NewV4()")
	}

	cval := cookie.Values{
		cookie.OIDCState:        state.String(),
		cookie.OIDCPkceVerifier: pkceVerifier,
		cookie.ReturnURL:        returnURL,
	}

	if err := o.cookieHandler.WriteOIDCCookie(w, cval); err != nil {
		return "", errors.Wrap(err, "cookie.Handler.WriteOIDCCookie()")
	}

	return provider.AuthCodeURL(state.String(), oauth2.S256ChallengeOption(pkceVerifier)), nil
}

// Verify performs the necessary verification and processing of the OIDC callback request
// and returns the signed in Identity.
func (o *OIDC) Verify(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Identity, error) {
	provider, err := o.Provider(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loader.Loader.Provider()")
	}

	cval, ok := o.cookieHandler.ReadOIDCCookie(r)
	if !ok {
		return nil, httpio.NewForbiddenMessage("No OIDC cookie")
	}
	o.cookieHandler.DeleteOIDCCookie(w)

	returnURL := localReturnURL(cval[cookie.ReturnURL])

	// Validate state parameter
	if r.URL.Query().Get("state") != cval[cookie.OIDCState] {
		return nil, httpio.NewForbiddenMessage("Invalid 'state' parameter value")
	}

	oauth2Token, err := provider.Exchange(ctx, r.URL.Query().Get("code"), oauth2.VerifierOption(cval[cookie.OIDCPkceVerifier]))
	if err != nil {
		return nil, httpio.NewInternalServerErrorMessageWithError(err, "Failed to exchange token")
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, httpio.NewInternalServerErrorMessage("No id_token in token response")
	}

	claims, err := provider.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, httpio.NewInternalServerErrorMessageWithError(err, "Failed to verify ID token")
	}

	username, _ := claims["preferred_username"].(string)
	if username == "" {
		return nil, httpio.NewUnauthorizedMessage("ID token has no preferred_username")
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		sid = r.URL.Query().Get("session_state")
	}

	return &Identity{
		Username:     username,
		SID:          sid,
		RoleMetadata: claimAt(claims, o.roleClaim),
		ReturnURL:    returnURL,
	}, nil
}
