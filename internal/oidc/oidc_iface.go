package oidc

import (
	"context"
	"net/http"
	"time"
)

// Authenticator defines the OIDC authorization code flow used by the session handlers.
type Authenticator interface {
	AuthCodeURL(ctx context.Context, w http.ResponseWriter, returnURL string) (string, error)
	Verify(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Identity, error)
	Ready() bool
	Warm(ctx context.Context, interval time.Duration) error
	LoginURL() string
	SetLoginURL(url string)
	SetRoleClaim(path string)
}
