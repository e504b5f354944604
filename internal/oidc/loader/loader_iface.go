package loader

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

var _ Loader = (*loader)(nil)

// Loader is the interface for loading OIDC provider configurations.
type Loader interface {
	Provider(ctx context.Context) (Provider, error)
	Ready() bool
	Warm(ctx context.Context, interval time.Duration) error
	LoginURL() string
	SetLoginURL(url string)
}

// Provider represents an OIDC provider.
type Provider interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
	// Verify verifies the raw ID Token and returns its claims.
	Verify(ctx context.Context, rawIDToken string) (map[string]any, error)
}
