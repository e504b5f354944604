package guard

import (
	"net/http"

	"github.com/cccteam/coursegate/access"
)

// Option configures a Guard.
type Option func(*Guard)

// WithNotifier sets the Notifier receiving denial notices. (default: none)
func WithNotifier(n access.Notifier) Option {
	return func(g *Guard) {
		g.notifier = n
	}
}

// WithLoadingHandler sets the handler serving pending navigations. (default: Loading)
func WithLoadingHandler(h http.Handler) Option {
	return func(g *Guard) {
		g.loading = h
	}
}

// WithLogHandler sets the LogHandler. (default: httpio.Log)
func WithLogHandler(l LogHandler) Option {
	return func(g *Guard) {
		g.handle = l
	}
}
