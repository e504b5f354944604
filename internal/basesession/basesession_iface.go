package basesession

import (
	"net/http"

	"github.com/cccteam/coursegate/access"
)

var _ Handlers = (*BaseSession)(nil)

// Handlers defines the interface for session handlers
type Handlers interface {
	Authenticated() http.HandlerFunc
	Logout() http.HandlerFunc
	StartSession(next http.Handler) http.Handler
	ValidateSession(next http.Handler) http.Handler
	SetXSRFToken(next http.Handler) http.Handler
	ValidateXSRFToken(next http.Handler) http.Handler
	Resolve(r *http.Request) access.Session
}
