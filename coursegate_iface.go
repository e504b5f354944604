package coursegate

import (
	"net/http"

	"github.com/cccteam/coursegate/internal/basesession"
)

// OIDCHandlers defines the interface for OIDC session handlers.
type OIDCHandlers interface {
	CallbackOIDC() http.HandlerFunc
	FrontChannelLogout() http.HandlerFunc
	Login() http.HandlerFunc
	Notice() http.HandlerFunc
	basesession.Handlers
}
