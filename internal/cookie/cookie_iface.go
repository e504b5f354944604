// Package cookie reads and writes the encrypted cookies used by the session layer.
package cookie

import (
	"net/http"

	"github.com/cccteam/ccc"
)

var _ Handler = &Client{}

// Handler Interface included for testability
type Handler interface {
	NewAuthCookie(w http.ResponseWriter, sameSiteStrict bool, sessionID ccc.UUID) (Values, error)
	ReadAuthCookie(r *http.Request) (Values, bool)
	WriteAuthCookie(w http.ResponseWriter, sameSiteStrict bool, cval Values) error
	RefreshXSRFTokenCookie(w http.ResponseWriter, r *http.Request, sessionID ccc.UUID) (bool, error)
	CreateXSRFTokenCookie(w http.ResponseWriter, sessionID ccc.UUID) error
	HasValidXSRFToken(r *http.Request, sessionID ccc.UUID) bool
	WriteOIDCCookie(w http.ResponseWriter, cval Values) error
	ReadOIDCCookie(r *http.Request) (Values, bool)
	DeleteOIDCCookie(w http.ResponseWriter)
	WriteNoticeCookie(w http.ResponseWriter, message string) error
	ReadNoticeCookie(r *http.Request) (string, bool)
	DeleteNoticeCookie(w http.ResponseWriter)
}
