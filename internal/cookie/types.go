package cookie

import (
	"slices"
	"time"

	"github.com/cccteam/ccc"
)

// Key is a type for storing values in a secure cookie
type Key string

const (
	// SessionID is the key used to store the SessionID in the auth cookie
	SessionID Key = "sessionID"

	// SameSiteStrict is the key used to store the sameSiteStrict cookie setting
	SameSiteStrict Key = "sameSiteStrict"

	// OIDCState is the key used to store the state
	OIDCState Key = "state"

	// OIDCPkceVerifier is the key used to store the PKCE verifier
	OIDCPkceVerifier Key = "pkceVerifier"

	// ReturnURL is the key used to store the return URL
	ReturnURL Key = "returnURL"

	// XSRFSessionID is the key used to store the sessionID in the XSRF token cookie
	XSRFSessionID Key = "sessionid"

	// XSRFTokenExpiration is the key used to store the token expiration in the XSRF token cookie
	XSRFTokenExpiration Key = "expiration"

	// NoticeMessage is the key used to store the access notice text
	NoticeMessage Key = "message"
)

const (
	// AuthCookieName is the cookie name of the Secure Cookie
	AuthCookieName = "auth"

	// XSRFCookieName is the cookie name of the XSRF Token Cookie
	XSRFCookieName = "XSRF-TOKEN"

	// XSRFHeaderName is the header name of the XSRF Token Cookie
	XSRFHeaderName = "X-XSRF-TOKEN"

	// OIDCCookieName is the cookie name of the OIDC Cookie
	OIDCCookieName = "OIDC"

	// NoticeCookieName is the cookie name of the access notice cookie
	NoticeCookieName = "notice"

	// OIDCCookieExpiration is the expiration of the OIDC Cookie
	OIDCCookieExpiration = 10 * time.Minute

	// NoticeCookieExpiration is the expiration of the access notice cookie
	NoticeCookieExpiration = time.Minute

	// XSRFCookieLife is constant controlling XSRF Cookie expiration
	XSRFCookieLife = time.Hour

	// XSRFReWriteWindow controls rewriting xsrf cookie token if it expires within duration
	XSRFReWriteWindow = 30 * time.Minute
)

// Values holds the key/value pairs stored in a secure cookie
type Values map[Key]string

// SafeMethods are Idempotent methods as defined by RFC7231 section 4.2.2.
var SafeMethods = methods([]string{"GET", "HEAD", "OPTIONS", "TRACE"})

type methods []string

func (vals methods) Contain(s string) bool {
	return slices.Contains(vals, s)
}

// ValidSessionID checks that the sessionID is a valid uuid
func ValidSessionID(sessionID string) (ccc.UUID, bool) {
	sessionUUID, err := ccc.UUIDFromString(sessionID)
	if err != nil {
		return ccc.NilUUID, false
	}

	return sessionUUID, true
}
