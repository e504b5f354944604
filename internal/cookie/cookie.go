package cookie

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"github.com/gorilla/securecookie"
)

// Client reads and writes the auth, XSRF, OIDC and notice cookies.
type Client struct {
	secureCookie *securecookie.SecureCookie
	cookieName   string
	domain       string
}

// NewCookieClient returns a Client whose encryption keys are derived from the base64
// encoded cookieKey.
func NewCookieClient(cookieKey string, options ...Option) (*Client, error) {
	s, err := createSecureCookie(cookieKey)
	if err != nil {
		return nil, errors.Wrap(err, "createSecureCookie()")
	}

	c := &Client{
		secureCookie: s,
		cookieName:   AuthCookieName,
	}
	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// NewAuthCookie writes a new auth cookie for sessionID.
func (c *Client) NewAuthCookie(w http.ResponseWriter, sameSiteStrict bool, sessionID ccc.UUID) (Values, error) {
	cval := Values{
		SessionID: sessionID.String(),
	}

	if err := c.WriteAuthCookie(w, sameSiteStrict, cval); err != nil {
		return nil, errors.Wrap(err, "Client.WriteAuthCookie()")
	}

	return cval, nil
}

// ReadAuthCookie reads the auth cookie. A cookie that fails to decode is reported as not found.
func (c *Client) ReadAuthCookie(r *http.Request) (Values, bool) {
	cval := make(Values)

	cookie, err := r.Cookie(c.cookieName)
	if err != nil {
		return cval, false
	}
	if err := c.secureCookie.Decode(c.cookieName, cookie.Value, &cval); err != nil {
		logger.Req(r).Error(errors.Wrap(err, "securecookie.Decode()"))

		return make(Values), false
	}

	return cval, true
}

// WriteAuthCookie writes cval to the auth cookie.
func (c *Client) WriteAuthCookie(w http.ResponseWriter, sameSiteStrict bool, cval Values) error {
	cval[SameSiteStrict] = strconv.FormatBool(sameSiteStrict)
	encoded, err := c.secureCookie.Encode(c.cookieName, cval)
	if err != nil {
		return errors.Wrap(err, "securecookie.Encode()")
	}

	sameSite := http.SameSiteStrictMode
	if !sameSiteStrict {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    encoded,
		Path:     "/",
		Domain:   c.domain,
		Secure:   secureCookie(),
		HttpOnly: true,
		SameSite: sameSite,
	})

	return nil
}

// WriteOIDCCookie writes the short lived cookie carrying the OIDC state and PKCE verifier.
func (c *Client) WriteOIDCCookie(w http.ResponseWriter, cval Values) error {
	encoded, err := c.secureCookie.Encode(OIDCCookieName, cval)
	if err != nil {
		return errors.Wrap(err, "securecookie.Encode()")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     OIDCCookieName,
		Value:    encoded,
		Path:     "/",
		Domain:   c.domain,
		Expires:  time.Now().Add(OIDCCookieExpiration),
		Secure:   secureCookie(),
		HttpOnly: true,
		// Lax so the cookie survives the redirect back from the identity provider
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// ReadOIDCCookie reads the OIDC cookie.
func (c *Client) ReadOIDCCookie(r *http.Request) (Values, bool) {
	return c.read(r, OIDCCookieName)
}

// DeleteOIDCCookie expires the OIDC cookie.
func (c *Client) DeleteOIDCCookie(w http.ResponseWriter) {
	c.delete(w, OIDCCookieName)
}

// WriteNoticeCookie stores an access notice for the client to display.
func (c *Client) WriteNoticeCookie(w http.ResponseWriter, message string) error {
	encoded, err := c.secureCookie.Encode(NoticeCookieName, Values{NoticeMessage: message})
	if err != nil {
		return errors.Wrap(err, "securecookie.Encode()")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     NoticeCookieName,
		Value:    encoded,
		Path:     "/",
		Domain:   c.domain,
		Expires:  time.Now().Add(NoticeCookieExpiration),
		Secure:   secureCookie(),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return nil
}

// ReadNoticeCookie returns the pending access notice, if any.
func (c *Client) ReadNoticeCookie(r *http.Request) (string, bool) {
	cval, ok := c.read(r, NoticeCookieName)
	if !ok {
		return "", false
	}

	msg, ok := cval[NoticeMessage]

	return msg, ok
}

// DeleteNoticeCookie expires the notice cookie.
func (c *Client) DeleteNoticeCookie(w http.ResponseWriter) {
	c.delete(w, NoticeCookieName)
}

func (c *Client) read(r *http.Request, name string) (Values, bool) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return nil, false
	}

	cval := make(Values)
	if err := c.secureCookie.Decode(name, cookie.Value, &cval); err != nil {
		logger.Req(r).Error(errors.Wrap(err, "securecookie.Decode()"))

		return nil, false
	}

	return cval, true
}

func (c *Client) delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   secureCookie(),
		HttpOnly: true,
	})
}
