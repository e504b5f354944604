package cookie

import (
	"net/http"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
)

// RefreshXSRFTokenCookie sets the cookie if it does not exist and updates the cookie when it is close to expiration.
func (c *Client) RefreshXSRFTokenCookie(w http.ResponseWriter, r *http.Request, sessionID ccc.UUID) (set bool, err error) {
	cval, found := c.ReadXSRFCookie(r)
	if found && sessionID.String() == cval[XSRFSessionID] {
		exp, err := time.Parse(time.UnixDate, cval[XSRFTokenExpiration])
		if err != nil {
			logger.Req(r).Error(errors.Wrap(err, "time.Parse()"))
		} else if time.Now().Before(exp.Add(-XSRFReWriteWindow)) {
			return false, nil
		}
	}

	if err := c.CreateXSRFTokenCookie(w, sessionID); err != nil {
		return false, errors.Wrap(err, "Client.CreateXSRFTokenCookie()")
	}

	return true, nil
}

// CreateXSRFTokenCookie writes a new XSRF token cookie bound to sessionID.
func (c *Client) CreateXSRFTokenCookie(w http.ResponseWriter, sessionID ccc.UUID) error {
	cval := Values{
		XSRFSessionID:       sessionID.String(),
		XSRFTokenExpiration: time.Now().Add(XSRFCookieLife).Format(time.UnixDate),
	}

	if err := c.WriteXSRFCookie(w, cval); err != nil {
		return errors.Wrap(err, "Client.WriteXSRFCookie()")
	}

	return nil
}

// HasValidXSRFToken reports whether the request carries an unexpired XSRF token cookie for
// sessionID and a matching XSRF header.
func (c *Client) HasValidXSRFToken(r *http.Request, sessionID ccc.UUID) bool {
	cval, found := c.ReadXSRFCookie(r)
	if !found {
		return false
	}
	exp, err := time.Parse(time.UnixDate, cval[XSRFTokenExpiration])
	if err != nil {
		logger.Req(r).Error(errors.Wrap(err, "time.Parse()"))

		return false
	}
	if time.Now().After(exp) {
		return false
	}
	if sessionID.String() != cval[XSRFSessionID] {
		return false
	}
	hval, found := c.ReadXSRFHeader(r)
	if !found {
		return false
	}

	return hval[XSRFSessionID] == cval[XSRFSessionID]
}

// WriteXSRFCookie writes cval to the XSRF token cookie. The cookie is readable by scripts so
// the client can echo it back in the XSRF header.
func (c *Client) WriteXSRFCookie(w http.ResponseWriter, cval Values) error {
	encoded, err := c.secureCookie.Encode(XSRFCookieName, cval)
	if err != nil {
		return errors.Wrap(err, "securecookie.Encode()")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     XSRFCookieName,
		Expires:  time.Now().Add(XSRFCookieLife),
		Value:    encoded,
		Path:     "/",
		Domain:   c.domain,
		Secure:   secureCookie(),
		SameSite: http.SameSiteStrictMode,
	})

	return nil
}

// ReadXSRFCookie reads the XSRF token cookie.
func (c *Client) ReadXSRFCookie(r *http.Request) (Values, bool) {
	return c.read(r, XSRFCookieName)
}

// ReadXSRFHeader decodes the XSRF header.
func (c *Client) ReadXSRFHeader(r *http.Request) (Values, bool) {
	h := r.Header.Get(XSRFHeaderName)
	if h == "" {
		return nil, false
	}

	cval := make(Values)
	if err := c.secureCookie.Decode(XSRFCookieName, h, &cval); err != nil {
		logger.Req(r).Error(errors.Wrap(err, "securecookie.Decode()"))

		return nil, false
	}

	return cval, true
}
