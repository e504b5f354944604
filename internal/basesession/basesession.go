// Package basesession implements the session management for the application.
package basesession

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/coursegate/access"
	"github.com/cccteam/coursegate/identity"
	"github.com/cccteam/coursegate/internal/cookie"
	"github.com/cccteam/coursegate/sessioninfo"
	"github.com/cccteam/coursegate/sessionstorage"
	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
)


// activityUpdateInterval rate limits writes of the session activity timestamp.
const activityUpdateInterval = 5 * time.Second

// LogHandler defines the handler signature required for handling logs.
type LogHandler func(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc

// BaseSession implements the session handlers shared by the login flows
type BaseSession struct {
	SessionTimeout time.Duration
	Handle         LogHandler
	Storage        sessionstorage.Base
	CookieHandler  cookie.Handler
	// Hub receives sign-out pushes and reports whether the identity integration is loaded.
	// A nil Hub is treated as always loaded.
	Hub *identity.Hub
}

// StartSession initializes a session by restoring it from a cookie, or if
// that fails, initializing a new session. The session cookie is then updated and
// the sessionID is inserted into the context.
func (s *BaseSession) StartSession(next http.Handler) http.Handler {
	return s.Handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := ccc.StartTrace(r.Context())
		defer span.End()

		r, err := s.startSession(w, r.WithContext(ctx))
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		next.ServeHTTP(w, r)

		return nil
	})
}

func (s *BaseSession) startSession(w http.ResponseWriter, r *http.Request) (*http.Request, error) {
	// Read Auth Cookie
	cval, foundAuthCookie := s.CookieHandler.ReadAuthCookie(r)
	sessionID, validSessionID := cookie.ValidSessionID(cval[cookie.SessionID])
	if !foundAuthCookie || !validSessionID {
		var err error
		sessionID, err = ccc.NewUUID()
		if err != nil {
			return r, errors.Wrap(err, "ccc.NewUUID()")
		}
		cval, err = s.CookieHandler.NewAuthCookie(w, true, sessionID)
		if err != nil {
			return r, errors.Wrap(err, "cookie.Handler.NewAuthCookie()")
		}
	}

	// Upgrade cookie to SameSite=Strict
	// since CallbackOIDC() sets it to None to allow OAuth flow to work
	if cval[cookie.SameSiteStrict] != strconv.FormatBool(true) {
		if err := s.CookieHandler.WriteAuthCookie(w, true, cval); err != nil {
			return r, errors.Wrap(err, "cookie.Handler.WriteAuthCookie()")
		}
	}

	// Store sessionID in context
	r = r.WithContext(context.WithValue(r.Context(), sessioninfo.CTXSessionID, sessionID))

	// Add session ID to logging context
	logger.Req(r).AddRequestAttribute("session ID", sessionID.String())
	l := logger.Req(r).WithAttributes().AddAttribute("session ID", sessionID.String()).Logger()

	return r.WithContext(logger.NewCtx(r.Context(), l)), nil
}

// ValidateSession looks up the session started by StartSession. A valid session is stored
// in the context and its activity refreshed. A missing or expired session continues as
// signed out. StartSession handler must be called before calling ValidateSession
func (s *BaseSession) ValidateSession(next http.Handler) http.Handler {
	return s.Handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := ccc.StartTrace(r.Context())
		defer span.End()

		ctx, err := s.ValidateSessionAPI(ctx)
		if err != nil && !httpio.HasUnauthorized(err) {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		next.ServeHTTP(w, r.WithContext(ctx))

		return nil
	})
}

// ValidateSessionAPI checks the session and if it is valid, stores the session data into the context.
// Missing and expired sessions return an Unauthorized message.
func (s *BaseSession) ValidateSessionAPI(ctx context.Context) (context.Context, error) {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	// Validate that the sessionID is in database
	sessInfo, err := s.Storage.Session(ctx, sessioninfo.IDFromCtx(ctx))
	if err != nil {
		if httpio.HasNotFound(err) {
			return ctx, httpio.NewUnauthorizedMessageWithError(err, "invalid session")
		}

		return ctx, errors.Wrap(err, "sessionstorage.Base.Session()")
	}

	// Check for expiration
	if sessInfo.Expired || time.Since(sessInfo.UpdatedAt) > s.SessionTimeout {
		return ctx, httpio.NewUnauthorizedMessage("session expired")
	}

	// Update last activity (rate limit updates)
	if time.Since(sessInfo.UpdatedAt) > activityUpdateInterval {
		if err := s.Storage.UpdateSessionActivity(ctx, sessInfo.ID); err != nil {
			return ctx, errors.Wrap(err, "sessionstorage.Base.UpdateSessionActivity()")
		}
	}

	// Store session info in context
	ctx = sessioninfo.NewCtx(ctx, sessInfo)

	// Add user to logging context
	logger.Ctx(ctx).AddRequestAttribute("username", sessInfo.Username)
	l := logger.Ctx(ctx).WithAttributes().AddAttribute("username", sessInfo.Username).Logger()

	return logger.NewCtx(ctx, l), nil
}

// Resolve returns the access.Session for the request. The request is signed in when
// ValidateSession stored a valid session in its context.
func (s *BaseSession) Resolve(r *http.Request) access.Session {
	sess := access.Session{
		IsLoaded: s.Hub == nil || s.Hub.Loaded(),
	}

	if info, ok := sessioninfo.Lookup(r.Context()); ok {
		sess.IsSignedIn = true
		sess.SubjectID = info.Username
		sess.RoleMetadata = info.RoleMetadata
	}

	return sess
}

// Authenticated is the handler reports if the session is authenticated
func (s *BaseSession) Authenticated() http.HandlerFunc {
	type response struct {
		Authenticated bool   `json:"authenticated"`
		Username      string `json:"username"`
		Role          string `json:"role,omitempty"`
	}

	return s.Handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := ccc.StartTrace(r.Context())
		defer span.End()

		ctx, err := s.ValidateSessionAPI(ctx)
		if err != nil {
			if httpio.HasUnauthorized(err) {
				return httpio.NewEncoder(w).Ok(response{})
			}

			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		sessInfo := sessioninfo.FromCtx(ctx)
		role, _ := access.DeriveRole(s.Resolve(r.WithContext(ctx)))

		// set response values
		res := response{
			Authenticated: true,
			Username:      sessInfo.Username,
			Role:          role.String(),
		}

		return httpio.NewEncoder(w).Ok(res)
	})
}

// Logout destroys the current session and pushes the sign-out to the user's watchers
func (s *BaseSession) Logout() http.HandlerFunc {
	return s.Handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := ccc.StartTrace(r.Context())
		defer span.End()

		// Destroy session in database
		if err := s.Storage.DestroySession(ctx, sessioninfo.IDFromCtx(ctx)); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		if info, ok := sessioninfo.Lookup(ctx); ok && s.Hub != nil {
			s.Hub.SignedOut(info.Username)
		}

		return httpio.NewEncoder(w).Ok(nil)
	})
}

// SetXSRFToken sets the XSRF Token
func (s *BaseSession) SetXSRFToken(next http.Handler) http.Handler {
	return s.Handle(func(w http.ResponseWriter, r *http.Request) error {
		set, err := s.CookieHandler.RefreshXSRFTokenCookie(w, r, sessioninfo.IDFromRequest(r))
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(r.Context(), err)
		}

		if set && !cookie.SafeMethods.Contain(r.Method) {
			// Cookie was not present and request requires XSRF Token, so
			// redirect request to try again now that the XSRF Token Cookie is set
			http.Redirect(w, r, r.RequestURI, http.StatusTemporaryRedirect)

			return nil
		}

		next.ServeHTTP(w, r)

		return nil
	})
}

// ValidateXSRFToken validates the XSRF Token
func (s *BaseSession) ValidateXSRFToken(next http.Handler) http.Handler {
	return s.Handle(func(w http.ResponseWriter, r *http.Request) error {
		// Validate XSRFToken for non-safe
		if !cookie.SafeMethods.Contain(r.Method) && !s.CookieHandler.HasValidXSRFToken(r, sessioninfo.IDFromRequest(r)) {
			// Token validation failed
			return httpio.NewEncoder(w).ClientMessage(r.Context(), httpio.NewForbiddenMessage("invalid XSRF token"))
		}

		next.ServeHTTP(w, r)

		return nil
	})
}
