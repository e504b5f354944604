package sessioninfo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cccteam/ccc"
)

// ctxKey is a type for storing values in the request context
type ctxKey string

const (
	// CtxSessionInfo is the key used to store the SessionInfo in the context.
	CtxSessionInfo ctxKey = "sessionInfo"

	// CTXSessionID is the key used to store the session ID in the context.
	CTXSessionID ctxKey = "sessionID"
)

// FromRequest returns the session information from the request context.
func FromRequest(r *http.Request) *SessionInfo {
	return FromCtx(r.Context())
}

// FromCtx returns the session information from the context.
func FromCtx(ctx context.Context) *SessionInfo {
	sessionInfo, ok := ctx.Value(CtxSessionInfo).(*SessionInfo)
	if !ok {
		panic(fmt.Sprintf("failed to find %s in request context", CtxSessionInfo))
	}

	return sessionInfo
}

// Lookup returns the session information from the context, if a valid session was
// established for the request.
func Lookup(ctx context.Context) (*SessionInfo, bool) {
	sessionInfo, ok := ctx.Value(CtxSessionInfo).(*SessionInfo)

	return sessionInfo, ok && sessionInfo != nil
}

// NewCtx returns a copy of ctx carrying sessionInfo.
func NewCtx(ctx context.Context, sessionInfo *SessionInfo) context.Context {
	return context.WithValue(ctx, CtxSessionInfo, sessionInfo)
}

// IDFromRequest returns the session ID from the request context.
func IDFromRequest(r *http.Request) ccc.UUID {
	return IDFromCtx(r.Context())
}

// IDFromCtx returns the session ID from the context, or ccc.NilUUID when StartSession has
// not run for the request.
func IDFromCtx(ctx context.Context) ccc.UUID {
	id, ok := ctx.Value(CTXSessionID).(ccc.UUID)
	if !ok {
		return ccc.NilUUID
	}

	return id
}
