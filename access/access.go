// Package access decides whether the current principal may enter a guarded view.
//
// The decision functions are pure: they take the Session reported by the identity
// integration and the CapabilitySet of the view, and return an Outcome. Rendering the
// Outcome (loading indicator, guarded content, redirect) is left to an adapter such as
// package guard.
package access

import (
	"github.com/cccteam/coursegate/role"
)

// Session is the authentication state reported by the identity integration.
type Session struct {
	// IsLoaded reports whether the identity integration has finished initializing.
	IsLoaded bool
	// IsSignedIn reports whether a principal is authenticated.
	IsSignedIn bool
	// SubjectID identifies the principal. It is empty unless IsSignedIn.
	SubjectID string
	// RoleMetadata is the raw role metadata attached to the principal. It is untrusted
	// and may hold any JSON value.
	RoleMetadata any
}

// Decision is the outcome class of an access evaluation.
type Decision int

const (
	// Pending means the Session is not loaded yet. Nothing may be rendered but a loading state.
	Pending Decision = iota
	// Granted means the guarded content may be rendered.
	Granted
	// Denied means the navigation must be redirected.
	Denied
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// State is the position of a navigation in the guard state machine.
//
//	AwaitingSession -> Unauthenticated
//	AwaitingSession -> Authenticated -> Authorized | Unauthorized
//
// Authenticated is never reported on its own: once a role is resolved the capability
// check completes in the same evaluation.
type State int

const (
	// AwaitingSession is the initial state, held until the Session is loaded.
	AwaitingSession State = iota
	// Unauthenticated is terminal: redirect to sign-in, preserving the requested location.
	Unauthenticated
	// Authorized is terminal: render the guarded content.
	Authorized
	// Unauthorized is terminal: notify once, then redirect to the landing view.
	Unauthorized
)

func (s State) String() string {
	switch s {
	case AwaitingSession:
		return "awaitingSession"
	case Unauthenticated:
		return "unauthenticated"
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is the result of evaluating a Session against a CapabilitySet.
type Outcome struct {
	Decision Decision
	State    State
	// Role is the derived role. It is role.None while pending or signed out.
	Role role.Role
	// Required is the CapabilitySet that was evaluated.
	Required role.Set
}

// Equal reports whether two outcomes would render the same way.
func (o Outcome) Equal(other Outcome) bool {
	return o.Decision == other.Decision && o.State == other.State && o.Role == other.Role
}

// DeriveRole returns the role of the Session principal.
//
// resolved is false while the Session is not loaded; the role is then indeterminate and
// the caller must wait for the next Session update. A signed out Session resolves to
// role.None. A signed in Session resolves to the role named by its metadata, falling back
// to role.Student when the metadata is missing or malformed.
func DeriveRole(s Session) (r role.Role, resolved bool) {
	if !s.IsLoaded {
		return role.None, false
	}

	if !s.IsSignedIn {
		return role.None, true
	}

	return role.Parse(s.RoleMetadata), true
}

// HasCapability reports whether r may access a view guarded by allowed.
// role.None never has a capability. An empty allowed set denies every role.
func HasCapability(r role.Role, allowed role.Set) bool {
	if r == role.None {
		return false
	}

	return allowed.Permits(r)
}

// EvaluateAccess decides a single navigation attempt. It has no side effects: calling it
// twice with the same arguments yields the same Outcome.
func EvaluateAccess(s Session, allowed role.Set) Outcome {
	r, resolved := DeriveRole(s)
	switch {
	case !resolved:
		return Outcome{Decision: Pending, State: AwaitingSession, Required: allowed}
	case !s.IsSignedIn:
		return Outcome{Decision: Denied, State: Unauthenticated, Required: allowed}
	case HasCapability(r, allowed):
		return Outcome{Decision: Granted, State: Authorized, Role: r, Required: allowed}
	default:
		return Outcome{Decision: Denied, State: Unauthorized, Role: r, Required: allowed}
	}
}
