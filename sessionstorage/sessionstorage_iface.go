// Package sessionstorage implements database storage for OIDC session data.
// There are implementations for both Spanner and Postgres.
package sessionstorage

import (
	"context"

	"github.com/cccteam/ccc"
	"github.com/cccteam/coursegate/sessioninfo"
	"github.com/cccteam/coursegate/sessionstorage/internal/dbtype"
	"github.com/cccteam/coursegate/sessionstorage/internal/postgres"
	"github.com/cccteam/coursegate/sessionstorage/internal/spanner"
)

// Base defines an interface for managing session storage.
type Base interface {
	DestroySession(ctx context.Context, sessionID ccc.UUID) error
	UpdateSessionActivity(ctx context.Context, sessionID ccc.UUID) error
	Session(ctx context.Context, sessionID ccc.UUID) (*sessioninfo.SessionInfo, error)
}

var _ OIDCStore = (*OIDC)(nil)

// OIDCStore defines an interface for managing OIDC sessions.
type OIDCStore interface {
	// NewSession stores a new session for username carrying the identity provider's
	// role metadata claim and returns its ID.
	NewSession(ctx context.Context, username, oidcSID string, roleMetadata any) (ccc.UUID, error)
	// DestroySessionOIDC expires every session of the user owning oidcSID and returns
	// that user's name, or an empty string when nothing was expired.
	DestroySessionOIDC(ctx context.Context, oidcSID string) (string, error)

	// shared storage methods
	Base
}

var (
	_ db = (*spanner.SessionStorageDriver)(nil)
	_ db = (*postgres.SessionStorageDriver)(nil)
)

// db defines an interface for database operations related to session management.
type db interface {
	// SetSessionTableName overrides the default Sessions table name.
	SetSessionTableName(name string)
	// Session returns the session information from the database for given sessionID.
	Session(ctx context.Context, sessionID ccc.UUID) (*dbtype.Session, error)
	// InsertSession creates a new session in the database and returns its session ID.
	InsertSession(ctx context.Context, session *dbtype.InsertSession) (ccc.UUID, error)
	// UpdateSessionActivity updates the session activity column with the current time.
	UpdateSessionActivity(ctx context.Context, sessionID ccc.UUID) error
	// DestroySession marks the session as expired.
	DestroySession(ctx context.Context, sessionID ccc.UUID) error
	// DestroySessionOIDC marks the sessions of the user owning oidcSID as expired.
	DestroySessionOIDC(ctx context.Context, oidcSID string) (string, error)
}
