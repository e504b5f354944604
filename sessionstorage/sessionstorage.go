package sessionstorage

import (
	"context"
	"encoding/json"
	"time"

	cloudspanner "cloud.google.com/go/spanner"
	"github.com/cccteam/ccc"
	"github.com/cccteam/coursegate/sessioninfo"
	"github.com/cccteam/coursegate/sessionstorage/internal/dbtype"
	"github.com/cccteam/coursegate/sessionstorage/internal/postgres"
	"github.com/cccteam/coursegate/sessionstorage/internal/spanner"
	"github.com/go-playground/errors/v5"
)


// OIDC is the session storage implementation with OIDC support.
type OIDC struct {
	db db
}

// NewSpannerOIDC creates a new OIDC session storage backed by Spanner.
func NewSpannerOIDC(client *cloudspanner.Client) *OIDC {
	return &OIDC{
		db: spanner.NewSessionStorageDriver(client),
	}
}

// NewPostgresOIDC creates a new OIDC session storage backed by PostgreSQL.
func NewPostgresOIDC(conn postgres.Queryer) *OIDC {
	return &OIDC{
		db: postgres.NewSessionStorageDriver(conn),
	}
}

// SetSessionTableName sets the name of the session table.
func (s *OIDC) SetSessionTableName(name string) {
	s.db.SetSessionTableName(name)
}

// NewSession inserts SessionInfo into database
func (s *OIDC) NewSession(ctx context.Context, username, oidcSID string, roleMetadata any) (ccc.UUID, error) {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	metadata, err := json.Marshal(roleMetadata)
	if err != nil {
		return ccc.NilUUID, errors.Wrap(err, "json.Marshal()")
	}

	now := time.Now()
	session := &dbtype.InsertSession{
		OidcSID:      oidcSID,
		Username:     username,
		RoleMetadata: string(metadata),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.db.InsertSession(ctx, session)
	if err != nil {
		return ccc.NilUUID, errors.Wrap(err, "db.InsertSession()")
	}

	return id, nil
}

// Session returns the session information from the database for given sessionID
func (s *OIDC) Session(ctx context.Context, sessionID ccc.UUID) (*sessioninfo.SessionInfo, error) {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	si, err := s.db.Session(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "db.Session()")
	}

	id, err := ccc.UUIDFromString(si.ID)
	if err != nil {
		return nil, errors.Wrap(err, "ccc.UUIDFromString()")
	}

	return &sessioninfo.SessionInfo{
		ID:           id,
		Username:     si.Username,
		RoleMetadata: decodeRoleMetadata(si.RoleMetadata),
		CreatedAt:    si.CreatedAt,
		UpdatedAt:    si.UpdatedAt,
		Expired:      si.Expired,
	}, nil
}

// UpdateSessionActivity updates the database with the current time for the session activity
func (s *OIDC) UpdateSessionActivity(ctx context.Context, sessionID ccc.UUID) error {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	if err := s.db.UpdateSessionActivity(ctx, sessionID); err != nil {
		return errors.Wrap(err, "db.UpdateSessionActivity()")
	}

	return nil
}

// DestroySession marks the session as expired
func (s *OIDC) DestroySession(ctx context.Context, sessionID ccc.UUID) error {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	if err := s.db.DestroySession(ctx, sessionID); err != nil {
		return errors.Wrap(err, "db.DestroySession()")
	}

	return nil
}

// DestroySessionOIDC marks every session of the user owning oidcSID as expired
func (s *OIDC) DestroySessionOIDC(ctx context.Context, oidcSID string) (string, error) {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	username, err := s.db.DestroySessionOIDC(ctx, oidcSID)
	if err != nil {
		return "", errors.Wrap(err, "db.DestroySessionOIDC()")
	}

	return username, nil
}

// decodeRoleMetadata returns the stored metadata as a JSON value. Text that is not valid
// JSON yields nil, which resolves to the least privileged role.
func decodeRoleMetadata(raw string) any {
	if raw == "" {
		return nil
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil
	}

	return v
}
