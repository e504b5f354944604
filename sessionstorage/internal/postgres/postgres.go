// Package postgres implements the session storage driver for PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/coursegate/sessionstorage/internal/dbtype"
	"github.com/cccteam/httpio"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-playground/errors/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)


// Queryer is the subset of a pgx connection or pool used by the driver.
type Queryer interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

// SessionStorageDriver represents the session storage implementation for PostgreSQL.
type SessionStorageDriver struct {
	conn             Queryer
	sessionTableName string
}

// NewSessionStorageDriver creates a new SessionStorageDriver
func NewSessionStorageDriver(conn Queryer) *SessionStorageDriver {
	return &SessionStorageDriver{
		conn:             conn,
		sessionTableName: "Sessions",
	}
}

// SetSessionTableName sets the name of the session table.
func (d *SessionStorageDriver) SetSessionTableName(name string) {
	d.sessionTableName = name
}

func (d *SessionStorageDriver) table() string {
	return pgx.Identifier{d.sessionTableName}.Sanitize()
}

// Session returns the session information from the database for given sessionID
func (d *SessionStorageDriver) Session(ctx context.Context, sessionID ccc.UUID) (*dbtype.Session, error) {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	query := fmt.Sprintf(`
		SELECT
			"Id", "OidcSid", "Username", "RoleMetadata", "CreatedAt", "UpdatedAt", "Expired"
		FROM %s
		WHERE "Id" = $1
	`, d.table())

	s := &dbtype.Session{}
	if err := pgxscan.Get(ctx, d.conn, s, query, sessionID.String()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpio.NewNotFoundMessagef("session %s not found in database", sessionID)
		}

		return nil, errors.Wrapf(err, "failed to scan row for session %s", sessionID)
	}

	return s, nil
}

// InsertSession inserts a Session into database and returns its new ID.
func (d *SessionStorageDriver) InsertSession(ctx context.Context, session *dbtype.InsertSession) (ccc.UUID, error) {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	id, err := ccc.NewUUID()
	if err != nil {
		return ccc.NilUUID, errors.Wrap(err, "ccc.NewUUID()")
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
			("Id", "OidcSid", "Username", "RoleMetadata", "CreatedAt", "UpdatedAt", "Expired")
		VALUES
			($1, $2, $3, $4, $5, $6, $7)
		`, d.table())

	if _, err := d.conn.Exec(ctx, query, id.String(), session.OidcSID, session.Username, session.RoleMetadata, session.CreatedAt, session.UpdatedAt, session.Expired); err != nil {
		return ccc.NilUUID, errors.Wrap(err, "Queryer.Exec()")
	}

	return id, nil
}

// UpdateSessionActivity updates the session activity column with the current time
func (d *SessionStorageDriver) UpdateSessionActivity(ctx context.Context, sessionID ccc.UUID) error {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	query := fmt.Sprintf(`
		UPDATE %s SET "UpdatedAt" = $1
		WHERE "Id" = $2`, d.table())

	res, err := d.conn.Exec(ctx, query, time.Now(), sessionID.String())
	if err != nil {
		return errors.Wrapf(err, "failed to update Sessions table for ID: %s", sessionID)
	}

	if cnt := res.RowsAffected(); cnt != 1 {
		return httpio.NewNotFoundMessagef("session %s not found in database", sessionID)
	}

	return nil
}

// DestroySession marks the session as expired
func (d *SessionStorageDriver) DestroySession(ctx context.Context, sessionID ccc.UUID) error {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	query := fmt.Sprintf(`
		UPDATE %s SET "Expired" = TRUE, "UpdatedAt" = $1
		WHERE "Id" = $2`, d.table())

	if _, err := d.conn.Exec(ctx, query, time.Now(), sessionID.String()); err != nil {
		return errors.Wrapf(err, "failed to update Sessions table for %s", sessionID)
	}

	return nil
}

// DestroySessionOIDC expires every active session of the user owning oidcSID and returns
// that user's name. The name is empty when no active session was expired.
func (d *SessionStorageDriver) DestroySessionOIDC(ctx context.Context, oidcSID string) (string, error) {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	query := fmt.Sprintf(`
		UPDATE %[1]s SET "Expired" = TRUE, "UpdatedAt" = $2
		WHERE NOT "Expired" AND "Username" = (
			SELECT "Username"
			FROM %[1]s
			WHERE "OidcSid" = $1
			LIMIT 1
		)
		RETURNING "Username"`, d.table())

	var usernames []string
	if err := pgxscan.Select(ctx, d.conn, &usernames, query, oidcSID, time.Now()); err != nil {
		return "", errors.Wrapf(err, "failed to destroy sessions for user with OIDC session: %s", oidcSID)
	}

	if len(usernames) == 0 {
		return "", nil
	}

	return usernames[0], nil
}
