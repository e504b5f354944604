// Package dbtype contains types used by the database driver packages for session storage.
package dbtype

import (
	"time"
)

// Session defines the structure for storing session data in the database.
//
// RoleMetadata holds the identity provider's role metadata claim as JSON text.
type Session struct {
	ID           string    `spanner:"Id"           db:"Id"`
	OidcSID      string    `spanner:"OidcSid"      db:"OidcSid"`
	Username     string    `spanner:"Username"     db:"Username"`
	RoleMetadata string    `spanner:"RoleMetadata" db:"RoleMetadata"`
	CreatedAt    time.Time `spanner:"CreatedAt"    db:"CreatedAt"`
	UpdatedAt    time.Time `spanner:"UpdatedAt"    db:"UpdatedAt"`
	Expired      bool      `spanner:"Expired"      db:"Expired"`
}

// InsertSession defines the structure for inserting new session data into the database.
type InsertSession struct {
	OidcSID      string    `spanner:"OidcSid"`
	Username     string    `spanner:"Username"`
	RoleMetadata string    `spanner:"RoleMetadata"`
	CreatedAt    time.Time `spanner:"CreatedAt"`
	UpdatedAt    time.Time `spanner:"UpdatedAt"`
	Expired      bool      `spanner:"Expired"`
}
