// Package sessioninfo handles session information.
package sessioninfo

import (
	"time"

	"github.com/cccteam/ccc"
)

// SessionInfo struct contains information about a session
type SessionInfo struct {
	ID       ccc.UUID
	Username string
	// RoleMetadata is the role metadata captured from the identity provider at sign-in.
	// It is untrusted and may hold any JSON value.
	RoleMetadata any
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Expired      bool
}
