package sessionstorage

import (
	"context"
	"testing"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/coursegate/sessioninfo"
	"github.com/cccteam/coursegate/sessionstorage/internal/dbtype"
	"github.com/go-playground/errors/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type fakeDB struct {
	table    string
	inserted *dbtype.InsertSession
	stored   *dbtype.Session
	username string
	err      error
}

func (f *fakeDB) SetSessionTableName(name string) { f.table = name }

func (f *fakeDB) Session(_ context.Context, _ ccc.UUID) (*dbtype.Session, error) {
	return f.stored, f.err
}

func (f *fakeDB) InsertSession(_ context.Context, session *dbtype.InsertSession) (ccc.UUID, error) {
	f.inserted = session
	if f.err != nil {
		return ccc.NilUUID, f.err
	}

	return ccc.Must(ccc.UUIDFromString("7cf3ae6b-3e66-4b5a-9e4c-3d0e3b7b2a10")), nil
}

func (f *fakeDB) UpdateSessionActivity(_ context.Context, _ ccc.UUID) error { return f.err }

func (f *fakeDB) DestroySession(_ context.Context, _ ccc.UUID) error { return f.err }

func (f *fakeDB) DestroySessionOIDC(_ context.Context, _ string) (string, error) {
	return f.username, f.err
}

func TestOIDC_NewSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		roleMetadata     any
		dbErr            error
		wantRoleMetadata string
		wantErr          bool
	}{
		{
			name:             "string role",
			roleMetadata:     "instructor",
			wantRoleMetadata: `"instructor"`,
		},
		{
			name:             "missing role",
			roleMetadata:     nil,
			wantRoleMetadata: "null",
		},
		{
			name:             "structured metadata",
			roleMetadata:     map[string]any{"role": "admin"},
			wantRoleMetadata: `{"role":"admin"}`,
		},
		{
			name:         "unencodable metadata",
			roleMetadata: func() {},
			wantErr:      true,
		},
		{
			name:         "insert fails",
			roleMetadata: "student",
			dbErr:        errors.New("connection refused"),
			wantErr:      true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &fakeDB{err: tt.dbErr}
			s := &OIDC{db: f}

			id, err := s.NewSession(context.Background(), "ada", "sid-1", tt.roleMetadata)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OIDC.NewSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if id.IsNil() {
				t.Errorf("OIDC.NewSession() id = ccc.NilUUID")
			}
			if f.inserted.RoleMetadata != tt.wantRoleMetadata {
				t.Errorf("InsertSession.RoleMetadata = %s, want %s", f.inserted.RoleMetadata, tt.wantRoleMetadata)
			}
			if f.inserted.Username != "ada" || f.inserted.OidcSID != "sid-1" || f.inserted.Expired {
				t.Errorf("InsertSession = %+v", f.inserted)
			}
			if !f.inserted.CreatedAt.Equal(f.inserted.UpdatedAt) {
				t.Errorf("InsertSession.CreatedAt = %v, UpdatedAt = %v", f.inserted.CreatedAt, f.inserted.UpdatedAt)
			}
		})
	}
}

func TestOIDC_Session(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	id := "0f3bd7a1-9c63-4d7b-b1f6-2f3c2a0de0c1"

	tests := []struct {
		name    string
		stored  *dbtype.Session
		dbErr   error
		want    *sessioninfo.SessionInfo
		wantErr bool
	}{
		{
			name:   "decodes role metadata",
			stored: &dbtype.Session{ID: id, Username: "ada", RoleMetadata: `"admin"`, CreatedAt: created, UpdatedAt: created},
			want:   &sessioninfo.SessionInfo{ID: ccc.Must(ccc.UUIDFromString(id)), Username: "ada", RoleMetadata: "admin", CreatedAt: created, UpdatedAt: created},
		},
		{
			name:   "null metadata",
			stored: &dbtype.Session{ID: id, Username: "ada", RoleMetadata: "null", Expired: true},
			want:   &sessioninfo.SessionInfo{ID: ccc.Must(ccc.UUIDFromString(id)), Username: "ada", Expired: true},
		},
		{
			name:   "numeric metadata",
			stored: &dbtype.Session{ID: id, Username: "ada", RoleMetadata: "42"},
			want:   &sessioninfo.SessionInfo{ID: ccc.Must(ccc.UUIDFromString(id)), Username: "ada", RoleMetadata: float64(42)},
		},
		{
			name:   "malformed metadata",
			stored: &dbtype.Session{ID: id, Username: "ada", RoleMetadata: "admin"},
			want:   &sessioninfo.SessionInfo{ID: ccc.Must(ccc.UUIDFromString(id)), Username: "ada"},
		},
		{
			name:    "invalid stored id",
			stored:  &dbtype.Session{ID: "not-a-uuid"},
			wantErr: true,
		},
		{
			name:    "lookup fails",
			dbErr:   errors.New("deadline exceeded"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &OIDC{db: &fakeDB{stored: tt.stored, err: tt.dbErr}}

			got, err := s.Session(context.Background(), ccc.Must(ccc.UUIDFromString(id)))
			if (err != nil) != tt.wantErr {
				t.Fatalf("OIDC.Session() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("OIDC.Session() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOIDC_DestroySessionOIDC(t *testing.T) {
	t.Parallel()

	f := &fakeDB{username: "ada"}
	s := &OIDC{db: f}
	s.SetSessionTableName("CourseSessions")

	got, err := s.DestroySessionOIDC(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("OIDC.DestroySessionOIDC() error = %v", err)
	}
	if got != "ada" {
		t.Errorf("OIDC.DestroySessionOIDC() = %q, want %q", got, "ada")
	}
	if f.table != "CourseSessions" {
		t.Errorf("table = %q, want %q", f.table, "CourseSessions")
	}

	f.err = errors.New("aborted")
	if _, err := s.DestroySessionOIDC(context.Background(), "sid-1"); err == nil {
		t.Errorf("OIDC.DestroySessionOIDC() error = nil, want error")
	}
	if err := s.DestroySession(context.Background(), ccc.NilUUID); err == nil {
		t.Errorf("OIDC.DestroySession() error = nil, want error")
	}
	if err := s.UpdateSessionActivity(context.Background(), ccc.NilUUID); err == nil {
		t.Errorf("OIDC.UpdateSessionActivity() error = nil, want error")
	}
}
