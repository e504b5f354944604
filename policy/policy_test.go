package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cccteam/coursegate/role"
	"github.com/google/go-cmp/cmp"
)

type wantRoute struct {
	Path  string
	Roles []role.Role
}

func routes(p *Policy) []wantRoute {
	r := make([]wantRoute, 0, len(p.Routes))
	for _, route := range p.Routes {
		r = append(r, wantRoute{Path: route.Path, Roles: route.Allowed.Roles()})
	}

	return r
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		doc         string
		wantLanding string
		wantSignIn  string
		wantRoutes  []wantRoute
		wantErr     string
	}{
		{
			name: "full policy",
			doc: `
landing: /home
signIn: /sign-in
routes:
  - path: /dashboard
  - path: /add-course
    allowedRoles: [instructor, admin]
  - path: /admin
    allowedRoles: [admin]
  - path: /archive
    allowedRoles: []
`,
			wantLanding: "/home",
			wantSignIn:  "/sign-in",
			wantRoutes: []wantRoute{
				{Path: "/dashboard", Roles: []role.Role{role.Student, role.Instructor, role.Admin}},
				{Path: "/add-course", Roles: []role.Role{role.Instructor, role.Admin}},
				{Path: "/admin", Roles: []role.Role{role.Admin}},
				{Path: "/archive", Roles: []role.Role{}},
			},
		},
		{
			name:        "defaults",
			doc:         "routes:\n  - path: /courses/{courseID}\n",
			wantLanding: "/dashboard",
			wantSignIn:  "/auth/login",
			wantRoutes: []wantRoute{
				{Path: "/courses/{courseID}", Roles: []role.Role{role.Student, role.Instructor, role.Admin}},
			},
		},
		{
			name:    "unknown role",
			doc:     "routes:\n  - path: /add-course\n    allowedRoles: [teacher]\n",
			wantErr: `unknown role "teacher"`,
		},
		{
			name:    "relative path",
			doc:     "routes:\n  - path: add-course\n",
			wantErr: "must start with /",
		},
		{
			name:    "duplicate path",
			doc:     "routes:\n  - path: /a\n  - path: /a\n",
			wantErr: "duplicate path",
		},
		{
			name:    "same pattern with renamed parameter",
			doc:     "routes:\n  - path: /courses/{id}\n  - path: /courses/{courseID}\n    allowedRoles: [admin]\n",
			wantErr: `matches the same requests as "/courses/{id}"`,
		},
		{
			name:    "unclosed parameter",
			doc:     "routes:\n  - path: /courses/{id\n",
			wantErr: "invalid route pattern",
		},
		{
			name:    "wildcard before the end",
			doc:     "routes:\n  - path: /a/*/b\n",
			wantErr: "invalid route pattern",
		},
		{
			name:        "parameters with different regexps",
			doc:         "routes:\n  - path: '/courses/{id:[0-9]+}'\n  - path: '/courses/{slug:[a-z-]+}'\n    allowedRoles: [admin]\n",
			wantLanding: "/dashboard",
			wantSignIn:  "/auth/login",
			wantRoutes: []wantRoute{
				{Path: "/courses/{id:[0-9]+}", Roles: []role.Role{role.Student, role.Instructor, role.Admin}},
				{Path: "/courses/{slug:[a-z-]+}", Roles: []role.Role{role.Admin}},
			},
		},
		{
			name:    "unknown field",
			doc:     "routes:\n  - path: /a\n    roles: [admin]\n",
			wantErr: "field roles not found",
		},
		{
			name:    "relative landing",
			doc:     "landing: dashboard\n",
			wantErr: "landing",
		},
		{
			name:    "empty document",
			doc:     "",
			wantErr: "empty policy document",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(strings.NewReader(tt.doc))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Parse() error = %v, want error containing %q", err, tt.wantErr)
				}

				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.Landing != tt.wantLanding {
				t.Errorf("Policy.Landing = %q, want %q", got.Landing, tt.wantLanding)
			}
			if got.SignIn != tt.wantSignIn {
				t.Errorf("Policy.SignIn = %q, want %q", got.SignIn, tt.wantSignIn)
			}
			if diff := cmp.Diff(tt.wantRoutes, routes(got)); diff != "" {
				t.Errorf("Parse() routes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_patternShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    string
	}{
		{pattern: "/dashboard", want: "/dashboard"},
		{pattern: "/courses/{courseID}", want: "/courses/{}"},
		{pattern: "/courses/{id}/modules/{moduleID}", want: "/courses/{}/modules/{}"},
		{pattern: "/courses/{id:[0-9]+}", want: "/courses/{:[0-9]+}"},
		{pattern: "/codes/{code:[A-Z]{3}}", want: "/codes/{:[A-Z]{3}}"},
		{pattern: "/assets/*", want: "/assets/*"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()

			if got := patternShape(tt.pattern); got != tt.want {
				t.Errorf("patternShape(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "routes.yaml")
	if err := os.WriteFile(path, []byte("routes:\n  - path: /add-course\n    allowedRoles: [instructor]\n"), 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	r, ok := p.Route("/add-course")
	if !ok {
		t.Fatalf("Policy.Route() not found")
	}
	if !r.Allowed.Permits(role.Admin) || r.Allowed.Permits(role.Student) {
		t.Errorf("Route.Allowed = %s, want instructor", r.Allowed)
	}
	if _, ok := p.Route("/missing"); ok {
		t.Errorf("Policy.Route(/missing) found, want not found")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load() missing file error = nil")
	}
}
