package access

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cccteam/coursegate/role"
	"github.com/go-playground/errors/v5"
	"github.com/google/go-cmp/cmp"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
	err     error
}

func (r *recordingNotifier) Notify(_ context.Context, n Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)

	return r.err
}

func (r *recordingNotifier) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := make([]string, 0, len(r.notices))
	for _, n := range r.notices {
		m = append(m, n.Message)
	}

	return m
}

func signedIn(metadata any) Session {
	return Session{IsLoaded: true, IsSignedIn: true, SubjectID: "user-1", RoleMetadata: metadata}
}

func TestDeriveRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		session      Session
		want         role.Role
		wantResolved bool
	}{
		{name: "not loaded", session: Session{IsSignedIn: true, RoleMetadata: "admin"}, want: role.None},
		{name: "signed out", session: Session{IsLoaded: true, RoleMetadata: "admin"}, want: role.None, wantResolved: true},
		{name: "admin", session: signedIn("admin"), want: role.Admin, wantResolved: true},
		{name: "instructor", session: signedIn("instructor"), want: role.Instructor, wantResolved: true},
		{name: "student", session: signedIn("student"), want: role.Student, wantResolved: true},
		{name: "missing metadata", session: signedIn(nil), want: role.Student, wantResolved: true},
		{name: "number", session: signedIn(42), want: role.Student, wantResolved: true},
		{name: "unknown name", session: signedIn("root"), want: role.Student, wantResolved: true},
		{name: "object", session: signedIn(map[string]any{"role": "admin"}), want: role.Student, wantResolved: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, resolved := DeriveRole(tt.session)
			if got != tt.want {
				t.Errorf("DeriveRole() role = %q, want %q", got, tt.want)
			}
			if resolved != tt.wantResolved {
				t.Errorf("DeriveRole() resolved = %v, want %v", resolved, tt.wantResolved)
			}
		})
	}
}

func TestDeriveRole_closedSet(t *testing.T) {
	t.Parallel()

	inputs := []any{nil, "", "student", "instructor", "admin", "ADMIN", "owner", 0, 42, -1, 1.5, true, false, []string{"admin"}, map[string]string{}, struct{}{}, role.Admin}
	for _, in := range inputs {
		for _, s := range []Session{signedIn(in), {IsLoaded: true, RoleMetadata: in}} {
			r, resolved := DeriveRole(s)
			if !resolved {
				t.Fatalf("DeriveRole(%#v) unresolved for a loaded session", s)
			}
			if s.IsSignedIn && !r.Valid() {
				t.Errorf("DeriveRole(%#v) = %q, want a valid role", s, r)
			}
			if !s.IsSignedIn && r != role.None {
				t.Errorf("DeriveRole(%#v) = %q, want none", s, r)
			}
		}
	}
}

func TestHasCapability(t *testing.T) {
	t.Parallel()

	sets := []role.Set{role.NewSet(), role.DefaultSet(), role.NewSet(role.Student), role.NewSet(role.Instructor), role.NewSet(role.Admin), role.NewSet(role.Instructor, role.Admin)}
	for _, set := range sets {
		if HasCapability(role.None, set) {
			t.Errorf("HasCapability(None, %s) = true, want false", set)
		}
		for _, r := range role.All() {
			if set.Contains(r) && !HasCapability(r, set) {
				t.Errorf("HasCapability(%s, %s) = false for a listed role", r, set)
			}
			if set.Empty() && HasCapability(r, set) {
				t.Errorf("HasCapability(%s, empty) = true, want false", r)
			}
		}
		if set.Contains(role.Instructor) && !HasCapability(role.Admin, set) {
			t.Errorf("HasCapability(admin, %s) = false, admin must inherit instructor", set)
		}
	}

	if HasCapability(role.Student, role.NewSet(role.Instructor, role.Admin)) {
		t.Errorf("HasCapability(student, instructor or admin) = true, want false")
	}
}

func TestEvaluateAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session Session
		allowed role.Set
		want    Outcome
	}{
		{
			name:    "scenario A: not loaded is pending",
			session: Session{},
			allowed: role.DefaultSet(),
			want:    Outcome{Decision: Pending, State: AwaitingSession},
		},
		{
			name:    "scenario B: signed out",
			session: Session{IsLoaded: true},
			allowed: role.NewSet(role.Instructor),
			want:    Outcome{Decision: Denied, State: Unauthenticated},
		},
		{
			name:    "scenario C: student refused instructor view",
			session: signedIn("student"),
			allowed: role.NewSet(role.Instructor, role.Admin),
			want:    Outcome{Decision: Denied, State: Unauthorized, Role: role.Student},
		},
		{
			name:    "scenario D: admin granted",
			session: signedIn("admin"),
			allowed: role.NewSet(role.Instructor, role.Admin),
			want:    Outcome{Decision: Granted, State: Authorized, Role: role.Admin},
		},
		{
			name:    "scenario E: malformed metadata defaults to student",
			session: signedIn(42),
			allowed: role.DefaultSet(),
			want:    Outcome{Decision: Granted, State: Authorized, Role: role.Student},
		},
		{
			name:    "admin inherits instructor",
			session: signedIn("admin"),
			allowed: role.NewSet(role.Instructor),
			want:    Outcome{Decision: Granted, State: Authorized, Role: role.Admin},
		},
		{
			name:    "empty set denies admin",
			session: signedIn("admin"),
			allowed: role.NewSet(),
			want:    Outcome{Decision: Denied, State: Unauthorized, Role: role.Admin},
		},
		{
			name:    "pending wins over missing sign in",
			session: Session{IsLoaded: false, IsSignedIn: false},
			allowed: role.NewSet(role.Admin),
			want:    Outcome{Decision: Pending, State: AwaitingSession},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := EvaluateAccess(tt.session, tt.allowed)
			if !got.Equal(tt.want) {
				t.Errorf("EvaluateAccess() = %+v, want %+v", got, tt.want)
			}
			if again := EvaluateAccess(tt.session, tt.allowed); !again.Equal(got) {
				t.Errorf("EvaluateAccess() not idempotent: %+v then %+v", got, again)
			}
			if diff := cmp.Diff(tt.allowed.Roles(), got.Required.Roles()); diff != "" {
				t.Errorf("Outcome.Required mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNavigation_Evaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		allowed      role.Set
		sessions     []Session
		wantMessages []string
		wantLast     Outcome
	}{
		{
			name:         "notice emitted once across re-evaluations",
			allowed:      role.NewSet(role.Instructor, role.Admin),
			sessions:     []Session{signedIn("student"), signedIn("student"), signedIn("student")},
			wantMessages: []string{"requires one of: instructor or admin"},
			wantLast:     Outcome{Decision: Denied, State: Unauthorized, Role: role.Student},
		},
		{
			name:         "granted emits no notice",
			allowed:      role.NewSet(role.Instructor, role.Admin),
			sessions:     []Session{signedIn("admin"), signedIn("admin")},
			wantMessages: []string{},
			wantLast:     Outcome{Decision: Granted, State: Authorized, Role: role.Admin},
		},
		{
			name:         "pending and signed out emit no notice",
			allowed:      role.NewSet(role.Admin),
			sessions:     []Session{{}, {IsLoaded: true}},
			wantMessages: []string{},
			wantLast:     Outcome{Decision: Denied, State: Unauthenticated},
		},
		{
			name:         "notice after load completes",
			allowed:      role.NewSet(role.Admin),
			sessions:     []Session{{IsSignedIn: true, SubjectID: "user-1", RoleMetadata: "instructor"}, signedIn("instructor"), signedIn("instructor")},
			wantMessages: []string{"requires one of: admin"},
			wantLast:     Outcome{Decision: Denied, State: Unauthorized, Role: role.Instructor},
		},
		{
			name:         "leaving and re-entering unauthorized keeps a single notice",
			allowed:      role.NewSet(role.Admin),
			sessions:     []Session{signedIn("student"), signedIn("admin"), signedIn("student")},
			wantMessages: []string{"requires one of: admin"},
			wantLast:     Outcome{Decision: Denied, State: Unauthorized, Role: role.Student},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := &recordingNotifier{}
			nav := NewNavigation(tt.allowed, n)

			var got Outcome
			for _, s := range tt.sessions {
				got = nav.Evaluate(context.Background(), s)
			}
			if !got.Equal(tt.wantLast) {
				t.Errorf("Navigation.Evaluate() = %+v, want %+v", got, tt.wantLast)
			}
			if diff := cmp.Diff(tt.wantMessages, n.messages()); diff != "" {
				t.Errorf("notices mismatch (-want +got):\n%s", diff)
			}
			if nav.Notified() != (len(tt.wantMessages) > 0) {
				t.Errorf("Navigation.Notified() = %v", nav.Notified())
			}
		})
	}
}

func TestNavigation_EvaluateNotifierError(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{err: errors.New("toast channel closed")}
	nav := NewNavigation(role.NewSet(role.Admin), n)

	got := nav.Evaluate(context.Background(), signedIn("student"))
	if got.Decision != Denied || got.State != Unauthorized {
		t.Errorf("Navigation.Evaluate() = %+v, want denied/unauthorized", got)
	}
	nav.Evaluate(context.Background(), signedIn("student"))
	if len(n.messages()) != 1 {
		t.Errorf("notices = %d, want 1", len(n.messages()))
	}
}

func TestNavigation_EvaluateNilNotifier(t *testing.T) {
	t.Parallel()

	nav := NewNavigation(role.NewSet(role.Admin), nil)
	if got := nav.Evaluate(context.Background(), signedIn("student")); got.State != Unauthorized {
		t.Errorf("Navigation.Evaluate() = %+v, want unauthorized", got)
	}
	if !nav.Notified() {
		t.Errorf("Navigation.Notified() = false, want true")
	}
}

func TestWatch(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n := &recordingNotifier{}
	nav := NewNavigation(role.NewSet(role.Instructor), n)
	updates := make(chan Session)
	outcomes := Watch(ctx, nav, updates)

	go func() {
		defer close(updates)
		for _, s := range []Session{
			{},                     // loading
			{},                     // unchanged, suppressed
			signedIn("student"),    // unauthorized
			signedIn("student"),    // unchanged, suppressed
			signedIn("instructor"), // authorized
			{IsLoaded: true},       // signed out
		} {
			select {
			case updates <- s:
			case <-ctx.Done():
				return
			}
		}
	}()

	var got []State
	for o := range outcomes {
		got = append(got, o.State)
	}

	want := []State{AwaitingSession, Unauthorized, Authorized, Unauthenticated}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Watch() states mismatch (-want +got):\n%s", diff)
	}
	if len(n.messages()) != 1 {
		t.Errorf("notices = %d, want 1", len(n.messages()))
	}
}

func TestWatch_contextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	outcomes := Watch(ctx, NewNavigation(role.DefaultSet(), nil), make(chan Session))
	cancel()

	select {
	case _, ok := <-outcomes:
		if ok {
			t.Errorf("Watch() emitted an outcome after cancel")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Watch() did not close after cancel")
	}
}
