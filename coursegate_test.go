package coursegate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/coursegate/access"
	"github.com/cccteam/coursegate/identity"
	"github.com/cccteam/coursegate/internal/basesession"
	"github.com/cccteam/coursegate/internal/oidc"
	"github.com/cccteam/coursegate/mock/mock_cookie"
	"github.com/cccteam/coursegate/mock/mock_oidc"
	"github.com/cccteam/coursegate/mock/mock_sessionstorage"
	"github.com/cccteam/coursegate/role"
	"github.com/cccteam/httpio"
	"github.com/go-playground/errors/v5"
	"go.uber.org/mock/gomock"
)

const cookieKey = "Rsgb6WsDvBsMQ5IJr2WJjVLCPO+o9WW6SdVktdaaq9O0WFA0Hc/EmJeOwCGV6LIqG8ue3iSZ/lycpv8ZNKvWjWU42hZnlO15vYANZG89R1ncjmu4KStldFuP/r0RFhZa"

var testSessionID = ccc.Must(ccc.UUIDFromString("de6e1a12-2d4d-4c4d-aaf1-d82cb9a9eff5"))

func testHandle(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = handler(w, r)
	}
}

type mocks struct {
	oidc    *mock_oidc.MockAuthenticator
	cookie  *mock_cookie.MockHandler
	storage *mock_sessionstorage.MockOIDCStore
}

func newTestOIDC(t *testing.T) (*OIDC, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		oidc:    mock_oidc.NewMockAuthenticator(ctrl),
		cookie:  mock_cookie.NewMockHandler(ctrl),
		storage: mock_sessionstorage.NewMockOIDCStore(ctrl),
	}

	hub := identity.NewHub()
	o := &OIDC{
		oidc:    m.oidc,
		storage: m.storage,
		hub:     hub,
		baseSession: &basesession.BaseSession{
			Handle:         testHandle,
			CookieHandler:  m.cookie,
			SessionTimeout: defaultSessionTimeout,
			Storage:        m.storage,
			Hub:            hub,
		},
	}
	o.guard = o.newGuard()

	return o, m
}

func TestNewOIDC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		options []Option
		wantErr bool
	}{
		{
			name: "success",
			key:  cookieKey,
			options: []Option{
				WithCookieName("coursegate"),
				WithSessionTimeout(time.Hour),
				WithLoginURL("/sign-in"),
				WithRoleClaim("app_metadata.role"),
			},
		},
		{
			name:    "invalid cookie key",
			key:     "c2hvcnQ=",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			o, err := NewOIDC(mock_sessionstorage.NewMockOIDCStore(ctrl), tt.key, "https://issuer.example.com", "client", "secret", "https://app.example.com/callback", tt.options...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewOIDC() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if o.baseSession.SessionTimeout != time.Hour {
				t.Errorf("SessionTimeout = %v, want %v", o.baseSession.SessionTimeout, time.Hour)
			}
			if got := o.oidc.LoginURL(); got != "/sign-in" {
				t.Errorf("LoginURL() = %q, want /sign-in", got)
			}
			if o.Guard() == nil || o.Hub() == nil {
				t.Errorf("Guard() or Hub() is nil")
			}
			if o.Hub().Loaded() {
				t.Errorf("Hub().Loaded() = true before Warm")
			}
		})
	}
}

func TestOIDC_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		prepare      func(mocks)
		wantStatus   int
		wantLocation string
	}{
		{
			name: "fails to get the auth code url",
			prepare: func(m mocks) {
				m.oidc.EXPECT().AuthCodeURL(gomock.Any(), gomock.Any(), "/add-course").Return("", errors.New("discovery failed"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "success initiating login",
			prepare: func(m mocks) {
				m.oidc.EXPECT().AuthCodeURL(gomock.Any(), gomock.Any(), "/add-course").Return("https://issuer.example.com/authorize?state=abc", nil)
			},
			wantStatus:   http.StatusFound,
			wantLocation: "https://issuer.example.com/authorize?state=abc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o, m := newTestOIDC(t)
			tt.prepare(m)

			w := httptest.NewRecorder()
			o.Login().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/login?returnUrl=%2Fadd-course", http.NoBody))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}

func TestOIDC_CallbackOIDC(t *testing.T) {
	t.Parallel()

	ident := &oidc.Identity{Username: "ada", SID: "sid-1", RoleMetadata: "instructor", ReturnURL: "/add-course"}

	tests := []struct {
		name         string
		prepare      func(mocks)
		wantLocation string
		wantPushed   bool
	}{
		{
			name: "fails to verify callback request",
			prepare: func(m mocks) {
				m.oidc.EXPECT().LoginURL().Return("/auth/login")
				m.oidc.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, httpio.NewForbiddenMessage("invalid state"))
			},
			wantLocation: fmt.Sprintf("/auth/login?message=%s", url.QueryEscape("invalid state")),
		},
		{
			name: "fails to create new session",
			prepare: func(m mocks) {
				m.oidc.EXPECT().LoginURL().Return("/auth/login")
				m.oidc.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(ident, nil)
				m.storage.EXPECT().NewSession(gomock.Any(), "ada", "sid-1", "instructor").Return(ccc.NilUUID, errors.New("insert failed"))
			},
			wantLocation: fmt.Sprintf("/auth/login?message=%s", url.QueryEscape("Internal Server Error")),
		},
		{
			name: "fails to create new auth cookie",
			prepare: func(m mocks) {
				m.oidc.EXPECT().LoginURL().Return("/auth/login")
				m.oidc.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(ident, nil)
				m.storage.EXPECT().NewSession(gomock.Any(), "ada", "sid-1", "instructor").Return(testSessionID, nil)
				m.cookie.EXPECT().NewAuthCookie(gomock.Any(), false, testSessionID).Return(nil, errors.New("encode failed"))
			},
			wantLocation: fmt.Sprintf("/auth/login?message=%s", url.QueryEscape("Internal Server Error")),
		},
		{
			name: "fails to create xsrf cookie",
			prepare: func(m mocks) {
				m.oidc.EXPECT().LoginURL().Return("/auth/login")
				m.oidc.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(ident, nil)
				m.storage.EXPECT().NewSession(gomock.Any(), "ada", "sid-1", "instructor").Return(testSessionID, nil)
				m.cookie.EXPECT().NewAuthCookie(gomock.Any(), false, testSessionID).Return(nil, nil)
				m.cookie.EXPECT().CreateXSRFTokenCookie(gomock.Any(), testSessionID).Return(errors.New("encode failed"))
			},
			wantLocation: fmt.Sprintf("/auth/login?message=%s", url.QueryEscape("Internal Server Error")),
		},
		{
			name: "success",
			prepare: func(m mocks) {
				m.oidc.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(ident, nil)
				m.storage.EXPECT().NewSession(gomock.Any(), "ada", "sid-1", "instructor").Return(testSessionID, nil)
				m.cookie.EXPECT().NewAuthCookie(gomock.Any(), false, testSessionID).Return(nil, nil)
				m.cookie.EXPECT().CreateXSRFTokenCookie(gomock.Any(), testSessionID).Return(nil)
			},
			wantLocation: "/add-course",
			wantPushed:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			o, m := newTestOIDC(t)
			tt.prepare(m)

			o.hub.MarkLoaded()
			updates := o.hub.Subscribe(ctx, access.Session{SubjectID: "ada"})
			<-updates

			w := httptest.NewRecorder()
			o.CallbackOIDC().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=xyz", http.NoBody))

			if w.Code != http.StatusFound {
				t.Errorf("status = %d, want %d", w.Code, http.StatusFound)
			}
			if got := w.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}

			select {
			case got := <-updates:
				if !tt.wantPushed {
					t.Fatalf("unexpected update %+v", got)
				}
				if !got.IsSignedIn || got.RoleMetadata != "instructor" {
					t.Errorf("pushed session = %+v, want signed in instructor", got)
				}
			default:
				if tt.wantPushed {
					t.Errorf("CallbackOIDC() did not push a signed in session")
				}
			}
		})
	}
}

func TestOIDC_FrontChannelLogout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		prepare    func(mocks)
		wantStatus int
		wantPushed bool
	}{
		{
			name:       "missing sid",
			target:     "/auth/frontchannel-logout",
			prepare:    func(mocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "sessions destroyed",
			target: "/auth/frontchannel-logout?sid=sid-1",
			prepare: func(m mocks) {
				m.storage.EXPECT().DestroySessionOIDC(gomock.Any(), "sid-1").Return("ada", nil)
			},
			wantStatus: http.StatusOK,
			wantPushed: true,
		},
		{
			name:   "unknown sid",
			target: "/auth/frontchannel-logout?sid=sid-2",
			prepare: func(m mocks) {
				m.storage.EXPECT().DestroySessionOIDC(gomock.Any(), "sid-2").Return("", nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "storage failure is logged",
			target: "/auth/frontchannel-logout?sid=sid-1",
			prepare: func(m mocks) {
				m.storage.EXPECT().DestroySessionOIDC(gomock.Any(), "sid-1").Return("", errors.New("connection reset"))
			},
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			o, m := newTestOIDC(t)
			tt.prepare(m)

			o.hub.MarkLoaded()
			updates := o.hub.Subscribe(ctx, access.Session{IsSignedIn: true, SubjectID: "ada", RoleMetadata: "student"})
			<-updates

			w := httptest.NewRecorder()
			o.FrontChannelLogout().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, http.NoBody))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			select {
			case got := <-updates:
				if !tt.wantPushed {
					t.Fatalf("unexpected update %+v", got)
				}
				if got.IsSignedIn {
					t.Errorf("pushed session = %+v, want signed out", got)
				}
			default:
				if tt.wantPushed {
					t.Errorf("FrontChannelLogout() did not push a signed out session")
				}
			}
		})
	}
}

func TestOIDC_Warm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		warmErr    error
		wantErr    bool
		wantLoaded bool
	}{
		{name: "provider ready", wantLoaded: true},
		{name: "canceled before ready", warmErr: context.Canceled, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o, m := newTestOIDC(t)
			m.oidc.EXPECT().Warm(gomock.Any(), time.Second).Return(tt.warmErr)

			err := o.Warm(context.Background(), time.Second)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OIDC.Warm() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := o.Hub().Loaded(); got != tt.wantLoaded {
				t.Errorf("Hub().Loaded() = %v, want %v", got, tt.wantLoaded)
			}
		})
	}
}

func TestOIDC_GuardPendingUntilWarm(t *testing.T) {
	t.Parallel()

	o, m := newTestOIDC(t)
	m.oidc.EXPECT().Warm(gomock.Any(), gomock.Any()).Return(nil)

	h := o.Guard().Require(role.DefaultSet())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", http.NoBody))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status before Warm = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	if err := o.Warm(context.Background(), time.Second); err != nil {
		t.Fatalf("OIDC.Warm() error = %v", err)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", http.NoBody))
	if w.Code != http.StatusSeeOther {
		t.Errorf("status after Warm = %d, want %d", w.Code, http.StatusSeeOther)
	}
}
