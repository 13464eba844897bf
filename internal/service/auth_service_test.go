package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"parkingportal/internal/backend"
	"parkingportal/internal/db"
	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/session"
)

type fakeAuthBackend struct {
	user      entities.User
	refreshed int
	loggedOut int
}

func (f *fakeAuthBackend) Login(context.Context, entities.LoginRequest) (*entities.LoginResponse, error) {
	return &entities.LoginResponse{Access: "access", Refresh: "refresh", User: f.user}, nil
}

func (f *fakeAuthBackend) Register(context.Context, entities.RegisterRequest) error { return nil }

func (f *fakeAuthBackend) Logout(context.Context, backend.Credentials) error {
	f.loggedOut++
	return nil
}

func (f *fakeAuthBackend) Profile(context.Context, backend.Credentials) (*entities.Profile, error) {
	return &entities.Profile{FullName: "Jane Doe", Email: "jane@example.com", Username: f.user.Username}, nil
}

func (f *fakeAuthBackend) Refresh(context.Context, string) (string, error) {
	f.refreshed++
	return "fresh-access", nil
}

type memSessions struct {
	mu   sync.Mutex
	rows map[string]db.PortalSession
}

func (m *memSessions) Create(_ context.Context, s db.PortalSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.Key] = s
	return nil
}

func (m *memSessions) Get(_ context.Context, key string) (*db.PortalSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[key]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSessions) UpdateAccessToken(_ context.Context, key, access string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.rows[key]
	s.AccessToken = access
	m.rows[key] = s
	return nil
}

func (m *memSessions) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, key)
	return nil
}

type endRecorder struct{ keys []string }

func (e *endRecorder) EndSession(_ context.Context, key string) { e.keys = append(e.keys, key) }

func newAuthFixture(user entities.User) (AuthService, *fakeAuthBackend, *memSessions, *endRecorder) {
	be := &fakeAuthBackend{user: user}
	store := &memSessions{rows: map[string]db.PortalSession{}}
	ended := &endRecorder{}
	svc := NewAuthService(be, store, session.NewSigner("test-secret", time.Hour), ended)
	return svc, be, store, ended
}

func TestUserLoginRejectsSuperuser(t *testing.T) {
	svc, _, store, _ := newAuthFixture(entities.User{ID: 1, Username: "root", IsSuperuser: true})

	_, _, err := svc.Login(context.Background(), entities.LoginRequest{Username: "root", Password: "secret"}, false)
	var herr *apperrors.HTTPError
	if !errors.As(err, &herr) || herr.Code != http.StatusForbidden || herr.Message != "Admins are not allowed to sign in here." {
		t.Fatalf("got %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatalf("no session should be stored")
	}
}

func TestAdminLoginRequiresSuperuser(t *testing.T) {
	svc, _, _, _ := newAuthFixture(entities.User{ID: 2, Username: "jdoe"})

	_, _, err := svc.Login(context.Background(), entities.LoginRequest{Username: "jdoe", Password: "secret"}, true)
	var herr *apperrors.HTTPError
	if !errors.As(err, &herr) || herr.Message != "Access denied. Admins only." {
		t.Fatalf("got %v", err)
	}
}

func TestLoginLoadLogout(t *testing.T) {
	svc, be, store, ended := newAuthFixture(entities.User{ID: 2, Username: "jdoe"})
	ctx := context.Background()

	sess, cookie, err := svc.Login(ctx, entities.LoginRequest{Username: "jdoe", Password: "secret"}, false)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.User.FullName != "Jane Doe" || cookie == "" {
		t.Fatalf("session = %+v, cookie = %q", sess.User, cookie)
	}

	loaded, err := svc.Load(ctx, cookie)
	if err != nil || loaded == nil {
		t.Fatalf("Load: %v %v", loaded, err)
	}
	if loaded.Key != sess.Key || loaded.AccessToken() != "access" {
		t.Fatalf("loaded = %+v", loaded)
	}
	if be.refreshed != 0 {
		t.Fatalf("opaque access tokens are not refreshed proactively")
	}

	if s, _ := svc.Load(ctx, "garbage"); s != nil {
		t.Fatalf("invalid cookie should resolve to no session")
	}

	loaded.SetAccessToken("rotated")
	if err := svc.SaveTokens(ctx, loaded); err != nil {
		t.Fatalf("SaveTokens: %v", err)
	}
	if store.rows[sess.Key].AccessToken != "rotated" {
		t.Fatalf("rotated token not persisted")
	}

	if err := svc.Logout(ctx, loaded); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if be.loggedOut != 1 || len(ended.keys) != 1 || len(store.rows) != 0 {
		t.Fatalf("logout incomplete: backend=%d ended=%v rows=%d", be.loggedOut, ended.keys, len(store.rows))
	}
	if s, _ := svc.Load(ctx, cookie); s != nil {
		t.Fatalf("session should be gone after logout")
	}
}

func TestRegisterValidates(t *testing.T) {
	svc, _, _, _ := newAuthFixture(entities.User{})
	err := svc.Register(context.Background(), entities.RegisterRequest{Username: "a", Email: "a@b.c", Password: "short"})
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) || verr.Field != "password" {
		t.Fatalf("got %v", err)
	}
}
