package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"parkingportal/internal/backend"
	"parkingportal/internal/db"
	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/session"

	"github.com/google/uuid"
)

type AuthBackend interface {
	Login(ctx context.Context, creds entities.LoginRequest) (*entities.LoginResponse, error)
	Register(ctx context.Context, req entities.RegisterRequest) error
	Logout(ctx context.Context, creds backend.Credentials) error
	Profile(ctx context.Context, creds backend.Credentials) (*entities.Profile, error)
	Refresh(ctx context.Context, refresh string) (string, error)
}

// accessTokenLeeway refreshes access tokens this close to expiry before use.
const accessTokenLeeway = 30 * time.Second

type SessionStore interface {
	Create(ctx context.Context, s db.PortalSession) error
	Get(ctx context.Context, key string) (*db.PortalSession, error)
	UpdateAccessToken(ctx context.Context, key, access string) error
	Delete(ctx context.Context, key string) error
}

// SessionEnded is notified on logout so per-session state can be dropped.
type SessionEnded interface {
	EndSession(ctx context.Context, key string)
}

type AuthService interface {
	Register(ctx context.Context, req entities.RegisterRequest) error
	Login(ctx context.Context, creds entities.LoginRequest, admin bool) (*session.Context, string, error)
	Logout(ctx context.Context, sess *session.Context) error
	Load(ctx context.Context, cookie string) (*session.Context, error)
	SaveTokens(ctx context.Context, sess *session.Context) error
}

type authService struct {
	backend  AuthBackend
	sessions SessionStore
	signer   session.Signer
	onEnd    []SessionEnded
	now      func() time.Time
}

func NewAuthService(be AuthBackend, sessions SessionStore, signer session.Signer, onEnd ...SessionEnded) AuthService {
	return &authService{backend: be, sessions: sessions, signer: signer, onEnd: onEnd, now: time.Now}
}

func (s *authService) Register(ctx context.Context, req entities.RegisterRequest) error {
	switch {
	case req.Username == "":
		return apperrors.NewValidationError("username", "is required")
	case req.Email == "":
		return apperrors.NewValidationError("email", "is required")
	case len(req.Password) < 8:
		return apperrors.NewValidationError("password", "must be at least 8 characters")
	}
	if err := s.backend.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Login signs in against the backend and opens a portal session. The user
// console refuses superusers; the admin console accepts only superusers.
func (s *authService) Login(ctx context.Context, creds entities.LoginRequest, admin bool) (*session.Context, string, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, "", apperrors.NewValidationError("username", "username and password are required")
	}
	resp, err := s.backend.Login(ctx, creds)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if admin && !resp.User.IsSuperuser {
		return nil, "", apperrors.ErrForbidden("Access denied. Admins only.")
	}
	if !admin && resp.User.IsSuperuser {
		return nil, "", apperrors.ErrForbidden("Admins are not allowed to sign in here.")
	}

	now := s.now()
	sess := session.New(uuid.NewString(), resp.User, resp.Access, resp.Refresh, now.Add(s.signer.TTL()))
	if profile, err := s.backend.Profile(ctx, sess); err != nil {
		log.Printf("Could not load profile for %s: %v", resp.User.Username, err)
	} else {
		sess.User.Email = profile.Email
		sess.User.FullName = profile.FullName
	}

	err = s.sessions.Create(ctx, db.PortalSession{
		Key:          sess.Key,
		UserID:       sess.User.ID,
		Username:     sess.User.Username,
		Email:        sess.User.Email,
		FullName:     sess.User.FullName,
		IsSuperuser:  sess.User.IsSuperuser,
		IsStaff:      sess.User.IsStaff,
		AccessToken:  sess.AccessToken(),
		RefreshToken: sess.RefreshToken(),
		CreatedAt:    now,
		ExpiresAt:    sess.ExpiresAt,
	})
	if err != nil {
		return nil, "", err
	}
	sess.MarkSaved()

	cookie, err := s.signer.Sign(sess.Key, now)
	if err != nil {
		return nil, "", err
	}
	return sess, cookie, nil
}

// Logout blacklists the refresh token on the backend and drops the portal
// session. A backend failure is logged; the local session is removed anyway.
func (s *authService) Logout(ctx context.Context, sess *session.Context) error {
	if err := s.backend.Logout(ctx, sess); err != nil {
		log.Printf("Logout failed on backend for %s: %v", sess.User.Username, err)
	}
	for _, h := range s.onEnd {
		h.EndSession(ctx, sess.Key)
	}
	sess.Clear()
	return s.sessions.Delete(ctx, sess.Key)
}

// Load resolves a session cookie. It returns nil, nil for an unknown or expired session.
func (s *authService) Load(ctx context.Context, cookie string) (*session.Context, error) {
	key, err := s.signer.Verify(cookie)
	if err != nil {
		return nil, nil
	}
	row, err := s.sessions.Get(ctx, key)
	if err != nil || row == nil {
		return nil, err
	}
	user := entities.User{
		ID:          row.UserID,
		Username:    row.Username,
		Email:       row.Email,
		FullName:    row.FullName,
		IsSuperuser: row.IsSuperuser,
		IsStaff:     row.IsStaff,
	}
	sess := session.New(row.Key, user, row.AccessToken, row.RefreshToken, row.ExpiresAt)

	if exp, ok := session.AccessTokenExpiry(row.AccessToken); ok && s.now().Add(accessTokenLeeway).After(exp) {
		access, err := s.backend.Refresh(ctx, row.RefreshToken)
		if err != nil {
			log.Printf("Proactive token refresh failed for %s: %v", row.Username, err)
		} else {
			sess.SetAccessToken(access)
		}
	}
	return sess, nil
}

// SaveTokens persists an access token refreshed during the request.
func (s *authService) SaveTokens(ctx context.Context, sess *session.Context) error {
	if sess == nil || !sess.Dirty() {
		return nil
	}
	if err := s.sessions.UpdateAccessToken(ctx, sess.Key, sess.AccessToken()); err != nil {
		return err
	}
	sess.MarkSaved()
	return nil
}
