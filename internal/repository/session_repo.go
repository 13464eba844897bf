package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkingportal/internal/db"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, s db.PortalSession) error {
	query := `
	INSERT INTO portal_sessions
		(session_key, user_id, username, email, full_name, is_superuser, is_staff, access_token, refresh_token, created_at, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.DB.ExecContext(ctx, query,
		s.Key, s.UserID, s.Username, s.Email, s.FullName, s.IsSuperuser, s.IsStaff,
		s.AccessToken, s.RefreshToken, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// Get returns the unexpired session with key, or nil.
func (r *SessionRepository) Get(ctx context.Context, key string) (*db.PortalSession, error) {
	query := `
	SELECT session_key, user_id, username, email, full_name, is_superuser, is_staff,
	       access_token, refresh_token, created_at, expires_at
	FROM portal_sessions
	WHERE session_key = $1 AND expires_at > NOW()`

	var s db.PortalSession
	err := r.DB.QueryRowContext(ctx, query, key).Scan(
		&s.Key, &s.UserID, &s.Username, &s.Email, &s.FullName, &s.IsSuperuser, &s.IsStaff,
		&s.AccessToken, &s.RefreshToken, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepository) UpdateAccessToken(ctx context.Context, key, access string) error {
	if _, err := r.DB.ExecContext(ctx, `UPDATE portal_sessions SET access_token = $1 WHERE session_key = $2`, access, key); err != nil {
		return fmt.Errorf("error updating session token: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM portal_sessions WHERE session_key = $1`, key); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
