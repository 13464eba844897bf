package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parkingportal/internal/db"
)

// PendingReservationRepository stores at most one pending reservation per session.
type PendingReservationRepository struct {
	DB *sql.DB
}

func NewPendingReservationRepository(db *sql.DB) *PendingReservationRepository {
	return &PendingReservationRepository{DB: db}
}

// Save writes the session's pending payload, replacing any previous one.
func (r *PendingReservationRepository) Save(ctx context.Context, p db.PendingReservation) error {
	query := `
	INSERT INTO pending_reservations (session_key, wizard_id, payload, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (session_key) DO UPDATE
	SET wizard_id = EXCLUDED.wizard_id, payload = EXCLUDED.payload, created_at = EXCLUDED.created_at`

	if _, err := r.DB.ExecContext(ctx, query, p.SessionKey, p.WizardID, string(p.Payload), p.CreatedAt); err != nil {
		return fmt.Errorf("error saving pending reservation: %w", err)
	}
	return nil
}

// Take reads and deletes the session's pending payload in one statement, so
// two concurrent confirmations cannot both receive it. It returns nil when the
// slot is empty.
func (r *PendingReservationRepository) Take(ctx context.Context, sessionKey string) (*db.PendingReservation, error) {
	query := `
	DELETE FROM pending_reservations
	WHERE session_key = $1
	RETURNING session_key, wizard_id, payload, created_at`

	var p db.PendingReservation
	err := r.DB.QueryRowContext(ctx, query, sessionKey).Scan(&p.SessionKey, &p.WizardID, &p.Payload, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error taking pending reservation: %w", err)
	}
	return &p, nil
}

func (r *PendingReservationRepository) Delete(ctx context.Context, sessionKey string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM pending_reservations WHERE session_key = $1`, sessionKey); err != nil {
		return fmt.Errorf("error deleting pending reservation: %w", err)
	}
	return nil
}

// DeleteOlderThan removes payloads abandoned before cutoff.
func (r *PendingReservationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM pending_reservations WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error deleting abandoned pending reservations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}
