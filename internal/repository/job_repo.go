package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetExpiredSessionKeys lists sessions whose expiry has passed.
func (r *JobRepository) GetExpiredSessionKeys(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT session_key FROM portal_sessions WHERE expires_at < NOW()`)
	if err != nil {
		return nil, fmt.Errorf("error querying expired sessions: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("error scanning session key: %w", err)
		}
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return keys, nil
}

// DeleteSessions removes the given sessions together with any pending
// reservation they still hold.
func (r *JobRepository) DeleteSessions(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting session cleanup: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_reservations WHERE session_key = ANY($1)`, pq.Array(keys)); err != nil {
		return fmt.Errorf("error deleting pending reservations of expired sessions: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM portal_sessions WHERE session_key = ANY($1)`, pq.Array(keys))
	if err != nil {
		return fmt.Errorf("error deleting expired sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing session cleanup: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Deleted %d expired sessions", rowsAffected)
	}
	return nil
}
