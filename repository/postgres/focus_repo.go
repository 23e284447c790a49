package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

type focusRepository struct {
	pool *pgxpool.Pool
}

// NewFocusRepository instantiates a Postgres-backed focus session repository.
func NewFocusRepository(pool *pgxpool.Pool) repository.FocusRepository {
	return &focusRepository{pool: pool}
}

func (r *focusRepository) AddSession(ctx context.Context, session *domain.FocusSession) (*domain.FocusSession, error) {
	if session == nil || session.DurationSeconds <= 0 {
		return nil, domain.ErrInvalidPayload
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}

	const query = `
	INSERT INTO focus_sessions (id, user_id, duration_seconds, started_at)
	VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, query, session.ID, session.UserID, session.DurationSeconds, session.StartedAt); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *focusRepository) SessionsBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.FocusSession, error) {
	const query = `
	SELECT id, user_id, duration_seconds, started_at
	FROM focus_sessions
	WHERE user_id = $1 AND started_at >= $2 AND started_at < $3
	ORDER BY started_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.FocusSession
	for rows.Next() {
		var s domain.FocusSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.DurationSeconds, &s.StartedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
