package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

type streakRepository struct {
	pool *pgxpool.Pool
}

// NewStreakRepository instantiates a Postgres-backed streak repository.
func NewStreakRepository(pool *pgxpool.Pool) repository.StreakRepository {
	return &streakRepository{pool: pool}
}

func (r *streakRepository) Get(ctx context.Context, userID string) (domain.StreakRecord, error) {
	const query = `
	SELECT current, longest, COALESCE(last_date, '')
	FROM streaks
	WHERE user_id = $1
	`
	record := domain.StreakRecord{UserID: userID}
	err := r.pool.QueryRow(ctx, query, userID).Scan(&record.Current, &record.Longest, &record.LastDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// First mark ever: zero record, no error.
			return domain.StreakRecord{UserID: userID}, nil
		}
		return domain.StreakRecord{}, err
	}
	return record, nil
}

func (r *streakRepository) Save(ctx context.Context, record domain.StreakRecord) error {
	if record.UserID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO streaks (user_id, current, longest, last_date)
	VALUES ($1, $2, $3, NULLIF($4, ''))
	ON CONFLICT (user_id) DO UPDATE
	SET current = EXCLUDED.current,
		longest = EXCLUDED.longest,
		last_date = EXCLUDED.last_date
	`
	_, err := r.pool.Exec(ctx, query, record.UserID, record.Current, record.Longest, record.LastDate)
	return err
}
