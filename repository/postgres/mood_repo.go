package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

type moodRepository struct {
	pool *pgxpool.Pool
}

// NewMoodRepository instantiates a Postgres-backed mood repository.
func NewMoodRepository(pool *pgxpool.Pool) repository.MoodRepository {
	return &moodRepository{pool: pool}
}

func (r *moodRepository) List(ctx context.Context, userID string, limit int) ([]domain.MoodEntry, error) {
	const query = `
	SELECT id, user_id, mood, note, date
	FROM moods
	WHERE user_id = $1
	ORDER BY date DESC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.MoodEntry
	for rows.Next() {
		var entry domain.MoodEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Mood, &entry.Note, &entry.Date); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *moodRepository) Latest(ctx context.Context, userID string) (*domain.MoodEntry, error) {
	const query = `
	SELECT id, user_id, mood, note, date
	FROM moods
	WHERE user_id = $1
	ORDER BY date DESC
	LIMIT 1
	`
	var entry domain.MoodEntry
	err := r.pool.QueryRow(ctx, query, userID).Scan(&entry.ID, &entry.UserID, &entry.Mood, &entry.Note, &entry.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMoodNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *moodRepository) Create(ctx context.Context, entry *domain.MoodEntry) (*domain.MoodEntry, error) {
	if entry == nil {
		return nil, domain.ErrInvalidPayload
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	const query = `
	INSERT INTO moods (id, user_id, mood, note, date)
	VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.pool.Exec(ctx, query, entry.ID, entry.UserID, entry.Mood, entry.Note, entry.Date); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *moodRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM moods WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMoodNotFound
	}
	return nil
}
