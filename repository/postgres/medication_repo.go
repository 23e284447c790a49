package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

type medicationRepository struct {
	pool *pgxpool.Pool
}

// NewMedicationRepository instantiates a Postgres-backed medication repository.
func NewMedicationRepository(pool *pgxpool.Pool) repository.MedicationRepository {
	return &medicationRepository{pool: pool}
}

func (r *medicationRepository) List(ctx context.Context, userID string, limit int) ([]domain.Medication, error) {
	const query = `
	SELECT id, user_id, name, dosage, frequency, times, notes, taken_at, created_at, updated_at
	FROM medications
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []domain.Medication
	for rows.Next() {
		med, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		meds = append(meds, *med)
	}
	return meds, rows.Err()
}

func (r *medicationRepository) Create(ctx context.Context, med *domain.Medication) (*domain.Medication, error) {
	if med == nil || med.Name == "" {
		return nil, domain.ErrInvalidPayload
	}
	if med.ID == "" {
		med.ID = uuid.NewString()
	}
	if med.Frequency == "" {
		med.Frequency = domain.FrequencyDaily
	}

	const query = `
	INSERT INTO medications (id, user_id, name, dosage, frequency, times, notes, taken_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		med.ID,
		med.UserID,
		med.Name,
		med.Dosage,
		med.Frequency,
		marshalStrings(med.Times),
		med.Notes,
		med.TakenAt,
	).Scan(&med.CreatedAt, &med.UpdatedAt); err != nil {
		return nil, err
	}
	return med, nil
}

func (r *medicationRepository) Update(ctx context.Context, med *domain.Medication) error {
	if med == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE medications
	SET name = $3,
		dosage = $4,
		frequency = $5,
		times = $6,
		notes = $7,
		taken_at = $8,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		med.ID,
		med.UserID,
		med.Name,
		med.Dosage,
		med.Frequency,
		marshalStrings(med.Times),
		med.Notes,
		med.TakenAt,
	).Scan(&med.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrMedicationNotFound
		}
		return err
	}
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM medications WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMedicationNotFound
	}
	return nil
}

func (r *medicationRepository) LogTaken(ctx context.Context, userID, id string, takenAt time.Time) error {
	const query = `
	UPDATE medications
	SET taken_at = $3, updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, id, userID, takenAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMedicationNotFound
	}
	return nil
}

func scanMedication(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Medication, error) {
	var med domain.Medication
	var (
		times   []byte
		takenAt *time.Time
	)

	if err := row.Scan(
		&med.ID,
		&med.UserID,
		&med.Name,
		&med.Dosage,
		&med.Frequency,
		&times,
		&med.Notes,
		&takenAt,
		&med.CreatedAt,
		&med.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMedicationNotFound
		}
		return nil, err
	}

	med.TakenAt = takenAt
	if len(times) > 0 {
		_ = json.Unmarshal(times, &med.Times)
	}
	return &med, nil
}
