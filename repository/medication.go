package repository

import (
	"context"
	"time"

	"github.com/eduhub/backend/domain"
)

type MedicationRepository interface {
	List(ctx context.Context, userID string, limit int) ([]domain.Medication, error)
	Create(ctx context.Context, med *domain.Medication) (*domain.Medication, error)
	Update(ctx context.Context, med *domain.Medication) error
	Delete(ctx context.Context, userID, id string) error
	LogTaken(ctx context.Context, userID, id string, takenAt time.Time) error
}
