package medication

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

type UseCase struct {
	meds   repository.MedicationRepository
	logger *zap.Logger
}

func New(meds repository.MedicationRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		meds:   meds,
		logger: logger,
	}
}

func (uc *UseCase) ListMedications(ctx context.Context, userID string, limit int) ([]domain.Medication, error) {
	return uc.meds.List(ctx, userID, limit)
}

func (uc *UseCase) CreateMedication(ctx context.Context, med *domain.Medication) (*domain.Medication, error) {
	if med == nil || med.Name == "" {
		return nil, domain.ErrInvalidPayload
	}
	return uc.meds.Create(ctx, med)
}

func (uc *UseCase) UpdateMedication(ctx context.Context, med *domain.Medication) (*domain.Medication, error) {
	if med == nil || med.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.meds.Update(ctx, med); err != nil {
		return nil, err
	}
	return med, nil
}

func (uc *UseCase) DeleteMedication(ctx context.Context, userID, id string) error {
	return uc.meds.Delete(ctx, userID, id)
}

// LogTaken records an intake; a zero takenAt means "now".
func (uc *UseCase) LogTaken(ctx context.Context, userID, id string, takenAt time.Time) (time.Time, error) {
	if takenAt.IsZero() {
		takenAt = time.Now()
	}
	if err := uc.meds.LogTaken(ctx, userID, id, takenAt); err != nil {
		return time.Time{}, err
	}
	return takenAt, nil
}
