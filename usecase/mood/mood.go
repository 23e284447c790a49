package mood

import (
	"context"

	"go.uber.org/zap"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
	"github.com/eduhub/backend/usecase"
)

type UseCase struct {
	moods  repository.MoodRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(moods repository.MoodRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		moods:  moods,
		buffer: buffer,
		logger: logger,
	}
}

func (uc *UseCase) ListMoods(ctx context.Context, userID string, limit int) ([]domain.MoodEntry, error) {
	return uc.moods.List(ctx, userID, limit)
}

func (uc *UseCase) CreateMood(ctx context.Context, entry *domain.MoodEntry) (*domain.MoodEntry, error) {
	if entry == nil || entry.Mood == "" {
		return nil, domain.ErrInvalidPayload
	}
	created, err := uc.moods.Create(ctx, entry)
	if err != nil {
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferMood(ctx, usecase.OperationCreate, entry); bufErr == nil {
				uc.logger.Warn("mood entry buffered due to repository error", zap.Error(err))
				return entry, nil
			}
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) DeleteMood(ctx context.Context, userID, id string) error {
	return uc.moods.Delete(ctx, userID, id)
}
