package streak

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

type UseCase struct {
	streaks repository.StreakRepository
	loc     *time.Location
	logger  *zap.Logger
}

func New(streaks repository.StreakRepository, loc *time.Location, logger *zap.Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		streaks: streaks,
		loc:     loc,
		logger:  logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (domain.StreakRecord, error) {
	return uc.streaks.Get(ctx, userID)
}

// MarkToday advances the streak for the calendar day of now and persists
// only when the record actually changed (same-day marks are no-ops).
func (uc *UseCase) MarkToday(ctx context.Context, userID string, now time.Time) (domain.StreakRecord, error) {
	record, err := uc.streaks.Get(ctx, userID)
	if err != nil {
		return domain.StreakRecord{}, err
	}
	record.UserID = userID

	updated, changed := record.MarkToday(now, uc.loc)
	if !changed {
		return record, nil
	}

	if err := uc.streaks.Save(ctx, updated); err != nil {
		return domain.StreakRecord{}, err
	}
	uc.logger.Info("streak advanced",
		zap.String("user_id", userID),
		zap.Int("current", updated.Current),
		zap.Int("longest", updated.Longest))
	return updated, nil
}
