package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	loc    *time.Location
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, loc *time.Location, logger *zap.Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		loc:    loc,
		logger: logger,
	}
}

// Build loads the full task set (completed included, the counters need it)
// and aggregates the dashboard view for now.
func (uc *UseCase) Build(ctx context.Context, userID string, now time.Time) (domain.Dashboard, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{UserID: userID})
	if err != nil {
		return domain.Dashboard{}, err
	}
	return domain.Aggregate(tasks, now, uc.loc), nil
}
