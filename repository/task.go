package repository

import (
	"context"

	"github.com/eduhub/backend/domain"
)

// TaskFilter narrows a List call. A non-positive Limit returns the full
// set; aggregation and reorder paths rely on that.
type TaskFilter struct {
	UserID    string
	Completed *bool
	Limit     int
	Offset    int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, userID, id string) error
	NextOrderIndex(ctx context.Context, userID string) (int, error)
	SetOrderIndex(ctx context.Context, userID, id string, orderIndex int) error
}
