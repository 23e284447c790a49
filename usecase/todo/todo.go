package todo

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
	"github.com/eduhub/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	buffer usecase.OperationBuffer
	loc    *time.Location
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, buffer usecase.OperationBuffer, loc *time.Location, logger *zap.Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		buffer: buffer,
		loc:    loc,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

// Queue returns the user's pending tasks in the queue ordering: urgency,
// deadline, difficulty, recency.
func (uc *UseCase) Queue(ctx context.Context, userID string) ([]domain.Task, error) {
	pending := false
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{UserID: userID, Completed: &pending})
	if err != nil {
		return nil, err
	}
	return domain.SortQueue(tasks), nil
}

// Prioritized returns the user's pending tasks with dashboard tiers attached.
func (uc *UseCase) Prioritized(ctx context.Context, userID string, now time.Time) ([]domain.PrioritizedTask, error) {
	pending := false
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{UserID: userID, Completed: &pending})
	if err != nil {
		return nil, err
	}
	return domain.Prioritize(tasks, now, uc.loc), nil
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.Title == "" {
		return nil, domain.ErrInvalidPayload
	}
	if task.OrderIndex == 0 {
		next, err := uc.tasks.NextOrderIndex(ctx, task.UserID)
		if err == nil {
			task.OrderIndex = next
		}
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return task, nil
		}
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, userID, id string) error {
	if err := uc.tasks.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}
		task := &domain.Task{ID: id, UserID: userID}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, task) {
			return nil
		}
		return err
	}
	return nil
}

// Reorder rewrites order indexes so provided ids come first in the given
// order; the remaining tasks keep their relative order after them.
func (uc *UseCase) Reorder(ctx context.Context, userID string, orderedIDs []string) error {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{UserID: userID})
	if err != nil {
		return err
	}

	position := make(map[string]int, len(orderedIDs))
	for idx, id := range orderedIDs {
		position[id] = idx + 1
	}

	next := len(orderedIDs) + 1
	for i := range tasks {
		t := &tasks[i]
		order, ok := position[t.ID]
		if !ok {
			order = next
			next++
		}
		if t.OrderIndex == order {
			continue
		}
		if err := uc.tasks.SetOrderIndex(ctx, userID, t.ID, order); err != nil {
			uc.logger.Error("failed to set task order",
				zap.String("task_id", t.ID), zap.Error(err))
			return err
		}
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation))
	return true
}
