package usecase

import (
	"context"

	"github.com/eduhub/backend/domain"
)

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the buffer processor so use cases stay storage-agnostic.
type OperationBuffer interface {
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
	BufferMood(ctx context.Context, operation string, entry *domain.MoodEntry) error
}
