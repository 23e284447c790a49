package services

import (
	"context"
	"encoding/json"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/internal/infrastructure/buffer"
	"github.com/eduhub/backend/usecase"
)

type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferTask(ctx context.Context, operation string, task *domain.Task) error {
	if b.processor == nil || task == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        task.ID,
		UserID:    task.UserID,
		Entity:    buffer.EntityTask,
		Operation: operation,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferMood(ctx context.Context, operation string, entry *domain.MoodEntry) error {
	if b.processor == nil || entry == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Entity:    buffer.EntityMood,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
