package repository

import (
	"context"

	"github.com/eduhub/backend/domain"
)

type ChatHistoryRepository interface {
	// Recent returns up to n most recent turns, oldest first.
	Recent(ctx context.Context, userID string, n int) ([]domain.ChatTurn, error)
	Append(ctx context.Context, userID string, turns ...domain.ChatTurn) error
	Clear(ctx context.Context, userID string) error
}
