package repository

import (
	"context"

	"github.com/eduhub/backend/domain"
)

type MoodRepository interface {
	List(ctx context.Context, userID string, limit int) ([]domain.MoodEntry, error)
	Latest(ctx context.Context, userID string) (*domain.MoodEntry, error)
	Create(ctx context.Context, entry *domain.MoodEntry) (*domain.MoodEntry, error)
	Delete(ctx context.Context, userID, id string) error
}
