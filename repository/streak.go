package repository

import (
	"context"

	"github.com/eduhub/backend/domain"
)

type StreakRepository interface {
	// Get returns the user's record; a zero record (no error) when none exists.
	Get(ctx context.Context, userID string) (domain.StreakRecord, error)
	Save(ctx context.Context, record domain.StreakRecord) error
}
