package repository

import (
	"context"
	"time"

	"github.com/eduhub/backend/domain"
)

type FocusRepository interface {
	// AddSession persists a committed focus session.
	AddSession(ctx context.Context, session *domain.FocusSession) (*domain.FocusSession, error)
	// SessionsBetween returns sessions started in [from, to), newest last.
	SessionsBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.FocusSession, error)
}
