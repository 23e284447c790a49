package focus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/pkg/calendar"
	"github.com/eduhub/backend/repository"
)

// Status is the timer view returned to the API layer.
type Status struct {
	State          State                `json:"state"`
	ElapsedSeconds int                  `json:"elapsed_seconds"`
	Committed      *domain.FocusSession `json:"committed,omitempty"`
}

// UseCase owns one focus timer per user and commits completed sessions to
// the record store.
type UseCase struct {
	sessions repository.FocusRepository
	loc      *time.Location
	logger   *zap.Logger
	interval time.Duration

	mu     sync.Mutex
	timers map[string]*Timer
}

func New(sessions repository.FocusRepository, loc *time.Location, logger *zap.Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sessions: sessions,
		loc:      loc,
		logger:   logger,
		interval: time.Second,
		timers:   make(map[string]*Timer),
	}
}

// Start begins or resumes the user's timer.
func (uc *UseCase) Start(userID string, now time.Time) Status {
	t := uc.timer(userID)
	t.Start(now)
	return uc.status(t, nil)
}

// Pause suspends accumulation, keeping the elapsed value.
func (uc *UseCase) Pause(userID string) Status {
	t := uc.timer(userID)
	t.Pause()
	return uc.status(t, nil)
}

// Stop ends the session. Elapsed time > 0 is committed as a FocusSession
// dated at commit time; a stop with nothing accumulated commits nothing.
func (uc *UseCase) Stop(ctx context.Context, userID string, now time.Time) (Status, error) {
	t := uc.timer(userID)
	elapsed, startedAt := t.Stop()
	if elapsed <= 0 {
		return uc.status(t, nil), nil
	}
	if startedAt.IsZero() {
		startedAt = now.Add(-time.Duration(elapsed) * time.Second)
	}

	session := &domain.FocusSession{
		UserID:          userID,
		DurationSeconds: elapsed,
		StartedAt:       startedAt,
	}
	committed, err := uc.sessions.AddSession(ctx, session)
	if err != nil {
		uc.logger.Error("failed to commit focus session",
			zap.String("user_id", userID), zap.Int("seconds", elapsed), zap.Error(err))
		return uc.status(t, nil), err
	}

	uc.logger.Info("focus session committed",
		zap.String("user_id", userID), zap.Int("seconds", elapsed))
	return uc.status(t, committed), nil
}

// Reset discards retained elapsed time without committing. Invalid while
// the timer is running.
func (uc *UseCase) Reset(userID string) (Status, error) {
	t := uc.timer(userID)
	if !t.Reset() {
		return uc.status(t, nil), domain.NewError(domain.ErrCodeConflict, "cannot reset a running timer")
	}
	return uc.status(t, nil), nil
}

// Current returns the user's timer status without changing it.
func (uc *UseCase) Current(userID string) Status {
	return uc.status(uc.timer(userID), nil)
}

// Today assembles the day's focus total: accumulated seconds plus the
// trailing session list.
func (uc *UseCase) Today(ctx context.Context, userID string, now time.Time) (domain.DailyFocusTotal, error) {
	day := calendar.DayOf(now, uc.loc)
	from := day.StartOfDay()
	to := from.AddDate(0, 0, 1)

	sessions, err := uc.sessions.SessionsBetween(ctx, userID, from, to)
	if err != nil {
		return domain.DailyFocusTotal{}, err
	}

	total := domain.DailyFocusTotal{Day: day.String()}
	for _, s := range sessions {
		total.Add(s)
	}
	return total, nil
}

// Shutdown cancels every tick source. Running timers keep their elapsed
// value only in memory, so anything accumulated is committed first.
func (uc *UseCase) Shutdown(ctx context.Context) error {
	uc.mu.Lock()
	timers := make(map[string]*Timer, len(uc.timers))
	for id, t := range uc.timers {
		timers[id] = t
	}
	uc.mu.Unlock()

	for userID, t := range timers {
		elapsed, startedAt := t.Stop()
		t.Close()
		if elapsed <= 0 {
			continue
		}
		session := &domain.FocusSession{
			UserID:          userID,
			DurationSeconds: elapsed,
			StartedAt:       startedAt,
		}
		if _, err := uc.sessions.AddSession(ctx, session); err != nil {
			uc.logger.Warn("failed to flush focus session on shutdown",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

func (uc *UseCase) timer(userID string) *Timer {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	t, ok := uc.timers[userID]
	if !ok {
		t = NewTimer(uc.interval)
		uc.timers[userID] = t
	}
	return t
}

func (uc *UseCase) status(t *Timer, committed *domain.FocusSession) Status {
	return Status{
		State:          t.State(),
		ElapsedSeconds: t.Elapsed(),
		Committed:      committed,
	}
}
