package advisor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

// Gateway is the external language model. A blank reply is the gateway's
// problem to reject; implementations return an error rather than an empty
// string.
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// styleDirective shapes chat answers; carried verbatim into every prompt.
const styleDirective = `You are a helpful and friendly productivity companion. When responding:
- Write naturally, as if you're a real person having a conversation
- Use simple, clear language - avoid overly formal or robotic phrases
- Be conversational and warm, but not overly casual
- Keep responses concise and to the point
- Show genuine interest in helping, but don't overdo enthusiasm
- Avoid phrases like "I understand", "I'm here to help" - just help directly`

const snapshotTaskLimit = 10

type UseCase struct {
	gateway Gateway
	tasks   repository.TaskRepository
	moods   repository.MoodRepository
	focus   repository.FocusRepository
	history repository.ChatHistoryRepository
	loc     *time.Location
	logger  *zap.Logger

	mu    sync.Mutex
	locks map[string]*userLock
}

// userLock is refcounted so lockUser can drop the entry once the last
// holder releases; the map stays bounded by in-flight requests.
type userLock struct {
	mu   sync.Mutex
	refs int
}

func New(
	gateway Gateway,
	tasks repository.TaskRepository,
	moods repository.MoodRepository,
	focus repository.FocusRepository,
	history repository.ChatHistoryRepository,
	loc *time.Location,
	logger *zap.Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		gateway: gateway,
		tasks:   tasks,
		moods:   moods,
		focus:   focus,
		history: history,
		loc:     loc,
		logger:  logger,
		locks:   make(map[string]*userLock),
	}
}

// Advise builds a read-only snapshot of the user's situation and asks the
// model for work advice. Gateway failures surface to the caller.
func (uc *UseCase) Advise(ctx context.Context, userID string, now time.Time) (*domain.AdvisorReport, error) {
	unlock := uc.lockUser(userID)
	defer unlock()

	snapshot, err := uc.buildSnapshot(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	advice, err := uc.generate(ctx, advisePrompt(snapshot, now))
	if err != nil {
		return nil, err
	}

	return &domain.AdvisorReport{Snapshot: snapshot, Advice: advice}, nil
}

// Chat relays one conversation turn, carrying up to the last
// domain.ChatHistoryWindow turns plus a light context line. The exchange
// is appended to history only after a successful reply.
func (uc *UseCase) Chat(ctx context.Context, userID, message string, now time.Time) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", domain.ErrInvalidPayload
	}

	unlock := uc.lockUser(userID)
	defer unlock()

	var b strings.Builder
	b.WriteString(styleDirective)

	if mood, err := uc.moods.Latest(ctx, userID); err == nil {
		fmt.Fprintf(&b, "\n\nUser's recent mood: %s", mood.Mood)
	}
	if pending, err := uc.pendingTasks(ctx, userID); err == nil && len(pending) > 0 {
		fmt.Fprintf(&b, "\n\nUser has %d pending tasks.", len(pending))
	}
	b.WriteString("\n\n")

	turns, err := uc.history.Recent(ctx, userID, domain.ChatHistoryWindow)
	if err != nil {
		uc.logger.Warn("chat history unavailable", zap.String("user_id", userID), zap.Error(err))
	}
	for _, turn := range turns {
		fmt.Fprintf(&b, "%s: %s\n", roleLabel(turn.Role), turn.Content)
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", message)

	reply, err := uc.generate(ctx, b.String())
	if err != nil {
		return "", err
	}

	if err := uc.history.Append(ctx, userID,
		domain.ChatTurn{Role: domain.ChatRoleUser, Content: message, CreatedAt: now},
		domain.ChatTurn{Role: domain.ChatRoleAssistant, Content: reply, CreatedAt: now},
	); err != nil {
		uc.logger.Warn("failed to record chat turns", zap.String("user_id", userID), zap.Error(err))
	}

	return reply, nil
}

// ClearHistory drops the stored conversation so the next chat starts
// without prior context.
func (uc *UseCase) ClearHistory(ctx context.Context, userID string) error {
	unlock := uc.lockUser(userID)
	defer unlock()

	if err := uc.history.Clear(ctx, userID); err != nil {
		uc.logger.Error("failed to clear chat history", zap.String("user_id", userID), zap.Error(err))
		return domain.WrapError(domain.ErrCodeUnavailable, "chat history unavailable", err)
	}
	return nil
}

func (uc *UseCase) buildSnapshot(ctx context.Context, userID string, now time.Time) (domain.AdvisorSnapshot, error) {
	snapshot := domain.AdvisorSnapshot{TimeOfDay: timeOfDay(now.In(uc.loc))}

	if mood, err := uc.moods.Latest(ctx, userID); err == nil {
		snapshot.Mood = mood.Mood
		snapshot.MoodNote = mood.Note
	}

	pending, err := uc.pendingTasks(ctx, userID)
	if err != nil {
		return domain.AdvisorSnapshot{}, err
	}
	prioritized := domain.Prioritize(pending, now, uc.loc)
	if len(prioritized) > snapshotTaskLimit {
		prioritized = prioritized[:snapshotTaskLimit]
	}
	snapshot.PendingTasks = prioritized

	dayStart := now.In(uc.loc)
	dayStart = time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, 0, 0, 0, uc.loc)
	sessions, err := uc.focus.SessionsBetween(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return domain.AdvisorSnapshot{}, err
	}
	for _, s := range sessions {
		snapshot.FocusSecondsToday += s.DurationSeconds
	}

	return snapshot, nil
}

func (uc *UseCase) pendingTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	pending := false
	return uc.tasks.List(ctx, repository.TaskFilter{UserID: userID, Completed: &pending})
}

// generate calls the gateway and folds transport failures and blank
// replies into the same distinguishable error class.
func (uc *UseCase) generate(ctx context.Context, prompt string) (string, error) {
	reply, err := uc.gateway.Generate(ctx, prompt)
	if err != nil {
		uc.logger.Error("advisor gateway failed", zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeUnavailable, "advisor service unavailable", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", domain.NewError(domain.ErrCodeUnavailable, "advisor returned an empty response")
	}
	return reply, nil
}

// lockUser serializes advisor requests per user so concurrent calls never
// interleave their model context.
func (uc *UseCase) lockUser(userID string) func() {
	uc.mu.Lock()
	lock, ok := uc.locks[userID]
	if !ok {
		lock = &userLock{}
		uc.locks[userID] = lock
	}
	lock.refs++
	uc.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		uc.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(uc.locks, userID)
		}
		uc.mu.Unlock()
	}
}

func advisePrompt(snapshot domain.AdvisorSnapshot, now time.Time) string {
	var b strings.Builder
	b.WriteString("You're helping someone with their productivity. Give practical, human advice based on their current situation.\n\nContext:\n")

	if snapshot.Mood != "" {
		fmt.Fprintf(&b, "- Current mood: %s", snapshot.Mood)
		if snapshot.MoodNote != "" {
			fmt.Fprintf(&b, " (note: %s)", snapshot.MoodNote)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "- Time of day: %s\n", snapshot.TimeOfDay)
	fmt.Fprintf(&b, "- Focus time today: %d minutes\n", snapshot.FocusSecondsToday/60)

	if len(snapshot.PendingTasks) == 0 {
		b.WriteString("- No pending tasks.\n")
	} else {
		b.WriteString("- Pending tasks:\n")
		for i, pt := range snapshot.PendingTasks {
			fmt.Fprintf(&b, "  %d. %s%s\n", i+1, pt.Task.Title, deadlineNote(pt.Task, now))
		}
	}

	b.WriteString("\nProvide: a brief analysis of the user's current state, the top 1-3 tasks to work on right now with reasoning, a short motivational message, and whether a break is warranted. Be concise, empathetic, and actionable.")
	return b.String()
}

func deadlineNote(task domain.Task, now time.Time) string {
	if task.Deadline == nil {
		return ""
	}
	days := int(task.Deadline.Sub(now).Hours() / 24)
	switch {
	case days < 0:
		return fmt.Sprintf(" (OVERDUE by %d days)", -days)
	case days == 0:
		return " (due TODAY)"
	case days <= 3:
		return fmt.Sprintf(" (due in %d days)", days)
	default:
		return ""
	}
}

func roleLabel(role string) string {
	if role == domain.ChatRoleAssistant {
		return "Assistant"
	}
	return "User"
}

func timeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 21:
		return "evening"
	default:
		return "night"
	}
}
