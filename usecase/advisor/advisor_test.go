package advisor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

type fakeGateway struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeGateway) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeTaskLister struct {
	tasks []domain.Task
}

func (f *fakeTaskLister) GetByID(context.Context, string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskLister) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.tasks {
		if task.UserID != filter.UserID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (f *fakeTaskLister) Create(context.Context, *domain.Task) (*domain.Task, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeTaskLister) Update(context.Context, *domain.Task) error { return nil }
func (f *fakeTaskLister) Delete(context.Context, string, string) error { return nil }
func (f *fakeTaskLister) NextOrderIndex(context.Context, string) (int, error) {
	return 0, nil
}
func (f *fakeTaskLister) SetOrderIndex(context.Context, string, string, int) error {
	return nil
}

type fakeMoodRepo struct {
	latest *domain.MoodEntry
}

func (f *fakeMoodRepo) List(context.Context, string, int) ([]domain.MoodEntry, error) {
	return nil, nil
}

func (f *fakeMoodRepo) Latest(context.Context, string) (*domain.MoodEntry, error) {
	if f.latest == nil {
		return nil, domain.ErrMoodNotFound
	}
	return f.latest, nil
}

func (f *fakeMoodRepo) Create(context.Context, *domain.MoodEntry) (*domain.MoodEntry, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeMoodRepo) Delete(context.Context, string, string) error { return nil }

type fakeFocusRepo struct {
	sessions []domain.FocusSession
}

func (f *fakeFocusRepo) AddSession(context.Context, *domain.FocusSession) (*domain.FocusSession, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFocusRepo) SessionsBetween(_ context.Context, userID string, from, to time.Time) ([]domain.FocusSession, error) {
	var out []domain.FocusSession
	for _, s := range f.sessions {
		if s.UserID == userID && !s.StartedAt.Before(from) && s.StartedAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeChatRepo struct {
	mu        sync.Mutex
	turns     []domain.ChatTurn
	recentErr error
	clearErr  error
	cleared   int
}

func (f *fakeChatRepo) Recent(_ context.Context, _ string, n int) ([]domain.ChatTurn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if len(f.turns) > n {
		return f.turns[len(f.turns)-n:], nil
	}
	return f.turns, nil
}

func (f *fakeChatRepo) Append(_ context.Context, _ string, turns ...domain.ChatTurn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.turns = append(f.turns, turns...)
	return nil
}

func (f *fakeChatRepo) Clear(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared++
	f.turns = nil
	return nil
}

var advisorNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func newAdvisorUseCase(gw *fakeGateway, tasks *fakeTaskLister, moods *fakeMoodRepo, focus *fakeFocusRepo, chat *fakeChatRepo) *UseCase {
	if tasks == nil {
		tasks = &fakeTaskLister{}
	}
	if moods == nil {
		moods = &fakeMoodRepo{}
	}
	if focus == nil {
		focus = &fakeFocusRepo{}
	}
	if chat == nil {
		chat = &fakeChatRepo{}
	}
	return New(gw, tasks, moods, focus, chat, time.UTC, nil)
}

func TestAdviseBuildsSnapshot(t *testing.T) {
	deadline := advisorNow.Add(-24 * time.Hour)
	gw := &fakeGateway{reply: "start with the overdue report"}
	uc := newAdvisorUseCase(gw,
		&fakeTaskLister{tasks: []domain.Task{
			{ID: "t1", UserID: "u1", Title: "overdue report", Deadline: &deadline},
			{ID: "t2", UserID: "u1", Title: "finished", Completed: true},
		}},
		&fakeMoodRepo{latest: &domain.MoodEntry{Mood: "tired", Note: "slept badly"}},
		&fakeFocusRepo{sessions: []domain.FocusSession{
			{UserID: "u1", DurationSeconds: 1800, StartedAt: advisorNow.Add(-time.Hour)},
		}},
		nil)

	report, err := uc.Advise(context.Background(), "u1", advisorNow)
	require.NoError(t, err)

	assert.Equal(t, "start with the overdue report", report.Advice)
	assert.Equal(t, "tired", report.Snapshot.Mood)
	assert.Equal(t, "morning", report.Snapshot.TimeOfDay)
	assert.Equal(t, 1800, report.Snapshot.FocusSecondsToday)
	require.Len(t, report.Snapshot.PendingTasks, 1)
	assert.Equal(t, domain.TierOverdue, report.Snapshot.PendingTasks[0].Tier)

	require.Len(t, gw.prompts, 1)
	assert.Contains(t, gw.prompts[0], "overdue report")
	assert.Contains(t, gw.prompts[0], "OVERDUE")
	assert.Contains(t, gw.prompts[0], "tired")
}

func TestAdviseWithoutMoodOrTasks(t *testing.T) {
	gw := &fakeGateway{reply: "take it easy"}
	uc := newAdvisorUseCase(gw, nil, nil, nil, nil)

	report, err := uc.Advise(context.Background(), "u1", advisorNow)
	require.NoError(t, err)

	assert.Empty(t, report.Snapshot.Mood)
	assert.Empty(t, report.Snapshot.PendingTasks)
	assert.Contains(t, gw.prompts[0], "No pending tasks")
}

func TestAdviseGatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	uc := newAdvisorUseCase(gw, nil, nil, nil, nil)

	_, err := uc.Advise(context.Background(), "u1", advisorNow)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}

func TestAdviseBlankReplyIsUnavailable(t *testing.T) {
	gw := &fakeGateway{reply: "   \n"}
	uc := newAdvisorUseCase(gw, nil, nil, nil, nil)

	_, err := uc.Advise(context.Background(), "u1", advisorNow)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}

func TestChatCarriesStyleAndHistory(t *testing.T) {
	gw := &fakeGateway{reply: "sounds good"}
	chat := &fakeChatRepo{turns: []domain.ChatTurn{
		{Role: domain.ChatRoleUser, Content: "hello"},
		{Role: domain.ChatRoleAssistant, Content: "hi there"},
	}}
	uc := newAdvisorUseCase(gw, nil, nil, nil, chat)

	reply, err := uc.Chat(context.Background(), "u1", "what should I do next?", advisorNow)
	require.NoError(t, err)
	assert.Equal(t, "sounds good", reply)

	prompt := gw.prompts[0]
	assert.Contains(t, prompt, "productivity companion")
	assert.Contains(t, prompt, "User: hello")
	assert.Contains(t, prompt, "Assistant: hi there")
	assert.True(t, strings.HasSuffix(prompt, "Assistant:"))
}

func TestChatAppendsBothTurnsAfterSuccess(t *testing.T) {
	gw := &fakeGateway{reply: "try the pomodoro"}
	chat := &fakeChatRepo{}
	uc := newAdvisorUseCase(gw, nil, nil, nil, chat)

	_, err := uc.Chat(context.Background(), "u1", "any tips?", advisorNow)
	require.NoError(t, err)

	require.Len(t, chat.turns, 2)
	assert.Equal(t, domain.ChatRoleUser, chat.turns[0].Role)
	assert.Equal(t, "any tips?", chat.turns[0].Content)
	assert.Equal(t, domain.ChatRoleAssistant, chat.turns[1].Role)
	assert.Equal(t, "try the pomodoro", chat.turns[1].Content)
}

func TestChatDoesNotRecordFailedExchanges(t *testing.T) {
	gw := &fakeGateway{err: errors.New("timeout")}
	chat := &fakeChatRepo{}
	uc := newAdvisorUseCase(gw, nil, nil, nil, chat)

	_, err := uc.Chat(context.Background(), "u1", "hello?", advisorNow)
	require.Error(t, err)
	assert.Empty(t, chat.turns)
}

func TestChatRejectsBlankMessage(t *testing.T) {
	uc := newAdvisorUseCase(&fakeGateway{reply: "x"}, nil, nil, nil, nil)

	_, err := uc.Chat(context.Background(), "u1", "   ", advisorNow)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestChatSurvivesHistoryOutage(t *testing.T) {
	gw := &fakeGateway{reply: "still here"}
	chat := &fakeChatRepo{recentErr: errors.New("redis down")}
	uc := newAdvisorUseCase(gw, nil, nil, nil, chat)

	reply, err := uc.Chat(context.Background(), "u1", "hello", advisorNow)
	require.NoError(t, err)
	assert.Equal(t, "still here", reply)
}

func TestClearHistoryEmptiesConversation(t *testing.T) {
	chat := &fakeChatRepo{turns: []domain.ChatTurn{
		{Role: domain.ChatRoleUser, Content: "what first?"},
		{Role: domain.ChatRoleAssistant, Content: "the report"},
	}}
	uc := newAdvisorUseCase(&fakeGateway{reply: "x"}, nil, nil, nil, chat)

	require.NoError(t, uc.ClearHistory(context.Background(), "u1"))
	assert.Equal(t, 1, chat.cleared)
	assert.Empty(t, chat.turns)
}

func TestClearHistoryStoreFailureIsUnavailable(t *testing.T) {
	chat := &fakeChatRepo{clearErr: errors.New("redis down")}
	uc := newAdvisorUseCase(&fakeGateway{reply: "x"}, nil, nil, nil, chat)

	err := uc.ClearHistory(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}

func TestUserLocksReleasedAfterUse(t *testing.T) {
	uc := newAdvisorUseCase(&fakeGateway{reply: "ok"}, nil, nil, nil, nil)

	var wg sync.WaitGroup
	for _, user := range []string{"u1", "u2", "u1"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := uc.Chat(context.Background(), id, "hello", advisorNow)
			assert.NoError(t, err)
		}(user)
	}
	wg.Wait()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	assert.Empty(t, uc.locks)
}

func TestTimeOfDayBuckets(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{16, "afternoon"},
		{17, "evening"},
		{20, "evening"},
		{21, "night"},
		{3, "night"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			at := time.Date(2026, 3, 15, tt.hour, 0, 0, 0, time.UTC)
			assert.Equal(t, tt.want, timeOfDay(at))
		})
	}
}
