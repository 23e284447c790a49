package todo

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

type fakeTaskRepo struct {
	tasks     map[string]*domain.Task
	createErr error
	nextOrder int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task), nextOrder: 1}
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.tasks {
		if task.UserID != filter.UserID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		out = append(out, *task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *task
	if stored.ID == "" {
		stored.ID = stored.Title
	}
	f.tasks[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	stored := *task
	f.tasks[task.ID] = &stored
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, userID, id string) error {
	task, ok := f.tasks[id]
	if !ok || task.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) NextOrderIndex(_ context.Context, _ string) (int, error) {
	next := f.nextOrder
	f.nextOrder++
	return next, nil
}

func (f *fakeTaskRepo) SetOrderIndex(_ context.Context, userID, id string, orderIndex int) error {
	task, ok := f.tasks[id]
	if !ok || task.UserID != userID {
		return domain.ErrTaskNotFound
	}
	task.OrderIndex = orderIndex
	return nil
}

func seedTasks(repo *fakeTaskRepo, ids ...string) {
	for i, id := range ids {
		repo.tasks[id] = &domain.Task{ID: id, UserID: "u1", Title: id, OrderIndex: i + 1}
	}
	repo.nextOrder = len(ids) + 1
}

func orderOf(repo *fakeTaskRepo, userID string) []string {
	tasks, _ := repo.List(context.Background(), repository.TaskFilter{UserID: userID})
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func TestCreateTaskAssignsOrderIndex(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, time.UTC, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{UserID: "u1", Title: "first"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.OrderIndex)

	created, err = uc.CreateTask(context.Background(), &domain.Task{UserID: "u1", Title: "second"})
	require.NoError(t, err)
	assert.Equal(t, 2, created.OrderIndex)
}

func TestCreateTaskRejectsEmptyTitle(t *testing.T) {
	uc := New(newFakeTaskRepo(), nil, time.UTC, nil)

	_, err := uc.CreateTask(context.Background(), &domain.Task{UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestUpdateTaskNotFound(t *testing.T) {
	uc := New(newFakeTaskRepo(), nil, time.UTC, nil)

	_, err := uc.UpdateTask(context.Background(), &domain.Task{ID: "ghost", UserID: "u1", Title: "x"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteTaskScopedToUser(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTasks(repo, "a")
	uc := New(repo, nil, time.UTC, nil)

	err := uc.DeleteTask(context.Background(), "someone-else", "a")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	require.NoError(t, uc.DeleteTask(context.Background(), "u1", "a"))
	assert.Empty(t, repo.tasks)
}

func TestReorderMovesListedTasksFirst(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTasks(repo, "a", "b", "c", "d")
	uc := New(repo, nil, time.UTC, nil)

	require.NoError(t, uc.Reorder(context.Background(), "u1", []string{"c", "a"}))

	assert.Equal(t, []string{"c", "a", "b", "d"}, orderOf(repo, "u1"))
}

func TestReorderIgnoresUnknownIDs(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTasks(repo, "a", "b")
	uc := New(repo, nil, time.UTC, nil)

	require.NoError(t, uc.Reorder(context.Background(), "u1", []string{"ghost", "b"}))

	// Position 1 belongs to the unknown id and stays vacant.
	assert.Equal(t, []string{"b", "a"}, orderOf(repo, "u1"))
}

func TestReorderFullPermutation(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTasks(repo, "a", "b", "c")
	uc := New(repo, nil, time.UTC, nil)

	require.NoError(t, uc.Reorder(context.Background(), "u1", []string{"b", "c", "a"}))
	assert.Equal(t, []string{"b", "c", "a"}, orderOf(repo, "u1"))
}

func TestQueueReturnsPendingInWorkOrder(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.tasks["urgent"] = &domain.Task{ID: "urgent", UserID: "u1", Title: "urgent", Urgency: 1}
	repo.tasks["relaxed"] = &domain.Task{ID: "relaxed", UserID: "u1", Title: "relaxed", Urgency: 5}
	repo.tasks["done"] = &domain.Task{ID: "done", UserID: "u1", Title: "done", Completed: true, Urgency: 1}
	uc := New(repo, nil, time.UTC, nil)

	queue, err := uc.Queue(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, queue, 2)
	assert.Equal(t, "urgent", queue[0].ID)
	assert.Equal(t, "relaxed", queue[1].ID)
}

func TestPrioritizedSkipsCompleted(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	deadline := now.Add(-24 * time.Hour)

	repo := newFakeTaskRepo()
	repo.tasks["late"] = &domain.Task{ID: "late", UserID: "u1", Title: "late", Deadline: &deadline}
	repo.tasks["done"] = &domain.Task{ID: "done", UserID: "u1", Title: "done", Completed: true}
	uc := New(repo, nil, time.UTC, nil)

	got, err := uc.Prioritized(context.Background(), "u1", now)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "late", got[0].Task.ID)
	assert.Equal(t, domain.TierOverdue, got[0].Tier)
}

type recordingBuffer struct {
	tasks []string
	err   error
}

func (r *recordingBuffer) BufferTask(_ context.Context, operation string, task *domain.Task) error {
	if r.err != nil {
		return r.err
	}
	r.tasks = append(r.tasks, operation+":"+task.Title)
	return nil
}

func (r *recordingBuffer) BufferMood(_ context.Context, _ string, _ *domain.MoodEntry) error {
	return nil
}

func TestCreateTaskFallsBackToBuffer(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.createErr = errors.New("db down")
	buf := &recordingBuffer{}
	uc := New(repo, buf, time.UTC, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{UserID: "u1", Title: "offline"})
	require.NoError(t, err)
	assert.Equal(t, "offline", created.Title)
	assert.Equal(t, []string{"create:offline"}, buf.tasks)
}

func TestCreateTaskSurfacesErrorWhenBufferFails(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.createErr = errors.New("db down")
	uc := New(repo, &recordingBuffer{err: errors.New("disk full")}, time.UTC, nil)

	_, err := uc.CreateTask(context.Background(), &domain.Task{UserID: "u1", Title: "offline"})
	assert.Error(t, err)
}
