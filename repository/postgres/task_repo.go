package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, user_id, title, completed, deadline, reminder, reminder_time,
	difficulty, urgency, estimate_minutes, order_index, source, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2::boolean IS NULL OR completed = $2)
	ORDER BY order_index ASC, created_at DESC
	LIMIT $3::bigint OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, filter.Completed, pageLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, completed, deadline, reminder, reminder_time,
		difficulty, urgency, estimate_minutes, order_index, source)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Completed,
		task.Deadline,
		task.Reminder,
		task.ReminderTime,
		task.EffectiveDifficulty(),
		task.EffectiveUrgency(),
		task.EstimateMinutes,
		task.OrderIndex,
		task.Source,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $3,
		completed = $4,
		deadline = $5,
		reminder = $6,
		reminder_time = $7,
		difficulty = $8,
		urgency = $9,
		estimate_minutes = $10,
		order_index = $11,
		source = $12,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Completed,
		task.Deadline,
		task.Reminder,
		task.ReminderTime,
		task.EffectiveDifficulty(),
		task.EffectiveUrgency(),
		task.EstimateMinutes,
		task.OrderIndex,
		task.Source,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) NextOrderIndex(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COALESCE(MAX(order_index), 0) + 1 FROM tasks WHERE user_id = $1`
	var next int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *taskRepository) SetOrderIndex(ctx context.Context, userID, id string, orderIndex int) error {
	const query = `UPDATE tasks SET order_index = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID, orderIndex)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		deadline     *time.Time
		reminderTime *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Completed,
		&deadline,
		&task.Reminder,
		&reminderTime,
		&task.Difficulty,
		&task.Urgency,
		&task.EstimateMinutes,
		&task.OrderIndex,
		&task.Source,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Deadline = deadline
	task.ReminderTime = reminderTime
	return &task, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
