package domain

import "time"

// Task difficulty levels, ordered easy < medium < hard.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	// DefaultUrgency is assumed whenever a task carries no urgency.
	DefaultUrgency = 3

	// UrgencyHighest and UrgencyLowest bound the stored range (1 = highest).
	UrgencyHighest = 1
	UrgencyLowest  = 5
)

// Task represents a user-owned todo item. Deadline and reminder are both
// optional; urgency 0 means "not set" and is read through EffectiveUrgency.
type Task struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Title           string     `json:"title"`
	Completed       bool       `json:"completed"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Reminder        bool       `json:"reminder"`
	ReminderTime    *time.Time `json:"reminder_time,omitempty"`
	Difficulty      string     `json:"difficulty"`
	Urgency         int        `json:"urgency"`
	EstimateMinutes int        `json:"estimate_minutes"`
	OrderIndex      int        `json:"order_index"`
	Source          string     `json:"source"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// EffectiveUrgency interprets missing or out-of-range urgency as the default.
func (t *Task) EffectiveUrgency() int {
	if t == nil || t.Urgency < UrgencyHighest || t.Urgency > UrgencyLowest {
		return DefaultUrgency
	}
	return t.Urgency
}

// EffectiveDifficulty falls back to medium for unknown values.
func (t *Task) EffectiveDifficulty() string {
	if t == nil {
		return DifficultyMedium
	}
	switch t.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return t.Difficulty
	default:
		return DifficultyMedium
	}
}

// DifficultyWeight orders difficulties for the queue tie-break: hard > medium > easy.
func (t *Task) DifficultyWeight() int {
	switch t.EffectiveDifficulty() {
	case DifficultyHard:
		return 3
	case DifficultyMedium:
		return 2
	default:
		return 1
	}
}

// HasReminder reports whether the task has an armed reminder with a time.
func (t *Task) HasReminder() bool {
	return t != nil && t.Reminder && t.ReminderTime != nil
}

func (t *Task) IsPending() bool {
	return t != nil && !t.Completed
}
