package domain

import "time"

// Medication frequencies.
const (
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	FrequencyAsNeeded = "as_needed"
)

// Medication describes a tracked medication and its schedule. TakenAt
// records the most recent intake.
type Medication struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage,omitempty"`
	Frequency string     `json:"frequency"`
	Times     []string   `json:"times,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	TakenAt   *time.Time `json:"taken_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
