package domain

import "time"

// MoodEntry is a timestamped mood log line.
type MoodEntry struct {
	ID     string    `json:"id"`
	UserID string    `json:"user_id"`
	Mood   string    `json:"mood"`
	Note   string    `json:"note,omitempty"`
	Date   time.Time `json:"date"`
}
