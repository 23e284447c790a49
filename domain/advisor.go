package domain

// ChatHistoryWindow is the maximum number of prior turns forwarded to the
// language model.
const ChatHistoryWindow = 6

// AdvisorSnapshot is the read-only context handed to the advisor gateway:
// what the user is facing right now, never mutated by the advisor path.
type AdvisorSnapshot struct {
	Mood              string            `json:"mood,omitempty"`
	MoodNote          string            `json:"mood_note,omitempty"`
	TimeOfDay         string            `json:"time_of_day"`
	FocusSecondsToday int               `json:"focus_seconds_today"`
	PendingTasks      []PrioritizedTask `json:"pending_tasks"`
}

// AdvisorReport is the advisor response relayed to the UI together with
// the snapshot it was produced from.
type AdvisorReport struct {
	Snapshot AdvisorSnapshot `json:"snapshot"`
	Advice   string          `json:"advice"`
}
