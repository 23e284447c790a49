package transport

// TaskRequest carries task create/update payloads. Pointer fields
// distinguish "absent" from zero, so a partial update only touches the
// fields the body names.
type TaskRequest struct {
	ID              string  `json:"id"`
	Title           *string `json:"title"`
	Completed       *bool   `json:"completed"`
	Deadline        *string `json:"deadline"`
	Reminder        *bool   `json:"reminder"`
	ReminderTime    *string `json:"reminder_time"`
	Difficulty      *string `json:"difficulty"`
	Urgency         *int    `json:"urgency"`
	EstimateMinutes *int    `json:"estimate_minutes"`
	OrderIndex      *int    `json:"order_index"`
	Source          *string `json:"source"`
}

// ReorderRequest lists task ids in their new order; tasks not listed keep
// their relative order after the listed ones.
type ReorderRequest struct {
	IDs []string `json:"ids"`
}

type MoodRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

type MedicationRequest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Dosage    string   `json:"dosage"`
	Frequency string   `json:"frequency"`
	Times     []string `json:"times"`
	Notes     string   `json:"notes"`
}

type MedicationLogRequest struct {
	TakenAt string `json:"taken_at"`
}

type ChatRequest struct {
	Message string `json:"message"`
}
