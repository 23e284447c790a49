package domain

import (
	"sort"
	"time"

	"github.com/eduhub/backend/pkg/calendar"
)

// Tier is the transient priority class assigned to a pending task.
// Lower is more urgent. Never persisted.
type Tier int

const (
	TierOverdue       Tier = 1
	TierDueToday      Tier = 2
	TierUrgent        Tier = 3
	TierUpcoming      Tier = 4
	TierStaleReminder Tier = 5
	TierNormal        Tier = 6
)

// urgentWindow is the horizon separating "urgent" from "upcoming".
const urgentWindow = 7 * 24 * time.Hour

// PrioritizedTask pairs a task with its computed tier and sort key.
type PrioritizedTask struct {
	Task    Task  `json:"task"`
	Tier    Tier  `json:"tier"`
	SortKey int64 `json:"sort_key"`
}

// Classify assigns exactly one tier to a task. First matching rule wins:
// deadline before today, deadline today, deadline inside the 7-day window,
// deadline beyond it, then the reminder paths, then normal. A task with
// both a deadline and a reminder is classified by the deadline alone.
func Classify(task Task, now time.Time, loc *time.Location) (Tier, int64) {
	today := calendar.DayOf(now, loc)

	if task.Deadline != nil {
		due := *task.Deadline
		dueDay := calendar.DayOf(due, loc)
		switch {
		case dueDay.Before(today):
			return TierOverdue, due.UnixNano()
		case dueDay.Equal(today):
			return TierDueToday, due.UnixNano()
		case due.Before(now.Add(urgentWindow)):
			return TierUrgent, due.UnixNano()
		default:
			return TierUpcoming, due.UnixNano()
		}
	}

	if task.HasReminder() {
		remind := *task.ReminderTime
		switch {
		case remind.Before(now):
			return TierStaleReminder, remind.UnixNano()
		case remind.Before(now.Add(urgentWindow)):
			return TierUrgent, remind.UnixNano()
		default:
			return TierUpcoming, remind.UnixNano()
		}
	}

	// Newest first inside the normal tier, without flipping the comparison.
	return TierNormal, -task.CreatedAt.UnixNano()
}

// Prioritize classifies every pending task and returns them ordered by
// (tier ascending, sort key ascending). Completed tasks are skipped.
// Pure: the input slice is not modified.
func Prioritize(tasks []Task, now time.Time, loc *time.Location) []PrioritizedTask {
	out := make([]PrioritizedTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		tier, key := Classify(t, now, loc)
		out = append(out, PrioritizedTask{Task: t, Tier: tier, SortKey: key})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].SortKey < out[j].SortKey
	})
	return out
}

// SortQueue orders pending tasks for the plain todo list, independent of
// dashboard tiers: urgency ascending, deadline ascending with dated tasks
// before undated ones, difficulty hard > medium > easy, then newest first.
// Returns a new slice.
func SortQueue(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsPending() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if ua, ub := a.EffectiveUrgency(), b.EffectiveUrgency(); ua != ub {
			return ua < ub
		}
		switch {
		case a.Deadline != nil && b.Deadline != nil:
			if !a.Deadline.Equal(*b.Deadline) {
				return a.Deadline.Before(*b.Deadline)
			}
		case a.Deadline != nil:
			return true
		case b.Deadline != nil:
			return false
		}
		if wa, wb := a.DifficultyWeight(), b.DifficultyWeight(); wa != wb {
			return wa > wb
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out
}
