package domain

import (
	"math"
	"time"

	"github.com/eduhub/backend/pkg/calendar"
)

// TopTaskCount is how many prioritized tasks the summary strip shows.
const TopTaskCount = 8

// DashboardBuckets groups pending tasks by tier, each bucket preserving the
// prioritizer's ordering.
type DashboardBuckets struct {
	Overdue  []PrioritizedTask `json:"overdue"`
	DueToday []PrioritizedTask `json:"due_today"`
	Urgent   []PrioritizedTask `json:"urgent"`
	Upcoming []PrioritizedTask `json:"upcoming"`
	Normal   []PrioritizedTask `json:"normal"`
}

// DashboardCounters aggregates over all tasks, completed included.
type DashboardCounters struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completion_rate"`
	WeekTotal      int `json:"week_total"`
	WeekCompleted  int `json:"week_completed"`
}

// Dashboard is the derived view model consumed by the UI layer.
type Dashboard struct {
	Buckets  DashboardBuckets  `json:"buckets"`
	Top      []PrioritizedTask `json:"top"`
	Counters DashboardCounters `json:"counters"`
}

// Aggregate computes the dashboard from the full task set and "now". It is
// a pure function: no mutation, missing fields defaulted, never fails.
func Aggregate(tasks []Task, now time.Time, loc *time.Location) Dashboard {
	prioritized := Prioritize(tasks, now, loc)

	var dash Dashboard
	for _, pt := range prioritized {
		switch pt.Tier {
		case TierOverdue:
			dash.Buckets.Overdue = append(dash.Buckets.Overdue, pt)
		case TierDueToday:
			dash.Buckets.DueToday = append(dash.Buckets.DueToday, pt)
		case TierUrgent:
			dash.Buckets.Urgent = append(dash.Buckets.Urgent, pt)
		case TierUpcoming:
			dash.Buckets.Upcoming = append(dash.Buckets.Upcoming, pt)
		default:
			dash.Buckets.Normal = append(dash.Buckets.Normal, pt)
		}
	}

	top := prioritized
	if len(top) > TopTaskCount {
		top = top[:TopTaskCount]
	}
	dash.Top = top

	dash.Counters = countTasks(tasks, now, loc)
	return dash
}

func countTasks(tasks []Task, now time.Time, loc *time.Location) DashboardCounters {
	today := calendar.DayOf(now, loc)
	weekEnd := today.StartOfDay().AddDate(0, 0, 7)

	var c DashboardCounters
	for i := range tasks {
		t := &tasks[i]
		c.Total++
		if t.Completed {
			c.Completed++
		}
		if t.Deadline == nil {
			continue
		}
		dueDay := calendar.DayOf(*t.Deadline, loc)
		if !t.Completed && dueDay.Before(today) {
			c.Overdue++
		}
		if !dueDay.Before(today) && t.Deadline.Before(weekEnd) {
			c.WeekTotal++
			if t.Completed {
				c.WeekCompleted++
			}
		}
	}

	c.Pending = c.Total - c.Completed
	if c.Total > 0 {
		c.CompletionRate = int(math.Round(float64(c.Completed) / float64(c.Total) * 100))
	}
	return c
}
