package domain

import (
	"fmt"
	"time"

	"github.com/eduhub/backend/pkg/calendar"
)

// MaxTrailingSessions bounds the per-day session list kept for display.
const MaxTrailingSessions = 50

// FocusSession is a committed block of focused time. Immutable: created
// only when a running timer is stopped with elapsed time > 0.
type FocusSession struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	DurationSeconds int       `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
}

// Day returns the session's calendar-day key in loc.
func (s FocusSession) Day(loc *time.Location) string {
	return calendar.DayOf(s.StartedAt, loc).String()
}

// DailyFocusTotal accumulates committed focus time for one calendar day,
// with a bounded trailing list of the most recent sessions.
type DailyFocusTotal struct {
	Day          string         `json:"day"`
	TotalSeconds int            `json:"total_seconds"`
	Sessions     []FocusSession `json:"sessions"`
}

// Add folds a committed session into the total. The trailing list keeps
// the most recent MaxTrailingSessions entries, dropping the oldest.
func (d *DailyFocusTotal) Add(session FocusSession) {
	if session.DurationSeconds <= 0 {
		panic(fmt.Sprintf("focus session with non-positive duration: %d", session.DurationSeconds))
	}
	d.TotalSeconds += session.DurationSeconds
	d.Sessions = append(d.Sessions, session)
	if len(d.Sessions) > MaxTrailingSessions {
		d.Sessions = d.Sessions[len(d.Sessions)-MaxTrailingSessions:]
	}
}
