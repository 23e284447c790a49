package domain

import (
	"fmt"
	"time"

	"github.com/eduhub/backend/pkg/calendar"
)

// StreakRecord tracks consecutive active calendar days from a single
// last-active cursor. LastDate is a "2006-01-02" key, empty until the
// first mark. Invariant: Longest >= Current.
type StreakRecord struct {
	UserID   string `json:"-"`
	Current  int    `json:"current"`
	Longest  int    `json:"longest"`
	LastDate string `json:"last_date,omitempty"`
}

// MarkToday advances the streak for the calendar day of now. Repeated
// marks on the same day are no-ops, as are marks whose day precedes
// LastDate (clock rollback). Returns the new record and whether state
// changed (i.e. whether the caller needs to persist).
func (s StreakRecord) MarkToday(now time.Time, loc *time.Location) (StreakRecord, bool) {
	s.mustBeValid()

	today := calendar.DayOf(now, loc)
	if s.LastDate != "" {
		last, err := calendar.ParseDay(s.LastDate, loc)
		if err == nil {
			if last.Equal(today) || today.Before(last) {
				return s, false
			}
			if last.Next().Equal(today) {
				s.Current++
			} else {
				s.Current = 1
			}
		} else {
			// Unreadable cursor: start over rather than guess.
			s.Current = 1
		}
	} else {
		s.Current = 1
	}

	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastDate = today.String()
	return s, true
}

// mustBeValid fails fast on corrupted state; masking it would hide
// aggregation bugs upstream.
func (s StreakRecord) mustBeValid() {
	if s.Current < 0 || s.Longest < 0 || s.Longest < s.Current {
		panic(fmt.Sprintf("corrupt streak record: current=%d longest=%d", s.Current, s.Longest))
	}
}
