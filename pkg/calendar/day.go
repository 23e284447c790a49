package calendar

import (
	"fmt"
	"time"
)

// Day is a calendar date in a fixed location, used for all day-boundary
// comparisons so that "today" and "yesterday" never depend on string
// slicing of timestamps.
type Day struct {
	Year  int
	Month time.Month
	DayN  int

	loc *time.Location
}

// DayOf truncates an instant to its calendar day in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, DayN: d, loc: loc}
}

// ParseDay parses a "2006-01-02" key into a Day in loc.
func ParseDay(key string, loc *time.Location) (Day, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02", key, loc)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return DayOf(t, loc), nil
}

// String returns the canonical "2006-01-02" key.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.DayN)
}

// StartOfDay returns midnight of the day in its location.
func (d Day) StartOfDay() time.Time {
	loc := d.loc
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.DayN, 0, 0, 0, 0, loc)
}

func (d Day) Equal(other Day) bool {
	return d.Year == other.Year && d.Month == other.Month && d.DayN == other.DayN
}

func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.DayN < other.DayN
}

func (d Day) After(other Day) bool {
	return other.Before(d)
}

// Next returns the following calendar day; AddDate handles month and DST
// boundaries for us.
func (d Day) Next() Day {
	return DayOf(d.StartOfDay().AddDate(0, 0, 1).Add(12*time.Hour), d.location())
}

// Prev returns the preceding calendar day.
func (d Day) Prev() Day {
	return DayOf(d.StartOfDay().Add(-12*time.Hour), d.location())
}

func (d Day) location() *time.Location {
	if d.loc == nil {
		return time.UTC
	}
	return d.loc
}
