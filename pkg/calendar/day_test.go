package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		t    time.Time
		loc  *time.Location
		want string
	}{
		{
			name: "utc midday",
			t:    time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: "2026-03-15",
		},
		{
			name: "instant near utc midnight lands on previous local day",
			t:    time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC),
			loc:  ny,
			want: "2026-03-14",
		},
		{
			name: "nil location defaults to utc",
			t:    time.Date(2026, 1, 2, 23, 59, 59, 0, time.UTC),
			loc:  nil,
			want: "2026-01-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayOf(tt.t, tt.loc).String())
		})
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-02-28", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", day.String())

	_, err = ParseDay("02/28/2026", time.UTC)
	assert.Error(t, err)

	_, err = ParseDay("", time.UTC)
	assert.Error(t, err)
}

func TestDayOrdering(t *testing.T) {
	a, _ := ParseDay("2026-03-14", time.UTC)
	b, _ := ParseDay("2026-03-15", time.UTC)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}

func TestDayNext(t *testing.T) {
	tests := []struct {
		name string
		day  string
		want string
	}{
		{"plain", "2026-03-14", "2026-03-15"},
		{"month boundary", "2026-01-31", "2026-02-01"},
		{"year boundary", "2025-12-31", "2026-01-01"},
		{"leap day", "2028-02-28", "2028-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := ParseDay(tt.day, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tt.want, day.Next().String())
		})
	}
}

func TestDayNextAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 is the spring-forward date in New York.
	day, err := ParseDay("2026-03-07", ny)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-08", day.Next().String())
	assert.Equal(t, "2026-03-09", day.Next().Next().String())
}

func TestDayPrev(t *testing.T) {
	day, err := ParseDay("2026-03-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", day.Prev().String())
}

func TestStartOfDay(t *testing.T) {
	day, err := ParseDay("2026-06-10", time.UTC)
	require.NoError(t, err)

	start := day.StartOfDay()
	assert.Equal(t, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), start)
}
