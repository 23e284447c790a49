package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocusSessionDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	session := FocusSession{StartedAt: time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)}

	assert.Equal(t, "2026-03-14", session.Day(time.UTC))
	assert.Equal(t, "2026-03-15", session.Day(tokyo))
}

func TestDailyFocusTotalAdd(t *testing.T) {
	var total DailyFocusTotal

	total.Add(FocusSession{ID: "a", DurationSeconds: 300})
	total.Add(FocusSession{ID: "b", DurationSeconds: 1500})

	assert.Equal(t, 1800, total.TotalSeconds)
	require.Len(t, total.Sessions, 2)
	assert.Equal(t, "a", total.Sessions[0].ID)
}

func TestDailyFocusTotalCapsTrailingSessions(t *testing.T) {
	var total DailyFocusTotal
	for i := 0; i < MaxTrailingSessions+10; i++ {
		total.Add(FocusSession{ID: fmt.Sprintf("s%d", i), DurationSeconds: 60})
	}

	assert.Len(t, total.Sessions, MaxTrailingSessions)
	// The oldest entries are dropped, the total keeps counting.
	assert.Equal(t, "s10", total.Sessions[0].ID)
	assert.Equal(t, (MaxTrailingSessions+10)*60, total.TotalSeconds)
}

func TestDailyFocusTotalRejectsNonPositiveDuration(t *testing.T) {
	var total DailyFocusTotal

	assert.Panics(t, func() { total.Add(FocusSession{DurationSeconds: 0}) })
	assert.Panics(t, func() { total.Add(FocusSession{DurationSeconds: -5}) })
}
