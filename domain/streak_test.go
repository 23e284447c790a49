package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkTodayFirstEver(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	got, changed := StreakRecord{}.MarkToday(now, time.UTC)

	assert.True(t, changed)
	assert.Equal(t, 1, got.Current)
	assert.Equal(t, 1, got.Longest)
	assert.Equal(t, "2026-03-15", got.LastDate)
}

func TestMarkTodayConsecutive(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	record := StreakRecord{Current: 4, Longest: 6, LastDate: "2026-03-14"}

	got, changed := record.MarkToday(now, time.UTC)

	assert.True(t, changed)
	assert.Equal(t, 5, got.Current)
	assert.Equal(t, 6, got.Longest)
	assert.Equal(t, "2026-03-15", got.LastDate)
}

func TestMarkTodayNewLongest(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	record := StreakRecord{Current: 6, Longest: 6, LastDate: "2026-03-14"}

	got, _ := record.MarkToday(now, time.UTC)

	assert.Equal(t, 7, got.Current)
	assert.Equal(t, 7, got.Longest)
}

func TestMarkTodaySameDayIsNoOp(t *testing.T) {
	morning := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	record := StreakRecord{Current: 3, Longest: 5, LastDate: "2026-03-15"}

	for _, now := range []time.Time{morning, night} {
		got, changed := record.MarkToday(now, time.UTC)
		assert.False(t, changed)
		assert.Equal(t, record, got)
	}
}

func TestMarkTodayGapResets(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	record := StreakRecord{Current: 9, Longest: 9, LastDate: "2026-03-12"}

	got, changed := record.MarkToday(now, time.UTC)

	assert.True(t, changed)
	assert.Equal(t, 1, got.Current)
	assert.Equal(t, 9, got.Longest)
}

func TestMarkTodayClockRollbackIsNoOp(t *testing.T) {
	now := time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)
	record := StreakRecord{Current: 2, Longest: 4, LastDate: "2026-03-14"}

	got, changed := record.MarkToday(now, time.UTC)

	assert.False(t, changed)
	assert.Equal(t, record, got)
}

func TestMarkTodayMonthBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	record := StreakRecord{Current: 10, Longest: 10, LastDate: "2026-02-28"}

	got, _ := record.MarkToday(now, time.UTC)

	assert.Equal(t, 11, got.Current)
	assert.Equal(t, "2026-03-01", got.LastDate)
}

func TestMarkTodayUnreadableCursorRestarts(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	record := StreakRecord{Current: 3, Longest: 8, LastDate: "not-a-date"}

	got, changed := record.MarkToday(now, time.UTC)

	assert.True(t, changed)
	assert.Equal(t, 1, got.Current)
	assert.Equal(t, 8, got.Longest)
	assert.Equal(t, "2026-03-15", got.LastDate)
}

func TestMarkTodayTimezoneDecidesDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2026-03-14 23:00 UTC is already 2026-03-15 in Tokyo.
	now := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	record := StreakRecord{Current: 1, Longest: 1, LastDate: "2026-03-14"}

	got, changed := record.MarkToday(now, tokyo)

	assert.True(t, changed)
	assert.Equal(t, 2, got.Current)
	assert.Equal(t, "2026-03-15", got.LastDate)
}

func TestMarkTodayPanicsOnCorruptRecord(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	assert.Panics(t, func() {
		StreakRecord{Current: 5, Longest: 2}.MarkToday(now, time.UTC)
	})
	assert.Panics(t, func() {
		StreakRecord{Current: -1, Longest: 0}.MarkToday(now, time.UTC)
	})
}
