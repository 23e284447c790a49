package focus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var timerNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestTimer() *Timer {
	// A long interval keeps the background ticker out of the way; the
	// tests drive elapsed time through tick directly.
	return NewTimer(time.Hour)
}

func TestTimerInitialState(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	assert.Equal(t, StateIdle, timer.State())
	assert.Zero(t, timer.Elapsed())
	assert.True(t, timer.StartedAt().IsZero())
}

func TestTimerStart(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Start(timerNow)

	assert.Equal(t, StateRunning, timer.State())
	assert.Equal(t, timerNow, timer.StartedAt())
}

func TestTimerStartWhileRunningIsNoOp(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Start(timerNow)
	timer.tick()
	timer.tick()
	timer.Start(timerNow.Add(time.Minute))

	assert.Equal(t, StateRunning, timer.State())
	assert.Equal(t, 2, timer.Elapsed())
	assert.Equal(t, timerNow, timer.StartedAt())
}

func TestTimerPauseKeepsElapsed(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Start(timerNow)
	timer.tick()
	timer.tick()
	timer.tick()
	timer.Pause()

	assert.Equal(t, StatePaused, timer.State())
	assert.Equal(t, 3, timer.Elapsed())

	// Ticks while paused must not accumulate.
	timer.tick()
	assert.Equal(t, 3, timer.Elapsed())
}

func TestTimerPauseWhileIdleIsNoOp(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Pause()
	assert.Equal(t, StateIdle, timer.State())
}

func TestTimerResumeKeepsStartInstant(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Start(timerNow)
	timer.tick()
	timer.Pause()
	timer.Start(timerNow.Add(10 * time.Minute))
	timer.tick()

	assert.Equal(t, 2, timer.Elapsed())
	assert.Equal(t, timerNow, timer.StartedAt())
}

func TestTimerStop(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Start(timerNow)
	timer.tick()
	timer.tick()

	elapsed, startedAt := timer.Stop()

	assert.Equal(t, 2, elapsed)
	assert.Equal(t, timerNow, startedAt)
	assert.Equal(t, StateIdle, timer.State())
	assert.Zero(t, timer.Elapsed())
}

func TestTimerStopIsIdempotent(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Start(timerNow)
	timer.tick()
	timer.Stop()

	elapsed, startedAt := timer.Stop()
	assert.Zero(t, elapsed)
	assert.True(t, startedAt.IsZero())
	assert.Equal(t, StateIdle, timer.State())
}

func TestTimerStopFromPaused(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Start(timerNow)
	timer.tick()
	timer.Pause()

	elapsed, _ := timer.Stop()
	assert.Equal(t, 1, elapsed)
}

func TestTimerResetDiscardsPausedTime(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Start(timerNow)
	timer.tick()
	timer.tick()
	timer.Pause()

	assert.True(t, timer.Reset())
	assert.Equal(t, StateIdle, timer.State())
	assert.Zero(t, timer.Elapsed())
}

func TestTimerResetRejectedWhileRunning(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Start(timerNow)
	timer.tick()

	assert.False(t, timer.Reset())
	assert.Equal(t, StateRunning, timer.State())
	assert.Equal(t, 1, timer.Elapsed())
}

func TestTimerFullCycleAfterStop(t *testing.T) {
	timer := newTestTimer()
	defer timer.Close()

	timer.Start(timerNow)
	timer.tick()
	timer.Stop()

	later := timerNow.Add(time.Hour)
	timer.Start(later)
	timer.tick()
	timer.tick()

	elapsed, startedAt := timer.Stop()
	assert.Equal(t, 2, elapsed)
	assert.Equal(t, later, startedAt)
}

func TestTimerTicksWithRealTicker(t *testing.T) {
	timer := NewTimer(5 * time.Millisecond)
	defer timer.Close()

	timer.Start(timerNow)
	assert.Eventually(t, func() bool {
		return timer.Elapsed() >= 2
	}, time.Second, 5*time.Millisecond)

	timer.Pause()
	paused := timer.Elapsed()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, paused, timer.Elapsed())
}
