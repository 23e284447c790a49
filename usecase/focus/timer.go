package focus

import (
	"sync"
	"time"
)

// State of the focus timer. Paused is observably Idle with elapsed time
// retained.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Timer accumulates focused seconds through an explicit once-per-second
// tick. The tick goroutine is owned by the timer and is always cancelled
// on pause, stop or Close; at most one tick source exists per timer.
type Timer struct {
	mu      sync.Mutex
	state   State
	elapsed int
	started time.Time

	interval time.Duration
	stopTick chan struct{}
	wg       sync.WaitGroup
}

// NewTimer creates an idle timer ticking at the given interval
// (one second when zero).
func NewTimer(interval time.Duration) *Timer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Timer{
		state:    StateIdle,
		interval: interval,
	}
}

// State returns the current state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Elapsed returns the accumulated seconds.
func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// StartedAt returns when the current accumulation began (zero while Idle
// with no elapsed time).
func (t *Timer) StartedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

// Start moves Idle or Paused to Running and launches the ticker.
// Starting a running timer is a no-op.
func (t *Timer) Start(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateRunning {
		return
	}
	if t.elapsed == 0 {
		t.started = now
	}
	t.state = StateRunning
	t.launchTickerLocked()
}

// Pause stops accumulation but keeps the elapsed value. Only valid from
// Running; anything else is a no-op.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return
	}
	t.state = StatePaused
	t.cancelTickerLocked()
}

// Stop moves Running or Paused to Idle and returns the elapsed seconds to
// commit along with the start instant. A second Stop with elapsed already
// reset returns 0: idempotent, not an error.
func (t *Timer) Stop() (elapsed int, startedAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelTickerLocked()
	elapsed = t.elapsed
	startedAt = t.started
	t.state = StateIdle
	t.elapsed = 0
	t.started = time.Time{}
	return elapsed, startedAt
}

// Reset discards retained elapsed time without committing. Only valid
// while not Running; returns false when the timer is running.
func (t *Timer) Reset() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateRunning {
		return false
	}
	t.state = StateIdle
	t.elapsed = 0
	t.started = time.Time{}
	return true
}

// Close cancels the ticker without touching elapsed state.
func (t *Timer) Close() {
	t.mu.Lock()
	t.cancelTickerLocked()
	t.mu.Unlock()
	t.wg.Wait()
}

// tick adds one second while Running. Exposed for deterministic tests;
// the ticker goroutine is the only production caller.
func (t *Timer) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateRunning {
		t.elapsed++
	}
}

func (t *Timer) launchTickerLocked() {
	if t.stopTick != nil {
		return
	}
	stop := make(chan struct{})
	t.stopTick = stop

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.tick()
			case <-stop:
				return
			}
		}
	}()
}

func (t *Timer) cancelTickerLocked() {
	if t.stopTick == nil {
		return
	}
	close(t.stopTick)
	t.stopTick = nil
}
