package lifecycle

import "time"

// Timer measures play time with pause support. The clock is injectable
// for tests.
type Timer struct {
	now     func() time.Time
	limit   time.Duration
	started time.Time
	elapsed time.Duration // accumulated before the current run
	running bool
}

// NewTimer creates a stopped timer. A zero limit means untimed.
// A nil clock uses time.Now.
func NewTimer(limit time.Duration, now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now, limit: limit}
}

// Start resets the timer and begins counting.
func (t *Timer) Start() {
	t.elapsed = 0
	t.started = t.now()
	t.running = true
}

// Pause stops counting, keeping the elapsed time.
func (t *Timer) Pause() {
	if !t.running {
		return
	}
	t.elapsed += t.now().Sub(t.started)
	t.running = false
}

// Resume continues counting after Pause.
func (t *Timer) Resume() {
	if t.running {
		return
	}
	t.started = t.now()
	t.running = true
}

// Stop freezes the elapsed time.
func (t *Timer) Stop() {
	t.Pause()
}

// Elapsed returns the total counted time.
func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.elapsed + t.now().Sub(t.started)
	}
	return t.elapsed
}

// Limit returns the configured time limit.
func (t *Timer) Limit() time.Duration {
	return t.limit
}

// Remaining returns time left before the limit, never negative.
// Untimed timers return zero.
func (t *Timer) Remaining() time.Duration {
	if t.limit <= 0 {
		return 0
	}
	left := t.limit - t.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether a timed timer ran past its limit.
func (t *Timer) Expired() bool {
	return t.limit > 0 && t.Elapsed() >= t.limit
}
