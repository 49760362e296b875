package signal

import (
	"sync"
	"time"
)

// ThrottleState is the sliding window bookkeeping of a ScanThrottle.
type ThrottleState struct {
	WindowStart   time.Time
	CountInWindow int
}

// Decision is the outcome of a throttle acquisition.
type Decision struct {
	Allowed   bool
	Remaining time.Duration // wait until the window rolls over, zero when allowed
}

// ScanThrottle allows at most limit active scans per window. The window is
// anchored to its first acquisition and only rolls over lazily, on the next
// TryAcquire after it has elapsed.
type ScanThrottle struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	state  ThrottleState
}

// NewScanThrottle creates a throttle. Non-positive arguments fall back to
// one scan and a zero-length window respectively.
func NewScanThrottle(limit int, window time.Duration) *ScanThrottle {
	if limit < 1 {
		limit = 1
	}
	if window < 0 {
		window = 0
	}
	return &ScanThrottle{limit: limit, window: window}
}

// TryAcquire records a scan attempt at now if the budget allows it.
func (t *ScanThrottle) TryAcquire(now time.Time) Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := now.Sub(t.state.WindowStart)
	if t.state.CountInWindow > 0 && elapsed > t.window {
		t.state = ThrottleState{}
	}

	if t.state.CountInWindow < t.limit {
		if t.state.CountInWindow == 0 {
			t.state.WindowStart = now
		}
		t.state.CountInWindow++
		return Decision{Allowed: true}
	}

	remaining := t.window - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Remaining: remaining}
}

// Reset clears the window, as when a new session starts.
func (t *ScanThrottle) Reset() {
	t.mu.Lock()
	t.state = ThrottleState{}
	t.mu.Unlock()
}

// State returns a snapshot of the window bookkeeping.
func (t *ScanThrottle) State() ThrottleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Limit returns the number of scans allowed per window.
func (t *ScanThrottle) Limit() int {
	return t.limit
}

// Window returns the window length.
func (t *ScanThrottle) Window() time.Duration {
	return t.window
}
