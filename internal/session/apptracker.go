package session

import "time"

// AppRecorder receives app-session seconds. Implemented by stats.Aggregator.
type AppRecorder interface {
	TodayKey() string
	AddAppSessionSeconds(date string, seconds int)
}

// Tracker accumulates wall-clock time the application window holds input
// focus, independent of any focus session. Accumulation restarts at zero
// every process launch; history lives only in the stats buckets.
type Tracker struct {
	tracking    bool
	start       time.Time // when tracking last started or resumed
	accumulated int       // seconds banked from closed intervals
	lastFlushed int       // total already reported to the recorder

	recorder AppRecorder
	now      func() time.Time
}

func NewTracker(recorder AppRecorder) *Tracker {
	return &Tracker{
		recorder: recorder,
		now:      time.Now,
	}
}

// SetClock overrides the time source for tests.
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// Initialize starts tracking from a clean slate. Called once at startup
// after persisted state has loaded; focused reflects whether the window
// currently holds input focus.
func (t *Tracker) Initialize(focused bool) {
	t.tracking = focused
	t.start = t.now()
	t.accumulated = 0
	t.lastFlushed = 0
}

func (t *Tracker) Tracking() bool   { return t.tracking }
func (t *Tracker) Accumulated() int { return t.accumulated }

// FocusGained opens a new tracking interval. No-op when already tracking,
// so duplicate focus events cannot reset the interval start.
func (t *Tracker) FocusGained() {
	if t.tracking {
		return
	}
	t.tracking = true
	t.start = t.now()
}

// FocusLost closes the open interval and banks its floored seconds.
func (t *Tracker) FocusLost() {
	if !t.tracking {
		return
	}
	t.accumulated += int(t.now().Sub(t.start).Seconds())
	t.tracking = false
}

// CurrentTotal is a pure read of the session's total seconds so far,
// including the open interval when tracking. Safe to call at any time.
func (t *Tracker) CurrentTotal() int {
	if !t.tracking {
		return t.accumulated
	}
	return t.accumulated + int(t.now().Sub(t.start).Seconds())
}

// Active reports whether the tracker has ever accrued or is accruing time.
// Gates the periodic flush so an app that never held focus writes nothing.
func (t *Tracker) Active() bool {
	return t.tracking || t.accumulated > 0
}

// Flush reports the seconds accrued since the previous flush to today's
// bucket and advances the baseline. Deltas of zero or less write nothing.
// The final flush at shutdown uses the same delta accounting, so a minute
// already persisted by the periodic flush can never be added twice.
func (t *Tracker) Flush() int {
	total := t.CurrentTotal()
	delta := total - t.lastFlushed
	if delta <= 0 {
		return 0
	}
	t.recorder.AddAppSessionSeconds(t.recorder.TodayKey(), delta)
	t.lastFlushed = total
	return delta
}
