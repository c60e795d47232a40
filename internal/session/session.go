package session

// Mode selects which counter a running session accrues.
type Mode int

const (
	ModeFocus Mode = iota
	ModeBreak
)

func (m Mode) String() string {
	if m == ModeBreak {
		return "BREAK"
	}
	return "FOCUS"
}

// Recorder receives the statistics a session produces. Implemented by
// stats.Aggregator.
type Recorder interface {
	TodayKey() string
	AddFocusSeconds(date string, seconds int)
	IncrementTasksCompleted(date string)
}

// CompleteFunc marks the task bound to a session as done in its owning
// widget. Fire and forget: the engine does not roll back on failure.
type CompleteFunc func(widgetID string)

// Engine is the focus-session state machine. At most one session exists per
// process; all mutation goes through its methods. It is driven by an
// external 1 Hz tick while running.
type Engine struct {
	active   bool
	paused   bool
	mode     Mode
	elapsed  int // seconds accrued in FOCUS
	breakSec int // seconds accrued in BREAK

	taskName string
	widgetID string

	recorder Recorder
	complete CompleteFunc
}

func NewEngine(recorder Recorder, complete CompleteFunc) *Engine {
	return &Engine{
		recorder: recorder,
		complete: complete,
	}
}

func (e *Engine) Active() bool     { return e.active }
func (e *Engine) Paused() bool     { return e.paused }
func (e *Engine) Mode() Mode       { return e.mode }
func (e *Engine) Elapsed() int     { return e.elapsed }
func (e *Engine) BreakTime() int   { return e.breakSec }
func (e *Engine) TaskName() string { return e.taskName }
func (e *Engine) WidgetID() string { return e.widgetID }

// Immersive reports whether presentation should take over the screen with
// the session readout. It is derived, never stored, so it can never go
// stale across a transition.
func (e *Engine) Immersive() bool {
	return e.active && !e.paused
}

// Start binds a new focus session to a task. If a session is already
// running it is stopped first, so its elapsed focus time is recorded rather
// than silently overwritten.
func (e *Engine) Start(taskName, widgetID string) {
	if e.active {
		e.Stop()
	}
	e.active = true
	e.paused = false
	e.mode = ModeFocus
	e.taskName = taskName
	e.widgetID = widgetID
}

// Pause suspends ticking. No-op when idle or already paused.
func (e *Engine) Pause() {
	if !e.active {
		return
	}
	e.paused = true
}

// Resume re-enables ticking in whatever mode was active. No-op unless paused.
func (e *Engine) Resume() {
	if !e.active {
		return
	}
	e.paused = false
}

// Toggle flips between running and paused.
func (e *Engine) Toggle() {
	if !e.active {
		return
	}
	e.paused = !e.paused
}

// SwitchMode flips FOCUS and BREAK. Each mode keeps its own counter; the
// switch alters neither. Valid while paused, changing what resumes.
func (e *Engine) SwitchMode() {
	if !e.active {
		return
	}
	if e.mode == ModeFocus {
		e.mode = ModeBreak
	} else {
		e.mode = ModeFocus
	}
}

// Tick advances the counter selected by mode by one second. Calls while
// idle or paused do nothing, so a late tick delivered after a transition
// cannot accrue time.
func (e *Engine) Tick() {
	if !e.active || e.paused {
		return
	}
	if e.mode == ModeBreak {
		e.breakSec++
	} else {
		e.elapsed++
	}
}

// Stop records the accrued focus time for today, then resets to idle.
// Break time is discarded: only focus time counts toward statistics.
func (e *Engine) Stop() {
	if e.elapsed > 0 {
		e.recorder.AddFocusSeconds(e.recorder.TodayKey(), e.elapsed)
	}
	e.active = false
	e.paused = false
	e.mode = ModeFocus
	e.elapsed = 0
	e.breakSec = 0
	e.taskName = ""
	e.widgetID = ""
}

// Complete marks the bound task done in its widget, records the completion,
// then stops the session (which records the focus time). Ordering matters:
// both stat merges target today's bucket and must not clobber each other.
func (e *Engine) Complete() {
	if !e.active {
		return
	}
	if e.complete != nil && e.widgetID != "" {
		e.complete(e.widgetID)
	}
	e.recorder.IncrementTasksCompleted(e.recorder.TodayKey())
	e.Stop()
}
