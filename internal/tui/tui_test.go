package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"focusdesk/internal/session"
	"focusdesk/internal/space"
	"focusdesk/internal/stats"
	"focusdesk/internal/store"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	agg := stats.NewAggregator(s)
	agg.Load()

	reg := space.NewRegistry(s)
	reg.Load()

	engine := session.NewEngine(agg, reg.CompleteActiveTask)
	tracker := session.NewTracker(agg)
	tracker.Initialize(true)

	app := NewApp(s, reg, engine, tracker, agg)
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(App)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ============================================================
// App model
// ============================================================

func TestAppStartsOnDesk(t *testing.T) {
	a := newTestApp(t)
	if a.activeView != viewDesk {
		t.Fatal("app should start on the desk view")
	}
}

func TestAppTabSwitching(t *testing.T) {
	a := newTestApp(t)

	m, _ := a.Update(keyPress('2'))
	a = m.(App)
	if a.activeView != viewInsights {
		t.Fatal("2 should switch to insights")
	}

	m, _ = a.Update(keyPress('3'))
	a = m.(App)
	if a.activeView != viewSpaces {
		t.Fatal("3 should switch to spaces")
	}

	m, _ = a.Update(keyPress('1'))
	a = m.(App)
	if a.activeView != viewDesk {
		t.Fatal("1 should switch back to desk")
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = m.(App)
	if a.activeView != viewInsights {
		t.Fatal("tab should cycle to the next view")
	}
}

func TestAppTickDrivesSession(t *testing.T) {
	a := newTestApp(t)
	a.engine.Start("write tests", "w1")

	for i := 0; i < 5; i++ {
		m, _ := a.Update(tickMsg{})
		a = m.(App)
	}

	if a.engine.Elapsed() != 5 {
		t.Fatalf("expected 5 elapsed seconds, got %d", a.engine.Elapsed())
	}
}

func TestAppTickReschedules(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tickMsg{})
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

// ============================================================
// Focus / blur routing
// ============================================================

func TestAppFocusBlurRouting(t *testing.T) {
	a := newTestApp(t)
	if !a.tracker.Tracking() {
		t.Fatal("tracker should be tracking after Initialize(true)")
	}

	m, _ := a.Update(tea.BlurMsg{})
	a = m.(App)
	if a.tracker.Tracking() {
		t.Fatal("blur should stop tracking")
	}

	m, _ = a.Update(tea.FocusMsg{})
	a = m.(App)
	if !a.tracker.Tracking() {
		t.Fatal("focus should resume tracking")
	}
}

// ============================================================
// Session keys
// ============================================================

func TestAppSessionKeys(t *testing.T) {
	a := newTestApp(t)
	a.engine.Start("deep work", "w1")

	m, _ := a.Update(keyPress(' '))
	a = m.(App)
	if !a.engine.Paused() {
		t.Fatal("space should pause the session")
	}

	m, _ = a.Update(keyPress(' '))
	a = m.(App)
	if a.engine.Paused() {
		t.Fatal("space should resume the session")
	}

	m, _ = a.Update(keyPress('b'))
	a = m.(App)
	if a.engine.Mode() != session.ModeBreak {
		t.Fatal("b should switch to break mode")
	}

	m, _ = a.Update(keyPress('x'))
	a = m.(App)
	if a.engine.Active() {
		t.Fatal("x should stop the session")
	}
}

func TestAppSessionKeysIdleNoop(t *testing.T) {
	a := newTestApp(t)

	m, _ := a.Update(keyPress('x'))
	a = m.(App)
	if a.engine.Active() {
		t.Fatal("x while idle should not start anything")
	}

	m, _ = a.Update(keyPress('c'))
	a = m.(App)
	if a.stats.Totals().TasksCompleted != 0 {
		t.Fatal("c while idle should not complete anything")
	}
}

// ============================================================
// Immersive overlay
// ============================================================

func TestAppImmersiveView(t *testing.T) {
	a := newTestApp(t)
	a.engine.Start("deep work", "w1")

	out := a.View()
	if !strings.Contains(out, "FOCUS") {
		t.Fatal("running session should render the immersive overlay")
	}
	if !strings.Contains(out, "deep work") {
		t.Fatal("overlay should show the task name")
	}

	a.engine.Pause()
	out = a.View()
	if !strings.Contains(out, "Desk") {
		t.Fatal("paused session should fall back to the normal layout")
	}
}

// ============================================================
// Desk model
// ============================================================

func TestDeskTaskRows(t *testing.T) {
	a := newTestApp(t)
	rows := a.desk.taskRows()
	if len(rows) != 2 {
		t.Fatalf("seeded space should flatten to 2 task rows, got %d", len(rows))
	}
}

func TestDeskFocusStartsSession(t *testing.T) {
	a := newTestApp(t)

	// Move to the pending task (row 1; row 0 is completed).
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a = m.(App)
	m, _ = a.Update(keyPress('f'))
	a = m.(App)

	if !a.engine.Active() {
		t.Fatal("f on a pending task should start a session")
	}
	if a.engine.TaskName() != "Plan the day" {
		t.Fatalf("session bound to wrong task: %q", a.engine.TaskName())
	}

	w := a.registry.Widget(a.engine.WidgetID())
	if w == nil || w.Todo == nil || w.Todo.ActiveTaskID == "" {
		t.Fatal("focused task should be marked active on its widget")
	}
}

func TestDeskFocusCompletedTaskRejected(t *testing.T) {
	a := newTestApp(t)

	// Row 0 is the already-completed seed task.
	m, _ := a.Update(keyPress('f'))
	a = m.(App)
	if a.engine.Active() {
		t.Fatal("f on a completed task should not start a session")
	}
}

func TestDeskCompleteLifecycle(t *testing.T) {
	a := newTestApp(t)

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a = m.(App)
	m, _ = a.Update(keyPress('f'))
	a = m.(App)

	widgetID := a.engine.WidgetID()

	for i := 0; i < 10; i++ {
		m, _ = a.Update(tickMsg{})
		a = m.(App)
	}

	m, _ = a.Update(keyPress('c'))
	a = m.(App)

	if a.engine.Active() {
		t.Fatal("complete should end the session")
	}

	today := a.stats.Bucket(a.stats.TodayKey())
	if today.TasksCompleted != 1 {
		t.Fatalf("expected 1 completed task, got %d", today.TasksCompleted)
	}
	if today.FocusSeconds != 10 {
		t.Fatalf("expected 10 focus seconds, got %d", today.FocusSeconds)
	}

	w := a.registry.Widget(widgetID)
	if w.Todo.Pending() != 0 {
		t.Fatal("the focused task should be marked done")
	}
}

func TestDeskAddWidgetPicker(t *testing.T) {
	a := newTestApp(t)
	before := len(a.registry.Active().Widgets)

	m, _ := a.Update(keyPress('a'))
	a = m.(App)
	if !a.desk.addPicking {
		t.Fatal("a should open the widget picker")
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(App)
	if a.desk.addPicking {
		t.Fatal("enter should close the picker")
	}
	if len(a.registry.Active().Widgets) != before+1 {
		t.Fatal("enter should add a widget")
	}
}

// ============================================================
// Spaces model
// ============================================================

func TestSpacesActivate(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(keyPress('3'))
	a = m.(App)

	spaces := a.registry.Spaces()
	if len(spaces) != 2 {
		t.Fatalf("expected 2 seeded spaces, got %d", len(spaces))
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a = m.(App)
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(App)

	if a.registry.ActiveID() != spaces[1].ID {
		t.Fatal("enter should activate the highlighted space")
	}
}

func TestSpacesDeleteLastRejected(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(keyPress('3'))
	a = m.(App)

	m, _ = a.Update(keyPress('d'))
	a = m.(App)
	if len(a.registry.Spaces()) != 1 {
		t.Fatal("d should delete a space")
	}

	m, cmd := a.Update(keyPress('d'))
	a = m.(App)
	if len(a.registry.Spaces()) != 1 {
		t.Fatal("the last space must survive")
	}
	if cmd == nil {
		t.Fatal("deleting the last space should report an error status")
	}
}

// ============================================================
// Export picker
// ============================================================

func TestExportPickerToggle(t *testing.T) {
	a := newTestApp(t)

	m, _ := a.Update(keyPress('e'))
	a = m.(App)
	if !a.exportPicking {
		t.Fatal("e should open the export picker")
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = m.(App)
	if a.exportPicking {
		t.Fatal("esc should close the export picker")
	}
}

func TestStatusErrorStyling(t *testing.T) {
	a := newTestApp(t)

	m, _ := a.Update(statusMsg{text: "something broke", isError: true})
	a = m.(App)
	if !a.statusErr {
		t.Fatal("error status should be flagged for the footer")
	}

	m, _ = a.Update(statusMsg{text: "all good"})
	a = m.(App)
	if a.statusErr {
		t.Fatal("a normal status should clear the error flag")
	}
}

// ============================================================
// Formatting helpers
// ============================================================

func TestFormatClock(t *testing.T) {
	cases := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}
	for _, c := range cases {
		if got := formatClock(c.secs); got != c.want {
			t.Errorf("formatClock(%d) = %q, want %q", c.secs, got, c.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := formatSeconds(3725); got != "01:02:05" {
		t.Errorf("formatSeconds(3725) = %q", got)
	}
}
