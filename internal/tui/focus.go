package tui

import (
	"github.com/charmbracelet/lipgloss"

	"focusdesk/internal/session"
)

// renderFocusOverlay draws the full-screen immersive view shown while a
// session is running and not paused. It replaces the whole desk so the
// timer is the only thing on screen.
func renderFocusOverlay(e *session.Engine, width, height int) string {
	var readout, label string
	switch e.Mode() {
	case session.ModeBreak:
		readout = breakwatchStyle.Render(formatClock(e.BreakTime()))
		label = successStyle.Render("BREAK")
	default:
		readout = stopwatchStyle.Render(formatClock(e.Elapsed()))
		label = accentStyle.Render("FOCUS")
	}

	task := ""
	if e.TaskName() != "" {
		task = titleStyle.Render(e.TaskName())
	}

	hints := mutedStyle.Render("space: pause  b: focus/break  c: complete  x: stop")

	body := lipgloss.JoinVertical(lipgloss.Center,
		label,
		"",
		readout,
		"",
		task,
		"",
		hints,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// renderSessionBar is the compact one-line summary shown in the footer
// while a session exists but the immersive view is not active (paused).
func renderSessionBar(e *session.Engine) string {
	if !e.Active() {
		return ""
	}

	state := accentStyle.Render("● " + e.Mode().String())
	if e.Paused() {
		state = warningStyle.Render("⏸ paused")
	}

	clock := formatClock(e.Elapsed())
	if e.Mode() == session.ModeBreak {
		clock = formatClock(e.BreakTime())
	}

	out := state + " " + clock
	if e.TaskName() != "" {
		out += mutedStyle.Render("  " + e.TaskName())
	}
	return out
}
