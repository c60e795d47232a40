package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDesk viewState = iota
	viewInsights
	viewSpaces
)

var viewNames = []string{"Desk", "Insights", "Spaces"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// tickMsg drives the 1 Hz session tick and display refresh.
type tickMsg time.Time

// flushTickMsg fires every flushInterval to bound stat loss on a crash.
type flushTickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatSeconds(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatClock renders a stopwatch readout, growing to H:MM:SS past an hour.
func formatClock(secs int) string {
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatHours(secs int) string {
	return fmt.Sprintf("%.1fh", float64(secs)/3600)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
