package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"focusdesk/internal/session"
	"focusdesk/internal/space"
	"focusdesk/internal/stats"
	"focusdesk/internal/store"
	"focusdesk/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	agg := stats.NewAggregator(s)
	agg.Load()

	registry := space.NewRegistry(s)
	registry.Load()

	engine := session.NewEngine(agg, registry.CompleteActiveTask)

	tracker := session.NewTracker(agg)
	tracker.Initialize(true)

	app := tui.NewApp(s, registry, engine, tracker, agg)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Final flush mirrors the in-app quit path for SIGINT / terminal close.
	tracker.Flush()
}
