package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusdesk/internal/export"
	"focusdesk/internal/session"
	"focusdesk/internal/space"
	"focusdesk/internal/stats"
	"focusdesk/internal/store"
)

// flushInterval bounds how much app-session time a crash can lose.
const flushInterval = 60 * time.Second

// App is the root Bubble Tea model.
type App struct {
	store    *store.Store
	registry *space.Registry
	engine   *session.Engine
	tracker  *session.Tracker
	stats    *stats.Aggregator

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	desk     deskModel
	insights insightsModel
	spaces   spacesModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, r *space.Registry, e *session.Engine, t *session.Tracker, agg *stats.Aggregator) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		registry:   r,
		engine:     e,
		tracker:    t,
		stats:      agg,
		activeView: viewDesk,
		desk:       newDeskModel(r, e),
		insights:   newInsightsModel(agg),
		spaces:     newSpacesModel(r),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(tickCmd(), flushCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func flushCmd() tea.Cmd {
	return tea.Tick(flushInterval, func(t time.Time) tea.Msg {
		return flushTickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.desk.setSize(a.width, contentHeight)
		a.insights.setSize(a.width, contentHeight)
		a.spaces.setSize(a.width, contentHeight)
		return a, nil

	case tea.FocusMsg:
		a.tracker.FocusGained()
		return a, nil

	case tea.BlurMsg:
		a.tracker.FocusLost()
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			// Bank whatever app-session time has not been persisted yet.
			a.tracker.Flush()
			return a, tea.Quit
		case key.Matches(msg, keys.Pause):
			if a.engine.Active() {
				a.engine.Toggle()
				return a, nil
			}
		case key.Matches(msg, keys.Mode):
			if a.engine.Active() {
				a.engine.SwitchMode()
				return a, nil
			}
		case key.Matches(msg, keys.Stop):
			if a.engine.Active() {
				recorded := a.engine.Elapsed()
				a.engine.Stop()
				a.status = "Session stopped, " + formatSeconds(recorded) + " focused"
				a.statusErr = false
				return a, nil
			}
		case key.Matches(msg, keys.Complete):
			if a.engine.Active() {
				name := a.engine.TaskName()
				a.engine.Complete()
				a.status = "Completed: " + name
				a.statusErr = false
				return a, nil
			}
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDesk
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewInsights
			a.insights.refresh()
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSpaces
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 3
			if a.activeView == viewInsights {
				a.insights.refresh()
			}
			return a, nil
		}

	case tickMsg:
		a.engine.Tick()
		return a, tickCmd()

	case flushTickMsg:
		a.tracker.Flush()
		return a, flushCmd()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDesk:
		a.desk, cmd = a.desk.update(msg)
	case viewInsights:
		a.insights, cmd = a.insights.update(msg)
	case viewSpaces:
		a.spaces, cmd = a.spaces.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDesk:
		return a.desk.formActive || a.desk.addPicking
	case viewSpaces:
		return a.spaces.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	// A running, unpaused session takes over the whole screen.
	if a.engine.Immersive() {
		return renderFocusOverlay(a.engine, a.width, a.height)
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDesk:
		content = a.desk.view()
	case viewInsights:
		content = a.insights.view()
	case viewSpaces:
		content = a.spaces.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("focusdesk")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	sessionInfo := ""
	if bar := renderSessionBar(a.engine); bar != "" {
		sessionInfo = " " + bar
	}

	appInfo := ""
	if a.tracker.Active() {
		appInfo = mutedStyle.Render(" ⧗ " + formatSeconds(a.tracker.CurrentTotal()))
	}

	left := footerStyle.Render(helpView)
	right := sessionInfo + appInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		days := a.stats.All()

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("focusdesk-stats-%s.csv", dateStr))
			if err := export.ToCSV(days, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("focusdesk-stats-%s.json", dateStr))
			if err := export.ToJSON(days, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
