package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusdesk/internal/stats"
)

type insightsModel struct {
	stats  *stats.Aggregator
	width  int
	height int
	days   int
	chart  barchart.Model
}

func newInsightsModel(agg *stats.Aggregator) insightsModel {
	return insightsModel{
		stats: agg,
		days:  7,
		chart: barchart.New(60, 12),
	}
}

func (m *insightsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

func (m insightsModel) update(msg tea.Msg) (insightsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if m.days < 28 {
				m.days += 7
				m.buildChart()
			}
		case key.Matches(msg, keys.Down):
			if m.days > 7 {
				m.days -= 7
				m.buildChart()
			}
		}
	}
	return m, nil
}

func (m *insightsModel) refresh() {
	m.buildChart()
}

func (m *insightsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	focusStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	appStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, day := range m.stats.LastNDays(m.days) {
		label := day.Date
		if t, err := time.Parse("2006-01-02", day.Date); err == nil {
			label = t.Format("Mon 02")
		}

		values := []barchart.BarValue{
			{
				Name:  "focus",
				Value: float64(day.FocusSeconds) / 3600.0,
				Style: focusStyle,
			},
			{
				Name:  "app",
				Value: float64(day.AppSessionSeconds) / 3600.0,
				Style: appStyle,
			},
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m insightsModel) view() string {
	w := m.width - 4

	rangeLabel := mutedStyle.Render(fmt.Sprintf("last %d days", m.days))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Insights"), "  ", rangeLabel,
	)

	chartView := m.chart.View()

	today := m.stats.Bucket(m.stats.TodayKey())
	todayLine := lipgloss.JoinHorizontal(lipgloss.Top,
		statCell("Today focus", formatSeconds(today.FocusSeconds)),
		statCell("Tasks done", fmt.Sprintf("%d", today.TasksCompleted)),
		statCell("App time", formatSeconds(today.AppSessionSeconds)),
	)

	totals := m.stats.Totals()
	totalsLine := lipgloss.JoinHorizontal(lipgloss.Top,
		statCell("All-time focus", formatHours(totals.FocusSeconds)),
		statCell("All-time tasks", fmt.Sprintf("%d", totals.TasksCompleted)),
		statCell("All-time app", formatHours(totals.AppSessionSeconds)),
	)

	legend := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(colorPrimary).Render("■ focus"),
		"   ",
		lipgloss.NewStyle().Foreground(colorSubtle).Render("■ app session"),
	)

	hints := mutedStyle.Render("↑/↓: widen/narrow range  e: export")

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		chartView,
		legend,
		"",
		todayLine,
		totalsLine,
		"",
		hints,
	)

	return panelStyle.Width(w).Render(content)
}

func statCell(label, value string) string {
	cell := lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(label),
		highlightStyle.Render(value),
	)
	return lipgloss.NewStyle().MarginRight(4).Render(cell)
}
