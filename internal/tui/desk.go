package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"focusdesk/internal/session"
	"focusdesk/internal/space"
)

// taskRow is one selectable line on the desk: a todo item plus the widget
// that owns it.
type taskRow struct {
	widgetID string
	item     space.TodoItem
}

type deskModel struct {
	registry *space.Registry
	engine   *session.Engine
	width    int
	height   int

	cursor int

	// New-task form
	formActive   bool
	form         *huh.Form
	taskText     *string
	targetWidget string

	// Add-widget picker
	addPicking bool
	addCursor  int
}

var addableWidgets = []space.WidgetType{
	space.WidgetTodo,
	space.WidgetMemo,
	space.WidgetTimer,
	space.WidgetKanban,
	space.WidgetClock,
	space.WidgetCalendar,
}

func newDeskModel(r *space.Registry, e *session.Engine) deskModel {
	text := ""
	return deskModel{
		registry: r,
		engine:   e,
		taskText: &text,
	}
}

func (d *deskModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

// taskRows flattens the active space's todo widgets into selectable rows.
func (d deskModel) taskRows() []taskRow {
	var rows []taskRow
	for _, w := range d.registry.Active().Widgets {
		if w.Type != space.WidgetTodo || w.Todo == nil {
			continue
		}
		for _, item := range w.Todo.Items {
			rows = append(rows, taskRow{widgetID: w.ID, item: item})
		}
	}
	return rows
}

func (d deskModel) selectedRow() *taskRow {
	rows := d.taskRows()
	if len(rows) == 0 {
		return nil
	}
	i := min(d.cursor, len(rows)-1)
	return &rows[i]
}

func (d deskModel) update(msg tea.Msg) (deskModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}
	if d.addPicking {
		return d.updateAddPicker(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		rows := d.taskRows()
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(rows)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Focus):
			return d.focusSelected()
		case key.Matches(msg, keys.New):
			return d.showTaskForm()
		case key.Matches(msg, keys.Add):
			d.addPicking = true
			d.addCursor = 0
			return d, nil
		}
	}
	return d, nil
}

func (d deskModel) focusSelected() (deskModel, tea.Cmd) {
	row := d.selectedRow()
	if row == nil {
		return d, func() tea.Msg {
			return statusMsg{text: "No tasks here yet. Press n to add one.", isError: true}
		}
	}
	if row.item.Completed {
		return d, func() tea.Msg {
			return statusMsg{text: "Task is already done", isError: true}
		}
	}
	d.registry.SetActiveTask(row.widgetID, row.item.ID)
	d.engine.Start(row.item.Text, row.widgetID)
	return d, func() tea.Msg {
		return statusMsg{text: "Focusing: " + row.item.Text}
	}
}

func (d deskModel) showTaskForm() (deskModel, tea.Cmd) {
	target := ""
	if row := d.selectedRow(); row != nil {
		target = row.widgetID
	} else {
		for _, w := range d.registry.Active().Widgets {
			if w.Type == space.WidgetTodo {
				target = w.ID
				break
			}
		}
	}
	if target == "" {
		return d, func() tea.Msg {
			return statusMsg{text: "No todo widget in this space. Press a to add one.", isError: true}
		}
	}

	*d.taskText = ""
	d.targetWidget = target
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("New task").Value(d.taskText),
		),
	).WithShowHelp(true).WithShowErrors(true)
	d.formActive = true
	return d, d.form.Init()
}

func (d deskModel) updateForm(msg tea.Msg) (deskModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		text := *d.taskText
		if text != "" {
			d.registry.AddTask(d.targetWidget, text)
		}
		return d, nil
	}

	return d, cmd
}

func (d deskModel) updateAddPicker(msg tea.Msg) (deskModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if d.addCursor > 0 {
				d.addCursor--
			}
		case key.Matches(msg, keys.Down):
			if d.addCursor < len(addableWidgets)-1 {
				d.addCursor++
			}
		case key.Matches(msg, keys.Enter):
			d.addPicking = false
			w := d.registry.AddWidget(addableWidgets[d.addCursor])
			return d, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Added %s widget", w.Type)}
			}
		case key.Matches(msg, keys.Back):
			d.addPicking = false
		}
	}
	return d, nil
}

func (d deskModel) view() string {
	w := d.width - 4

	if d.formActive && d.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render("New Task"), "", d.form.View(),
			),
		)
	}
	if d.addPicking {
		return d.renderAddPicker(w)
	}

	sp := d.registry.Active()
	title := titleStyle.Render(sp.Name)
	theme := mutedStyle.Render("  " + sp.Theme)

	var rows []string
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom, title, theme))
	rows = append(rows, "")

	taskIdx := 0
	cursor := d.cursor
	if n := len(d.taskRows()); n > 0 && cursor >= n {
		cursor = n - 1
	}

	for _, widget := range sp.Widgets {
		rows = append(rows, d.renderWidgetHeader(widget))
		if widget.Type == space.WidgetTodo && widget.Todo != nil {
			for _, item := range widget.Todo.Items {
				rows = append(rows, d.renderTask(widget, item, taskIdx == cursor))
				taskIdx++
			}
		}
		rows = append(rows, "")
	}

	if len(sp.Widgets) == 0 {
		rows = append(rows, mutedStyle.Render("  Empty desk. Press a to add a widget."))
		rows = append(rows, "")
	}

	rows = append(rows, mutedStyle.Render("f: focus task  c: complete  n: new task  a: add widget"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (d deskModel) renderWidgetHeader(w space.Widget) string {
	label := highlightStyle.Render(string(w.Type))
	extra := ""
	switch {
	case w.Type == space.WidgetTodo && w.Todo != nil:
		extra = mutedStyle.Render(fmt.Sprintf("  %d open", w.Todo.Pending()))
	case w.Type == space.WidgetTimer && w.Timer != nil:
		extra = mutedStyle.Render("  " + formatClock(w.Timer.TimeLeft))
	}
	return "  " + label + extra
}

func (d deskModel) renderTask(w space.Widget, item space.TodoItem, selected bool) string {
	check := "☐"
	style := normalItemStyle
	if item.Completed {
		check = "☑"
		style = doneItemStyle
	}

	prefix := "    "
	if selected {
		prefix = "  > "
		if !item.Completed {
			style = selectedItemStyle
		}
	}

	line := fmt.Sprintf("%s%s %s", prefix, check, item.Text)

	// Mark the task bound to the running session.
	if d.engine.Active() && d.engine.WidgetID() == w.ID && w.Todo != nil && w.Todo.ActiveTaskID == item.ID {
		return style.Render(line) + " " + accentStyle.Render("●")
	}
	return style.Render(line)
}

func (d deskModel) renderAddPicker(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Add Widget"))
	rows = append(rows, "")
	for i, t := range addableWidgets {
		cursor := "  "
		style := normalItemStyle
		if i == d.addCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+string(t)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: add  esc: cancel"))
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
