package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"focusdesk/internal/space"
)

var spaceThemes = []string{"REALISTIC", "LOFI"}

type spacesModel struct {
	registry *space.Registry
	width    int
	height   int
	cursor   int

	formActive bool
	form       *huh.Form
	name       *string
	theme      *string
}

func newSpacesModel(r *space.Registry) spacesModel {
	name := ""
	theme := spaceThemes[0]
	return spacesModel{
		registry: r,
		name:     &name,
		theme:    &theme,
	}
}

func (m *spacesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m spacesModel) update(msg tea.Msg) (spacesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		spaces := m.registry.Spaces()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(spaces)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if m.cursor < len(spaces) {
				sp := spaces[m.cursor]
				m.registry.SetActive(sp.ID)
				return m, func() tea.Msg {
					return statusMsg{text: "Switched to " + sp.Name}
				}
			}
		case key.Matches(msg, keys.New):
			return m.showForm()
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(spaces) {
				sp := spaces[m.cursor]
				if err := m.registry.RemoveSpace(sp.ID); err != nil {
					return m, func() tea.Msg {
						return statusMsg{text: err.Error(), isError: true}
					}
				}
				if m.cursor > 0 {
					m.cursor--
				}
				return m, func() tea.Msg {
					return statusMsg{text: "Deleted " + sp.Name}
				}
			}
		}
	}
	return m, nil
}

func (m spacesModel) showForm() (spacesModel, tea.Cmd) {
	*m.name = ""
	*m.theme = spaceThemes[0]

	var themeOpts []huh.Option[string]
	for _, t := range spaceThemes {
		themeOpts = append(themeOpts, huh.NewOption(t, t))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Space name").
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}).
				Value(m.name),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(m.theme),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m spacesModel) updateForm(msg tea.Msg) (spacesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		sp := m.registry.AddSpace(*m.name, *m.theme)
		m.cursor = len(m.registry.Spaces()) - 1
		return m, func() tea.Msg {
			return statusMsg{text: "Created " + sp.Name}
		}
	}

	return m, cmd
}

func (m spacesModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render("New Space"), "", m.form.View(),
			),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Spaces"))
	rows = append(rows, "")

	activeID := m.registry.ActiveID()
	for i, sp := range m.registry.Spaces() {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		marker := "  "
		if sp.ID == activeID {
			marker = accentStyle.Render("● ")
		}

		line := fmt.Sprintf("%s%s%s", cursor, marker, sp.Name)
		meta := mutedStyle.Render(fmt.Sprintf("  %s, %d widgets", sp.Theme, len(sp.Widgets)))
		rows = append(rows, style.Render(line)+meta)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter: activate  n: new space  d: delete"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
