package space

import (
	"fmt"

	"github.com/google/uuid"

	"focusdesk/internal/store"
)

// Registry owns the spaces and the active-space id. Every mutation persists
// both blobs; writes are best effort and never gate a mutation.
type Registry struct {
	store    *store.Store
	spaces   []Space
	activeID string
}

func NewRegistry(s *store.Store) *Registry {
	return &Registry{store: s}
}

// Load reads persisted spaces, seeding defaults on first run. Malformed
// blobs fall back to defaults rather than failing startup.
func (r *Registry) Load() {
	var spaces []Space
	ok, err := r.store.GetJSON(store.KeySpaces, &spaces)
	if err != nil || !ok || len(spaces) == 0 {
		spaces = defaultSpaces()
	}
	r.spaces = spaces

	var activeID string
	ok, err = r.store.GetJSON(store.KeyActiveSpace, &activeID)
	if err != nil || !ok || r.byID(activeID) == nil {
		activeID = r.spaces[0].ID
	}
	r.activeID = activeID
}

func defaultSpaces() []Space {
	return []Space{
		{
			ID:             "default-1",
			Name:           "Morning Focus",
			BackgroundURL:  "#1e1e24",
			BackgroundType: "COLOR",
			Theme:          "REALISTIC",
			Widgets: []Widget{
				{
					ID:       "w2",
					Type:     WidgetTodo,
					ZIndex:   2,
					Position: Position{X: 450, Y: 100, Width: 320, Height: 450},
					Todo: &TodoData{
						Items: []TodoItem{
							{ID: "t1", Text: "Check emails", Completed: true},
							{ID: "t2", Text: "Plan the day"},
						},
					},
				},
			},
		},
		{
			ID:             "default-2",
			Name:           "Deep Work",
			BackgroundURL:  "#10101a",
			BackgroundType: "COLOR",
			Theme:          "LOFI",
			Ambience:       AmbienceSettings{VolumeRain: 50, VolumeFire: 20},
		},
	}
}

func (r *Registry) save() {
	_ = r.store.SetJSON(store.KeySpaces, r.spaces)
	_ = r.store.SetJSON(store.KeyActiveSpace, r.activeID)
}

func (r *Registry) byID(id string) *Space {
	for i := range r.spaces {
		if r.spaces[i].ID == id {
			return &r.spaces[i]
		}
	}
	return nil
}

// Spaces returns the space list in order.
func (r *Registry) Spaces() []Space {
	return r.spaces
}

// Active returns the active space. There is always at least one space.
func (r *Registry) Active() *Space {
	if s := r.byID(r.activeID); s != nil {
		return s
	}
	return &r.spaces[0]
}

func (r *Registry) ActiveID() string {
	return r.activeID
}

// SetActive switches the active space. Unknown ids are ignored.
func (r *Registry) SetActive(id string) {
	if r.byID(id) == nil {
		return
	}
	r.activeID = id
	r.save()
}

// AddSpace creates a space and makes it active.
func (r *Registry) AddSpace(name, theme string) *Space {
	sp := Space{
		ID:             uuid.New().String(),
		Name:           name,
		Theme:          theme,
		BackgroundURL:  "#1e1e24",
		BackgroundType: "COLOR",
	}
	r.spaces = append(r.spaces, sp)
	r.activeID = sp.ID
	r.save()
	return r.byID(sp.ID)
}

// RemoveSpace deletes a space. The last remaining space cannot be removed.
func (r *Registry) RemoveSpace(id string) error {
	if len(r.spaces) <= 1 {
		return fmt.Errorf("cannot remove the last space")
	}
	idx := -1
	for i := range r.spaces {
		if r.spaces[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("space %q not found", id)
	}
	r.spaces = append(r.spaces[:idx], r.spaces[idx+1:]...)
	if r.activeID == id {
		r.activeID = r.spaces[0].ID
	}
	r.save()
	return nil
}

// AddWidget appends a widget of the given kind to the active space, on top
// of the z-order, with kind-appropriate default data.
func (r *Registry) AddWidget(t WidgetType) *Widget {
	sp := r.Active()
	maxZ := 0
	for _, w := range sp.Widgets {
		if w.ZIndex > maxZ {
			maxZ = w.ZIndex
		}
	}
	w := Widget{
		ID:       uuid.New().String(),
		Type:     t,
		ZIndex:   maxZ + 1,
		Position: Position{X: 200, Y: 120, Width: 350, Height: 400},
	}
	switch t {
	case WidgetTodo:
		w.Todo = &TodoData{}
	case WidgetMemo:
		w.Memo = &MemoData{}
	case WidgetTimer:
		w.Timer = &TimerData{Duration: 25 * 60, TimeLeft: 25 * 60}
	case WidgetKanban:
		w.Kanban = &KanbanData{}
	case WidgetClock:
		w.Clock = &ClockData{}
	case WidgetCalendar:
		w.Calendar = &CalendarData{}
	case WidgetBookmarks:
		w.Bookmarks = &BookmarksData{}
	}
	sp.Widgets = append(sp.Widgets, w)
	r.save()
	return &sp.Widgets[len(sp.Widgets)-1]
}

// RemoveWidget deletes a widget from the active space.
func (r *Registry) RemoveWidget(id string) {
	sp := r.Active()
	for i := range sp.Widgets {
		if sp.Widgets[i].ID == id {
			sp.Widgets = append(sp.Widgets[:i], sp.Widgets[i+1:]...)
			r.save()
			return
		}
	}
}

// Widget finds a widget by id in any space. Widget ids are unique across
// the whole registry, and callers like the session engine's completion
// callback may fire after the user has switched to another space.
func (r *Registry) Widget(id string) *Widget {
	_, w := r.widgetSpace(id)
	return w
}

// widgetSpace returns a widget and its owning space.
func (r *Registry) widgetSpace(id string) (*Space, *Widget) {
	for i := range r.spaces {
		for j := range r.spaces[i].Widgets {
			if r.spaces[i].Widgets[j].ID == id {
				return &r.spaces[i], &r.spaces[i].Widgets[j]
			}
		}
	}
	return nil, nil
}

// BringToFront raises the widget above everything else in its owning space.
func (r *Registry) BringToFront(id string) {
	sp, w := r.widgetSpace(id)
	if w == nil {
		return
	}
	maxZ := 0
	for _, other := range sp.Widgets {
		if other.ZIndex > maxZ {
			maxZ = other.ZIndex
		}
	}
	w.ZIndex = maxZ + 1
	r.save()
}

// AddTask appends a todo item to a Todo widget.
func (r *Registry) AddTask(widgetID, text string) *TodoItem {
	w := r.Widget(widgetID)
	if w == nil || w.Todo == nil {
		return nil
	}
	item := TodoItem{ID: uuid.New().String(), Text: text}
	w.Todo.Items = append(w.Todo.Items, item)
	r.save()
	return &w.Todo.Items[len(w.Todo.Items)-1]
}

// SetActiveTask records which task a Todo widget is focusing.
func (r *Registry) SetActiveTask(widgetID, taskID string) {
	w := r.Widget(widgetID)
	if w == nil || w.Todo == nil {
		return
	}
	w.Todo.ActiveTaskID = taskID
	r.save()
}

// CompleteActiveTask marks the Todo widget's bound task done. This is the
// mutation the session engine performs through its injected callback.
func (r *Registry) CompleteActiveTask(widgetID string) {
	w := r.Widget(widgetID)
	if w == nil || w.Todo == nil || w.Todo.ActiveTaskID == "" {
		return
	}
	if w.Todo.Complete(w.Todo.ActiveTaskID) {
		r.save()
	}
}
