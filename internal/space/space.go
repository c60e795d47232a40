package space

// WidgetType identifies a widget kind on the desk.
type WidgetType string

const (
	WidgetMemo      WidgetType = "MEMO"
	WidgetTodo      WidgetType = "TODO"
	WidgetTimer     WidgetType = "TIMER"
	WidgetKanban    WidgetType = "KANBAN"
	WidgetClock     WidgetType = "CLOCK"
	WidgetCalendar  WidgetType = "CALENDAR"
	WidgetBrowser   WidgetType = "BROWSER"
	WidgetCanvas    WidgetType = "CANVAS"
	WidgetPhoto     WidgetType = "PHOTO"
	WidgetBookmarks WidgetType = "BOOKMARKS"
)

// Position is a widget's placement on the freeform canvas. Layout mechanics
// live in the presentation layer; the registry only stores the fields.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Widget is a tagged variant: Type selects which data pointer is set. Every
// kind has a typed payload, including the kinds this program never edits,
// so a persisted space survives a load/save round trip intact.
type Widget struct {
	ID       string     `json:"id"`
	Type     WidgetType `json:"type"`
	Position Position   `json:"position"`
	ZIndex   int        `json:"zIndex"`

	Todo      *TodoData      `json:"todo,omitempty"`
	Memo      *MemoData      `json:"memo,omitempty"`
	Timer     *TimerData     `json:"timer,omitempty"`
	Kanban    *KanbanData    `json:"kanban,omitempty"`
	Clock     *ClockData     `json:"clock,omitempty"`
	Calendar  *CalendarData  `json:"calendar,omitempty"`
	Browser   *BrowserData   `json:"browser,omitempty"`
	Canvas    *CanvasData    `json:"canvas,omitempty"`
	Photo     *PhotoData     `json:"photo,omitempty"`
	Bookmarks *BookmarksData `json:"bookmarks,omitempty"`
}

type MemoData struct {
	Content string `json:"content"`
}

type TimerData struct {
	Duration int  `json:"duration"`
	TimeLeft int  `json:"timeLeft"`
	Running  bool `json:"isRunning"`
}

type KanbanItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type KanbanData struct {
	Todo  []KanbanItem `json:"todo"`
	Doing []KanbanItem `json:"doing"`
	Done  []KanbanItem `json:"done"`
}

type ClockData struct {
	Theme    string `json:"theme,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

type CalendarData struct {
	Theme string `json:"theme,omitempty"`
}

type BrowserData struct {
	URL string `json:"url"`
}

// CanvasElement is one drawn shape on a canvas. The fields mirror what the
// drawing surface stores; this program only carries them.
type CanvasElement struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Points      []Point `json:"points,omitempty"`
	Content     string  `json:"content,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CanvasData struct {
	Title    string          `json:"title"`
	Elements []CanvasElement `json:"elements"`
}

type PhotoData struct {
	URL        string `json:"url"`
	Caption    string `json:"caption,omitempty"`
	Style      string `json:"style,omitempty"`
	FrameColor string `json:"frameColor,omitempty"`
}

type Bookmark struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type BookmarksData struct {
	Items []Bookmark `json:"items"`
}

type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TodoData is the one widget kind the session engine mutates.
type TodoData struct {
	Items        []TodoItem `json:"items"`
	ActiveTaskID string     `json:"activeTaskId,omitempty"`
}

// Complete marks the item done and clears the active-task binding. Returns
// false when the item does not exist. Only the Todo kind exposes a
// completion operation; other kinds have no tasks to complete.
func (d *TodoData) Complete(taskID string) bool {
	for i := range d.Items {
		if d.Items[i].ID == taskID {
			d.Items[i].Completed = true
			if d.ActiveTaskID == taskID {
				d.ActiveTaskID = ""
			}
			return true
		}
	}
	return false
}

// Pending counts the items not yet completed.
func (d *TodoData) Pending() int {
	n := 0
	for _, item := range d.Items {
		if !item.Completed {
			n++
		}
	}
	return n
}

// AmbienceSettings are stored per space but played elsewhere.
type AmbienceSettings struct {
	VolumeRain int `json:"volumeRain"`
	VolumeFire int `json:"volumeFire"`
	VolumeCafe int `json:"volumeCafe"`
}

// Space is a named canvas holding a background and a set of widgets.
type Space struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	BackgroundURL  string           `json:"backgroundUrl"`
	BackgroundType string           `json:"backgroundType"`
	Theme          string           `json:"theme"`
	Ambience       AmbienceSettings `json:"ambience"`
	Widgets        []Widget         `json:"widgets"`
}
