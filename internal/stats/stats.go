package stats

import (
	"sort"
	"time"

	"focusdesk/internal/store"
)

// DayStats is the per-local-date aggregate. JSON field names match the blobs
// written by earlier builds; a record missing appSessionSeconds unmarshals
// with it at 0.
type DayStats struct {
	Date              string `json:"date"`
	FocusSeconds      int    `json:"focusSeconds"`
	TasksCompleted    int    `json:"tasksCompleted"`
	AppSessionSeconds int    `json:"appSessionSeconds"`
}

// Aggregator accumulates day buckets and writes them back to the store after
// every mutation. Writes are best effort: on failure the in-memory map stays
// authoritative and the next mutation retries naturally.
type Aggregator struct {
	store *store.Store
	days  map[string]DayStats
	now   func() time.Time
}

func NewAggregator(s *store.Store) *Aggregator {
	return &Aggregator{
		store: s,
		days:  make(map[string]DayStats),
		now:   time.Now,
	}
}

// SetClock overrides the time source. Used by tests to pin the local date.
func (a *Aggregator) SetClock(now func() time.Time) {
	a.now = now
}

// Load reads the persisted stats map. Malformed or missing blobs leave the
// aggregator empty rather than failing startup; the next save overwrites
// whatever was there.
func (a *Aggregator) Load() {
	days := make(map[string]DayStats)
	ok, err := a.store.GetJSON(store.KeyStats, &days)
	if err != nil || !ok {
		return
	}
	a.days = days
}

// TodayKey returns the current calendar date as YYYY-MM-DD in the clock's
// zone (local wall time in production). Not UTC: near midnight the two
// disagree and activity would land on the wrong day.
func (a *Aggregator) TodayKey() string {
	return a.now().Format("2006-01-02")
}

func (a *Aggregator) bucket(date string) DayStats {
	if b, ok := a.days[date]; ok {
		return b
	}
	return DayStats{Date: date}
}

// Bucket returns the stats for a date, zero-valued when absent.
func (a *Aggregator) Bucket(date string) DayStats {
	return a.bucket(date)
}

// AddFocusSeconds merges focus seconds into the date's bucket. Zero or
// negative amounts are ignored.
func (a *Aggregator) AddFocusSeconds(date string, seconds int) {
	if seconds <= 0 {
		return
	}
	b := a.bucket(date)
	b.FocusSeconds += seconds
	a.days[date] = b
	a.save()
}

// IncrementTasksCompleted adds one completed task to the date's bucket.
func (a *Aggregator) IncrementTasksCompleted(date string) {
	b := a.bucket(date)
	b.TasksCompleted++
	a.days[date] = b
	a.save()
}

// AddAppSessionSeconds merges app-session seconds into the date's bucket.
// Zero or negative amounts are ignored.
func (a *Aggregator) AddAppSessionSeconds(date string, seconds int) {
	if seconds <= 0 {
		return
	}
	b := a.bucket(date)
	b.AppSessionSeconds += seconds
	a.days[date] = b
	a.save()
}

func (a *Aggregator) save() {
	// Fire and forget: the state machine never gates on storage.
	_ = a.store.SetJSON(store.KeyStats, a.days)
}

// LastNDays returns buckets for the n days ending today, oldest first.
// Days with no activity come back zero-valued so charts stay contiguous.
func (a *Aggregator) LastNDays(n int) []DayStats {
	out := make([]DayStats, 0, n)
	today := a.now().Local()
	for i := n - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		out = append(out, a.bucket(date))
	}
	return out
}

// All returns every recorded bucket sorted by date.
func (a *Aggregator) All() []DayStats {
	out := make([]DayStats, 0, len(a.days))
	for _, b := range a.days {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Totals sums every bucket.
func (a *Aggregator) Totals() DayStats {
	var t DayStats
	for _, b := range a.days {
		t.FocusSeconds += b.FocusSeconds
		t.TasksCompleted += b.TasksCompleted
		t.AppSessionSeconds += b.AppSessionSeconds
	}
	return t
}
