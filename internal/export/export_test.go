package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"focusdesk/internal/stats"
)

func sampleDays() []stats.DayStats {
	return []stats.DayStats{
		{Date: "2026-08-27", FocusSeconds: 3600, TasksCompleted: 2, AppSessionSeconds: 7200},
		{Date: "2026-08-28", FocusSeconds: 1800, TasksCompleted: 0, AppSessionSeconds: 5400},
		{Date: "2026-08-29", FocusSeconds: 0, TasksCompleted: 1, AppSessionSeconds: 90},
	}
}

// ============================================================
// CSV export
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")

	if err := ToCSV(sampleDays(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "2026-08-27" || rows[1][1] != "3600" || rows[1][2] != "01:00:00" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[3][3] != "1" {
		t.Fatalf("tasks column wrong: %v", rows[3])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "Date,") {
		t.Fatal("header missing from empty export")
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(sampleDays(), "/nonexistent-dir/stats.csv"); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

// ============================================================
// JSON export
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")

	if err := ToJSON(sampleDays(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 3 || len(out.Days) != 3 {
		t.Fatalf("count mismatch: %+v", out)
	}
	if out.Days[0].Date != "2026-08-27" || out.Days[0].Focus != "01:00:00" {
		t.Fatalf("unexpected first day: %+v", out.Days[0])
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		secs int
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3661, "01:01:01"},
		{36000, "10:00:00"},
	}
	for _, c := range cases {
		if got := formatDuration(c.secs); got != c.want {
			t.Errorf("formatDuration(%d) = %q, want %q", c.secs, got, c.want)
		}
	}
}
