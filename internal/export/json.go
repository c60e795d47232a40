package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"focusdesk/internal/stats"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Days       []jsonDay `json:"days"`
}

type jsonDay struct {
	Date           string `json:"date"`
	FocusSec       int    `json:"focus_seconds"`
	Focus          string `json:"focus"`
	TasksCompleted int    `json:"tasks_completed"`
	AppSessionSec  int    `json:"app_session_seconds"`
	AppSession     string `json:"app_session"`
}

func ToJSON(days []stats.DayStats, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(days),
	}

	for _, d := range days {
		export.Days = append(export.Days, jsonDay{
			Date:           d.Date,
			FocusSec:       d.FocusSeconds,
			Focus:          formatDuration(d.FocusSeconds),
			TasksCompleted: d.TasksCompleted,
			AppSessionSec:  d.AppSessionSeconds,
			AppSession:     formatDuration(d.AppSessionSeconds),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
