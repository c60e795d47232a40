package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"focusdesk/internal/stats"
)

func ToCSV(days []stats.DayStats, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Focus (s)", "Focus", "Tasks Completed", "App Session (s)", "App Session"}); err != nil {
		return err
	}

	for _, d := range days {
		row := []string{
			d.Date,
			fmt.Sprintf("%d", d.FocusSeconds),
			formatDuration(d.FocusSeconds),
			fmt.Sprintf("%d", d.TasksCompleted),
			fmt.Sprintf("%d", d.AppSessionSeconds),
			formatDuration(d.AppSessionSeconds),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
