package boardview

import (
	"time"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
)

// StartOfDay midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ComputeStats deadlines counts open tasks due on today's calendar day or earlier.
// Due dates are compared in today's location; tasks without a due date never count.
func ComputeStats(tasks []dto.TaskResponse, today time.Time) dto.BoardStats {
	var stats dto.BoardStats
	todayStart := StartOfDay(today)

	for i := range tasks {
		t := &tasks[i]
		switch t.ColumnID {
		case models.ColumnDone:
			stats.Completed++
		case models.ColumnInProgress:
			stats.InProgress++
		}

		if t.ColumnID == models.ColumnDone || t.DueDate == nil {
			continue
		}
		if !StartOfDay(t.DueDate.In(todayStart.Location())).After(todayStart) {
			stats.Deadlines++
		}
	}
	return stats
}
