package boardview

import (
	"sort"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
)

// SortColumn priority rank ascending (Urgente first, unknown last), then due date
// ascending with undated tasks after dated ones. Stable; the input is not modified.
func SortColumn(tasks []dto.TaskResponse) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	return out
}

func less(a, b *dto.TaskResponse) bool {
	ra, rb := a.Priority.Rank(), b.Priority.Rank()
	if ra != rb {
		return ra < rb
	}
	switch {
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	default:
		return a.DueDate.Before(*b.DueDate)
	}
}

// GroupByColumn filtered tasks split into the three fixed columns, each sorted
func GroupByColumn(tasks []dto.TaskResponse) map[models.Column][]dto.TaskResponse {
	groups := make(map[models.Column][]dto.TaskResponse, len(models.Columns))
	for _, col := range models.Columns {
		groups[col] = []dto.TaskResponse{}
	}
	for i := range tasks {
		if _, ok := groups[tasks[i].ColumnID]; ok {
			groups[tasks[i].ColumnID] = append(groups[tasks[i].ColumnID], tasks[i])
		}
	}
	for col, list := range groups {
		groups[col] = SortColumn(list)
	}
	return groups
}

// BuildKanban filter, group and sort in the fixed column order
func BuildKanban(boardID string, tasks []dto.TaskResponse, f Filter) *dto.KanbanResponse {
	visible := f.Apply(tasks)
	groups := GroupByColumn(visible)

	resp := &dto.KanbanResponse{
		BoardID: boardID,
		Columns: make([]dto.KanbanColumn, 0, len(models.Columns)),
		Total:   len(tasks),
		Visible: len(visible),
	}
	for _, col := range models.Columns {
		resp.Columns = append(resp.Columns, dto.KanbanColumn{
			ID:    col,
			Title: models.ColumnTitles[col],
			Tasks: groups[col],
		})
	}
	return resp
}
