package boardview

import (
	"strings"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
)

// Filter the three kanban predicates; an empty predicate matches everything
type Filter struct {
	Search     string
	Priorities []models.Priority
	// Categories category ids
	Categories []string
}

// ParseFilter from the query string form: comma separated priorities and category ids
func ParseFilter(search, priorities, categories string) Filter {
	f := Filter{Search: strings.TrimSpace(search)}
	for _, p := range splitList(priorities) {
		f.Priorities = append(f.Priorities, models.Priority(p))
	}
	f.Categories = splitList(categories)
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (f Filter) IsEmpty() bool {
	return f.Search == "" && len(f.Priorities) == 0 && len(f.Categories) == 0
}

// Matches predicates AND together, selections inside one predicate OR together
func (f Filter) Matches(t *dto.TaskResponse) bool {
	return f.matchesSearch(t) && f.matchesPriority(t) && f.matchesCategory(t)
}

func (f Filter) matchesSearch(t *dto.TaskResponse) bool {
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	for _, c := range t.Categories {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return true
		}
	}
	return false
}

func (f Filter) matchesPriority(t *dto.TaskResponse) bool {
	if len(f.Priorities) == 0 {
		return true
	}
	for _, p := range f.Priorities {
		if t.Priority == p {
			return true
		}
	}
	return false
}

func (f Filter) matchesCategory(t *dto.TaskResponse) bool {
	if len(f.Categories) == 0 {
		return true
	}
	for _, c := range t.Categories {
		for _, id := range f.Categories {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

// Apply returns a new slice, input order preserved
func (f Filter) Apply(tasks []dto.TaskResponse) []dto.TaskResponse {
	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		if f.Matches(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}
