package dto

import "time"

// DateLayout calendar-day format accepted by the CLI and query params
const DateLayout = "2006-01-02"

type PaginationMeta struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// FormatTime RFC3339 in UTC, empty for the zero time
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
