package ports

import (
	"context"
	"time"
)

// ReminderEvent one reminder that came due for one assignee
type ReminderEvent struct {
	ReminderID string    `json:"reminderId"`
	TaskID     string    `json:"taskId"`
	BoardID    string    `json:"boardId"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	Title      string    `json:"title"`
	Priority   string    `json:"priority"`
	DueDate    time.Time `json:"dueDate"`
	// Offset human form of the lead time, "2 days"
	Offset  string    `json:"offset"`
	FireAt  time.Time `json:"fireAt"`
	FiredAt time.Time `json:"firedAt"`
}

// ReminderPublisherPort pushes fired reminders onto the event stream
type ReminderPublisherPort interface {
	PublishReminder(ctx context.Context, event *ReminderEvent) error
}
