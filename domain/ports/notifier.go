package ports

import "context"

// ReminderNotifierPort human facing channel for fired reminders
type ReminderNotifierPort interface {
	SendReminder(ctx context.Context, event *ReminderEvent) error
	IsEnabled() bool
}
