package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/models"
	"tasktrack/domain/ports"
	"tasktrack/domain/repositories"
	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
)

type ReminderServiceImpl struct {
	taskRepo     repositories.TaskRepository
	priorityRepo repositories.PriorityConfigRepository
	deliveryRepo repositories.ReminderDeliveryRepository
	// publisher and notifier are optional; a fired reminder is recorded either way
	publisher ports.ReminderPublisherPort
	notifier  ports.ReminderNotifierPort
	horizon   time.Duration
}

func NewReminderService(
	taskRepo repositories.TaskRepository,
	priorityRepo repositories.PriorityConfigRepository,
	deliveryRepo repositories.ReminderDeliveryRepository,
	publisher ports.ReminderPublisherPort,
	notifier ports.ReminderNotifierPort,
	horizon time.Duration,
) services.ReminderService {
	if horizon <= 0 {
		horizon = 7 * 24 * time.Hour
	}
	return &ReminderServiceImpl{
		taskRepo:     taskRepo,
		priorityRepo: priorityRepo,
		deliveryRepo: deliveryRepo,
		publisher:    publisher,
		notifier:     notifier,
		horizon:      horizon,
	}
}

type priorityKey struct {
	userID   uuid.UUID
	priority models.Priority
}

func (s *ReminderServiceImpl) DispatchDue(ctx context.Context, now time.Time) (*services.DispatchResult, error) {
	tasks, err := s.taskRepo.ListDueBetween(ctx, now, now.Add(s.horizon))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to scan due tasks", "error", err)
		return nil, err
	}

	result := &services.DispatchResult{Scanned: len(tasks)}
	// one lookup per (user, priority) per tick
	configs := make(map[priorityKey]*models.PriorityConfig)

	for i := range tasks {
		task := &tasks[i]
		if task.DueDate == nil || task.IsDone() {
			continue
		}

		for j := range task.Assignees {
			assignee := &task.Assignees[j]
			key := priorityKey{userID: assignee.ID, priority: task.Priority}

			cfg, seen := configs[key]
			if !seen {
				cfg, err = s.priorityRepo.GetByUserAndPriority(ctx, assignee.ID, task.Priority)
				if err != nil {
					if !isNotFound(err) {
						logger.WarnContext(ctx, "Failed to load priority config", "user_id", assignee.ID, "priority", task.Priority, "error", err)
					}
					cfg = nil
				}
				configs[key] = cfg
			}
			if cfg == nil {
				continue
			}

			for k := range cfg.Reminders {
				reminder := &cfg.Reminders[k]
				fired, err := s.fire(ctx, now, task, assignee, reminder)
				if err != nil {
					result.Failed++
					logger.ErrorContext(ctx, "Failed to fire reminder",
						"reminder_id", reminder.ID, "task_id", task.ID, "user_id", assignee.ID, "error", err)
					continue
				}
				if fired {
					result.Fired++
				}
			}
		}
	}

	if result.Fired > 0 || result.Failed > 0 {
		logger.InfoContext(ctx, "Reminder tick finished", "scanned", result.Scanned, "fired", result.Fired, "failed", result.Failed)
	}
	return result, nil
}

// fire sends one reminder if its fire time has passed and it was never delivered
func (s *ReminderServiceImpl) fire(ctx context.Context, now time.Time, task *models.Task, user *models.User, reminder *models.Reminder) (bool, error) {
	fireAt := task.DueDate.Add(-reminder.Offset())
	if fireAt.After(now) {
		return false, nil
	}

	fireAt = fireAt.UTC().Truncate(time.Second)
	delivered, err := s.deliveryRepo.Exists(ctx, task.ID, user.ID, fireAt)
	if err != nil {
		return false, err
	}
	if delivered {
		return false, nil
	}

	event := &ports.ReminderEvent{
		ReminderID: reminder.ID.String(),
		TaskID:     task.ID.String(),
		BoardID:    task.BoardID.String(),
		UserID:     user.ID.String(),
		Username:   user.Username,
		Title:      task.Title,
		Priority:   string(task.Priority),
		DueDate:    *task.DueDate,
		Offset:     FormatOffset(reminder.Value, reminder.Unit),
		FireAt:     fireAt,
		FiredAt:    now,
	}

	if s.publisher != nil {
		if err := s.publisher.PublishReminder(ctx, event); err != nil {
			return false, fmt.Errorf("publish: %w", err)
		}
	}
	if s.notifier != nil && s.notifier.IsEnabled() {
		if err := s.notifier.SendReminder(ctx, event); err != nil {
			return false, fmt.Errorf("notify: %w", err)
		}
	}

	delivery := &models.ReminderDelivery{
		ID:          uuid.New(),
		TaskID:      task.ID,
		UserID:      user.ID,
		FireAt:      fireAt,
		ReminderID:  reminder.ID,
		DeliveredAt: now,
	}
	if err := s.deliveryRepo.Create(ctx, delivery); err != nil {
		return false, fmt.Errorf("record delivery: %w", err)
	}

	logger.InfoContext(ctx, "Reminder fired", "task_id", task.ID, "user_id", user.ID, "offset", event.Offset)
	return true, nil
}

var unitNames = map[models.ReminderUnit][2]string{
	models.UnitMinutes: {"minute", "minutes"},
	models.UnitHours:   {"hour", "hours"},
	models.UnitDays:    {"day", "days"},
}

// FormatOffset "1 hour", "2 days"
func FormatOffset(value int, unit models.ReminderUnit) string {
	names, ok := unitNames[unit]
	if !ok {
		return fmt.Sprintf("%d %s", value, unit)
	}
	if value == 1 {
		return fmt.Sprintf("%d %s", value, names[0])
	}
	return fmt.Sprintf("%d %s", value, names[1])
}
