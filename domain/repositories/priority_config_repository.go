package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"tasktrack/domain/models"
)

type PriorityConfigRepository interface {
	// ListByUser reminders preloaded in position order
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PriorityConfig, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PriorityConfig, error)
	GetByUserAndPriority(ctx context.Context, userID uuid.UUID, priority models.Priority) (*models.PriorityConfig, error)
	// EnsureDefaults creates any missing (user, priority) row
	EnsureDefaults(ctx context.Context, userID uuid.UUID) error
	// ReplaceReminders deletes every reminder of the config then inserts the new set
	ReplaceReminders(ctx context.Context, configID uuid.UUID, reminders []models.Reminder) error
}

type ReminderDeliveryRepository interface {
	Exists(ctx context.Context, taskID, userID uuid.UUID, fireAt time.Time) (bool, error)
	Create(ctx context.Context, delivery *models.ReminderDelivery) error
	DeleteByTasks(ctx context.Context, taskIDs []uuid.UUID) error
}
