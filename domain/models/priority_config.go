package models

import (
	"time"

	"github.com/google/uuid"
)

// PriorityConfig one row per (user, priority level)
type PriorityConfig struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_priority_configs_user_priority"`
	Priority    Priority  `gorm:"size:20;not null;uniqueIndex:idx_priority_configs_user_priority"`
	Label       string
	Description string
	BgClass     string
	TextClass   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Reminders []Reminder `gorm:"foreignKey:PriorityConfigID;constraint:OnDelete:CASCADE"`
}

func (PriorityConfig) TableName() string {
	return "priority_configs"
}

type Reminder struct {
	ID               uuid.UUID    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PriorityConfigID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Value            int          `gorm:"not null"`
	Unit             ReminderUnit `gorm:"size:10;not null"`
	Position         int          `gorm:"default:0"`
	CreatedAt        time.Time
}

func (Reminder) TableName() string {
	return "reminders"
}

// Offset how long before the due date the reminder fires
func (r *Reminder) Offset() time.Duration {
	return r.Unit.Duration(r.Value)
}

// ReminderDelivery records a fired reminder so a tick never sends it twice.
// Keyed on the fire time, not the reminder row: saving an unchanged set
// recreates the rows but must not re-arm them, while moving the due date does.
type ReminderDelivery struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reminder_deliveries_unique"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reminder_deliveries_unique"`
	FireAt      time.Time `gorm:"not null;uniqueIndex:idx_reminder_deliveries_unique"`
	ReminderID  uuid.UUID `gorm:"type:uuid;index"`
	DeliveredAt time.Time
}

func (ReminderDelivery) TableName() string {
	return "reminder_deliveries"
}
