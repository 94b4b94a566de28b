package models

import (
	"time"

	"github.com/google/uuid"
)

// Category board-scoped label, referenced by tasks through task_categories
type Category struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:100;not null"`
	Color     string    `gorm:"size:20;default:'gray'"`
	CreatedAt time.Time
}

func (Category) TableName() string {
	return "categories"
}
