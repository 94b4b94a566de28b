package models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"size:200;not null"`
	Description string
	Priority    Priority  `gorm:"size:20;default:'Media'"`
	ColumnID    Column    `gorm:"column:column_id;size:20;default:'todo';index"`
	DueDate     *time.Time `gorm:"index"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relations (replaced wholesale on update)
	Categories []Category `gorm:"many2many:task_categories;constraint:OnDelete:CASCADE"`
	Assignees  []User     `gorm:"many2many:task_assignees;constraint:OnDelete:CASCADE"`

	// Read-only aggregates filled by the repository select
	CommentCount    int `gorm:"->;-:migration"`
	AttachmentCount int `gorm:"->;-:migration"`
}

func (Task) TableName() string {
	return "tasks"
}

// IsDone true when the task sits in the done column
func (t *Task) IsDone() bool {
	return t.ColumnID == ColumnDone
}

// TaskCategory junction row of task_categories
type TaskCategory struct {
	TaskID     uuid.UUID `gorm:"primaryKey;type:uuid"`
	CategoryID uuid.UUID `gorm:"primaryKey;type:uuid"`
}

func (TaskCategory) TableName() string {
	return "task_categories"
}

// TaskAssignee junction row of task_assignees, Position keeps the assignee order
type TaskAssignee struct {
	TaskID   uuid.UUID `gorm:"primaryKey;type:uuid"`
	UserID   uuid.UUID `gorm:"primaryKey;type:uuid"`
	Position int       `gorm:"default:0"`
}

func (TaskAssignee) TableName() string {
	return "task_assignees"
}
