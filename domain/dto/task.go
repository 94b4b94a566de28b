package dto

import (
	"time"

	"tasktrack/domain/models"
)

type CreateTaskRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"omitempty,max=5000"`
	Priority    models.Priority `json:"priority" validate:"omitempty,priority"`
	ColumnID    models.Column   `json:"columnId" validate:"omitempty,column"`
	DueDate     *time.Time      `json:"dueDate"`
	CategoryIDs []string        `json:"categoryIds" validate:"omitempty,dive,uuid"`
	AssigneeIDs []string        `json:"assigneeIds" validate:"omitempty,dive,uuid"`
}

// UpdateTaskRequest nil fields are left untouched; non-nil slices replace the relation wholesale
type UpdateTaskRequest struct {
	Title        *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" validate:"omitempty,max=5000"`
	Priority     *models.Priority `json:"priority" validate:"omitempty,priority"`
	ColumnID     *models.Column   `json:"columnId" validate:"omitempty,column"`
	DueDate      *time.Time       `json:"dueDate"`
	ClearDueDate bool             `json:"clearDueDate"`
	CategoryIDs  *[]string        `json:"categoryIds" validate:"omitempty,dive,uuid"`
	AssigneeIDs  *[]string        `json:"assigneeIds" validate:"omitempty,dive,uuid"`
}

type UpdateColumnRequest struct {
	ColumnID models.Column `json:"columnId" validate:"required,column"`
}

type TaskResponse struct {
	ID              string             `json:"id"`
	BoardID         string             `json:"boardId"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Priority        models.Priority    `json:"priority"`
	ColumnID        models.Column      `json:"columnId"`
	DueDate         *time.Time         `json:"dueDate"`
	Assignees       []UserSummary      `json:"assignees"`
	Categories      []CategoryResponse `json:"categories"`
	CommentCount    int                `json:"commentCount"`
	AttachmentCount int                `json:"attachmentCount"`
	CreatedBy       string             `json:"createdBy"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// KanbanQuery query string of GET /boards/:id/kanban, lists are comma separated
type KanbanQuery struct {
	Search   string `query:"search"`
	Priority string `query:"priority"`
	Category string `query:"category"`
}
