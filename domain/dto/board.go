package dto

import (
	"time"

	"tasktrack/domain/models"
)

// === Requests ===

type CreateBoardRequest struct {
	Title       string       `json:"title" validate:"required,min=1,max=200"`
	Description string       `json:"description" validate:"omitempty,max=1000"`
	Theme       models.Theme `json:"theme" validate:"omitempty,theme"`
	Icon        models.Icon  `json:"icon" validate:"omitempty,icon"`
}

type UpdateBoardRequest struct {
	Title       *string       `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string       `json:"description" validate:"omitempty,max=1000"`
	Theme       *models.Theme `json:"theme" validate:"omitempty,theme"`
	Icon        *models.Icon  `json:"icon" validate:"omitempty,icon"`
}

type AddGuestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// === Responses ===

// BoardStats derived from the board's tasks and today's date, never stored
type BoardStats struct {
	Deadlines  int `json:"deadlines"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

type BoardResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Icon        models.Icon        `json:"icon"`
	Theme       models.Theme       `json:"theme"`
	ThemeClass  string             `json:"themeClass"`
	OwnerID     string             `json:"ownerId"`
	Categories  []CategoryResponse `json:"categories"`
	Stats       BoardStats         `json:"stats"`
	Guests      []string           `json:"guests"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// === Kanban ===

type KanbanColumn struct {
	ID    models.Column  `json:"id"`
	Title string         `json:"title"`
	Tasks []TaskResponse `json:"tasks"`
}

type KanbanResponse struct {
	BoardID string         `json:"boardId"`
	Columns []KanbanColumn `json:"columns"`
	Total   int            `json:"total"`
	Visible int            `json:"visible"`
}
