package dto

import "tasktrack/domain/models"

type ReminderInput struct {
	Value int                 `json:"value" validate:"required,min=1,max=10000"`
	Unit  models.ReminderUnit `json:"unit" validate:"required,reminder_unit"`
}

// ReplaceRemindersRequest the full new set for one priority config
type ReplaceRemindersRequest struct {
	Reminders []ReminderInput `json:"reminders" validate:"max=3,dive"`
}

type ReminderResponse struct {
	ID    string              `json:"id,omitempty"`
	Value int                 `json:"value"`
	Unit  models.ReminderUnit `json:"unit"`
}

type PriorityConfigResponse struct {
	ID          string             `json:"id"`
	Priority    models.Priority    `json:"priority"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	BgClass     string             `json:"bgClass"`
	TextClass   string             `json:"textClass"`
	Reminders   []ReminderResponse `json:"reminders"`
}
