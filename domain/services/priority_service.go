package services

import (
	"context"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
)

type PriorityService interface {
	// ListPriorities the four configs of the user, created with defaults on first access
	ListPriorities(ctx context.Context, userID uuid.UUID) ([]dto.PriorityConfigResponse, error)
	// ReplaceReminders at most three, replaces the whole set of the config
	ReplaceReminders(ctx context.Context, userID, configID uuid.UUID, req *dto.ReplaceRemindersRequest) (*dto.PriorityConfigResponse, error)
}
