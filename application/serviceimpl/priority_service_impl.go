package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/repositories"
	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
)

var errPriorityNotFound = services.NewError(services.ErrNotFound, "priority config not found")

type PriorityServiceImpl struct {
	priorityRepo repositories.PriorityConfigRepository
}

func NewPriorityService(priorityRepo repositories.PriorityConfigRepository) services.PriorityService {
	return &PriorityServiceImpl{priorityRepo: priorityRepo}
}

func (s *PriorityServiceImpl) ListPriorities(ctx context.Context, userID uuid.UUID) ([]dto.PriorityConfigResponse, error) {
	if err := s.priorityRepo.EnsureDefaults(ctx, userID); err != nil {
		logger.ErrorContext(ctx, "Failed to seed priority configs", "user_id", userID, "error", err)
		return nil, err
	}

	configs, err := s.priorityRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list priority configs", "user_id", userID, "error", err)
		return nil, err
	}
	return dto.PriorityConfigsToResponses(configs), nil
}

func (s *PriorityServiceImpl) ReplaceReminders(ctx context.Context, userID, configID uuid.UUID, req *dto.ReplaceRemindersRequest) (*dto.PriorityConfigResponse, error) {
	cfg, err := s.priorityRepo.GetByID(ctx, configID)
	if err != nil {
		if isNotFound(err) {
			return nil, errPriorityNotFound
		}
		return nil, err
	}
	if cfg.UserID != userID {
		return nil, errPriorityNotFound
	}

	if len(req.Reminders) > models.MaxRemindersPerPriority {
		return nil, services.NewError(services.ErrInvalidInput,
			fmt.Sprintf("at most %d reminders per priority", models.MaxRemindersPerPriority))
	}

	now := time.Now()
	reminders := make([]models.Reminder, len(req.Reminders))
	for i, in := range req.Reminders {
		if in.Value <= 0 || !in.Unit.Valid() {
			return nil, services.NewError(services.ErrInvalidInput,
				fmt.Sprintf("invalid reminder %d: value must be positive and unit one of minutes, hours, days", i+1))
		}
		reminders[i] = models.Reminder{
			ID:               uuid.New(),
			PriorityConfigID: configID,
			Value:            in.Value,
			Unit:             in.Unit,
			Position:         i,
			CreatedAt:        now,
		}
	}

	if err := s.priorityRepo.ReplaceReminders(ctx, configID, reminders); err != nil {
		logger.ErrorContext(ctx, "Failed to replace reminders", "config_id", configID, "error", err)
		return nil, err
	}

	updated, err := s.priorityRepo.GetByID(ctx, configID)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Reminders replaced", "config_id", configID, "priority", cfg.Priority, "count", len(reminders))
	resp := dto.PriorityConfigToResponse(updated)
	return &resp, nil
}
