package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/domain/dto"
	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

type PriorityHandler struct {
	priorityService services.PriorityService
}

func NewPriorityHandler(priorityService services.PriorityService) *PriorityHandler {
	return &PriorityHandler{
		priorityService: priorityService,
	}
}

func (h *PriorityHandler) ListPriorities(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}

	configs, err := h.priorityService.ListPriorities(c.UserContext(), user.ID)
	if err != nil {
		return serviceError(c, "List priorities", err)
	}

	return utils.SuccessResponse(c, configs)
}

// ReplaceReminders PUT /priorities/:id/reminders with the complete new set
func (h *PriorityHandler) ReplaceReminders(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	configID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	var req dto.ReplaceRemindersRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	config, err := h.priorityService.ReplaceReminders(ctx, user.ID, configID, &req)
	if err != nil {
		return serviceError(c, "Replace reminders", err)
	}

	logger.InfoContext(ctx, "Reminders replaced", "config_id", configID, "count", len(config.Reminders))
	return utils.SuccessResponse(c, config)
}
