package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/domain/dto"
	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	boardID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.UserContext(), user.ID, boardID)
	if err != nil {
		return serviceError(c, "List tasks", err)
	}

	return utils.SuccessResponse(c, tasks)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	taskID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	task, err := h.taskService.GetTask(c.UserContext(), user.ID, taskID)
	if err != nil {
		return serviceError(c, "Get task", err)
	}

	return utils.SuccessResponse(c, task)
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	boardID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	var req dto.CreateTaskRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	task, err := h.taskService.CreateTask(ctx, user.ID, boardID, &req)
	if err != nil {
		return serviceError(c, "Create task", err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "board_id", boardID, "user_id", user.ID)
	return utils.CreatedResponse(c, task)
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	taskID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	var req dto.UpdateTaskRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	task, err := h.taskService.UpdateTask(c.UserContext(), user.ID, taskID, &req)
	if err != nil {
		return serviceError(c, "Update task", err)
	}

	return utils.SuccessResponse(c, task)
}

// UpdateColumn PATCH /tasks/:id/column, the drag and drop move
func (h *TaskHandler) UpdateColumn(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	taskID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	var req dto.UpdateColumnRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	task, err := h.taskService.UpdateTaskColumn(c.UserContext(), user.ID, taskID, req.ColumnID)
	if err != nil {
		return serviceError(c, "Move task", err)
	}

	return utils.SuccessResponse(c, task)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	taskID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	if err := h.taskService.DeleteTask(ctx, user.ID, taskID); err != nil {
		return serviceError(c, "Delete task", err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", user.ID)
	return utils.NoContentResponse(c)
}
