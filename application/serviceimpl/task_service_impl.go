package serviceimpl

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/ports"
	"tasktrack/domain/repositories"
	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo       repositories.TaskRepository
	boardRepo      repositories.BoardRepository
	categoryRepo   repositories.CategoryRepository
	commentRepo    repositories.CommentRepository
	attachmentRepo repositories.AttachmentRepository
	deliveryRepo   repositories.ReminderDeliveryRepository
	storage        ports.StoragePort
	cache          *BoardCache
	access         boardAccess
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	boardRepo repositories.BoardRepository,
	categoryRepo repositories.CategoryRepository,
	commentRepo repositories.CommentRepository,
	attachmentRepo repositories.AttachmentRepository,
	deliveryRepo repositories.ReminderDeliveryRepository,
	storage ports.StoragePort,
	cache *BoardCache,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:       taskRepo,
		boardRepo:      boardRepo,
		categoryRepo:   categoryRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		deliveryRepo:   deliveryRepo,
		storage:        storage,
		cache:          cache,
		access:         boardAccess{boardRepo: boardRepo},
	}
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, userID, boardID uuid.UUID) ([]dto.TaskResponse, error) {
	if _, err := s.access.member(ctx, boardID, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByBoard(ctx, boardID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "board_id", boardID, "error", err)
		return nil, err
	}
	return dto.TasksToTaskResponses(tasks), nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, _, err := s.access.task(ctx, s.taskRepo, taskID, userID)
	if err != nil {
		return nil, err
	}
	return dto.TaskToTaskResponse(task), nil
}

// boardCategoryIDs every id must name a category of the board
func (s *TaskServiceImpl) boardCategoryIDs(ctx context.Context, boardID uuid.UUID, raw []string) ([]uuid.UUID, error) {
	ids, err := parseIDs(raw)
	if err != nil || len(ids) == 0 {
		return ids, err
	}

	categories, err := s.categoryRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]struct{}, len(categories))
	for i := range categories {
		known[categories[i].ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, services.NewError(services.ErrInvalidInput, "category does not belong to the board: "+id.String())
		}
	}
	return ids, nil
}

// boardAssigneeIDs assignees must be the owner or a guest of the board
func (s *TaskServiceImpl) boardAssigneeIDs(ctx context.Context, boardID uuid.UUID, raw []string) ([]uuid.UUID, error) {
	ids, err := parseIDs(raw)
	if err != nil || len(ids) == 0 {
		return ids, err
	}

	members, err := s.boardRepo.MemberIDs(ctx, boardID)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]struct{}, len(members))
	for _, id := range members {
		known[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, services.NewError(services.ErrInvalidInput, "assignee is not a member of the board: "+id.String())
		}
	}
	return ids, nil
}

func (s *TaskServiceImpl) reload(ctx context.Context, taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if isNotFound(err) {
			return nil, errTaskNotFound
		}
		return nil, err
	}
	return dto.TaskToTaskResponse(task), nil
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if _, err := s.access.member(ctx, boardID, userID); err != nil {
		return nil, err
	}

	categoryIDs, err := s.boardCategoryIDs(ctx, boardID, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	assigneeIDs, err := s.boardAssigneeIDs(ctx, boardID, req.AssigneeIDs)
	if err != nil {
		return nil, err
	}
	if len(assigneeIDs) == 0 {
		assigneeIDs = []uuid.UUID{userID}
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedia
	}
	column := req.ColumnID
	if column == "" {
		column = models.ColumnTodo
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.New(),
		BoardID:     boardID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    priority,
		ColumnID:    column,
		DueDate:     req.DueDate,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task, categoryIDs, assigneeIDs); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "board_id", boardID, "error", err)
		return nil, err
	}

	s.cache.InvalidateBoard(ctx, boardID)
	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "board_id", boardID, "priority", task.Priority)
	return s.reload(ctx, task.ID)
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, _, err := s.access.task(ctx, s.taskRepo, taskID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.ColumnID != nil {
		task.ColumnID = *req.ColumnID
	}
	switch {
	case req.ClearDueDate:
		task.DueDate = nil
	case req.DueDate != nil:
		task.DueDate = req.DueDate
	}
	task.UpdatedAt = time.Now()

	var categoryIDs, assigneeIDs *[]uuid.UUID
	if req.CategoryIDs != nil {
		ids, err := s.boardCategoryIDs(ctx, task.BoardID, *req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		categoryIDs = &ids
	}
	if req.AssigneeIDs != nil {
		ids, err := s.boardAssigneeIDs(ctx, task.BoardID, *req.AssigneeIDs)
		if err != nil {
			return nil, err
		}
		assigneeIDs = &ids
	}

	if err := s.taskRepo.Update(ctx, task, categoryIDs, assigneeIDs); err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, err
	}

	s.cache.InvalidateBoard(ctx, task.BoardID)
	logger.InfoContext(ctx, "Task updated", "task_id", taskID)
	return s.reload(ctx, taskID)
}

func (s *TaskServiceImpl) UpdateTaskColumn(ctx context.Context, userID, taskID uuid.UUID, column models.Column) (*dto.TaskResponse, error) {
	if !column.Valid() {
		return nil, services.NewError(services.ErrInvalidInput, "unknown column: "+string(column))
	}

	task, _, err := s.access.task(ctx, s.taskRepo, taskID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateColumn(ctx, taskID, column); err != nil {
		if isNotFound(err) {
			return nil, errTaskNotFound
		}
		logger.ErrorContext(ctx, "Failed to move task", "task_id", taskID, "column", column, "error", err)
		return nil, err
	}

	s.cache.InvalidateBoard(ctx, task.BoardID)
	logger.InfoContext(ctx, "Task moved", "task_id", taskID, "from", task.ColumnID, "to", column)
	return s.reload(ctx, taskID)
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	task, _, err := s.access.task(ctx, s.taskRepo, taskID, userID)
	if err != nil {
		return err
	}

	attachments, err := s.attachmentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return err
	}
	if len(attachments) > 0 {
		if s.storage == nil {
			return errStorageDisabled
		}
		paths := make([]string, len(attachments))
		for i := range attachments {
			paths[i] = attachments[i].StoragePath
		}
		if err := s.storage.DeleteFiles(ctx, paths); err != nil {
			logger.ErrorContext(ctx, "Failed to delete task files", "task_id", taskID, "error", err)
			return err
		}
	}

	if err := s.attachmentRepo.DeleteByTask(ctx, taskID); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByTask(ctx, taskID); err != nil {
		return err
	}
	if err := s.deliveryRepo.DeleteByTasks(ctx, []uuid.UUID{taskID}); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return err
	}

	s.cache.InvalidateBoard(ctx, task.BoardID)
	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "board_id", task.BoardID)
	return nil
}
