package dto

import (
	"sort"

	"tasktrack/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
		Role:      user.Role,
		Provider:  user.Provider,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func UserToUserSummary(user *models.User) UserSummary {
	return UserSummary{
		ID:        user.ID.String(),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
	}
}

func CategoryToCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		BoardID:   category.BoardID.String(),
		Name:      category.Name,
		Color:     category.Color,
		ClassName: models.CategoryClass(category.Color),
	}
}

func CategoriesToCategoryResponses(categories []models.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = CategoryToCategoryResponse(&categories[i])
	}
	return responses
}

// TaskToTaskResponse flattens the junction relations; assignees keep their stored order
func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	resp := &TaskResponse{
		ID:              task.ID.String(),
		BoardID:         task.BoardID.String(),
		Title:           task.Title,
		Description:     task.Description,
		Priority:        task.Priority,
		ColumnID:        task.ColumnID,
		DueDate:         task.DueDate,
		Assignees:       make([]UserSummary, len(task.Assignees)),
		Categories:      CategoriesToCategoryResponses(task.Categories),
		CommentCount:    task.CommentCount,
		AttachmentCount: task.AttachmentCount,
		CreatedBy:       task.CreatedBy.String(),
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
	for i := range task.Assignees {
		resp.Assignees[i] = UserToUserSummary(&task.Assignees[i])
	}
	return resp
}

func TasksToTaskResponses(tasks []models.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *TaskToTaskResponse(&tasks[i])
	}
	return responses
}

// BoardToBoardResponse stats are left zero, they are computed by the caller from the tasks
func BoardToBoardResponse(board *models.Board) *BoardResponse {
	if board == nil {
		return nil
	}
	guests := make([]string, len(board.Guests))
	for i := range board.Guests {
		guests[i] = board.Guests[i].ID.String()
	}
	return &BoardResponse{
		ID:          board.ID.String(),
		Title:       board.Title,
		Description: board.Description,
		Icon:        board.Icon,
		Theme:       board.Theme,
		ThemeClass:  models.ThemeClasses[board.Theme],
		OwnerID:     board.OwnerID.String(),
		Categories:  CategoriesToCategoryResponses(board.Categories),
		Guests:      guests,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
}

func CommentToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID.String(),
		TaskID:    comment.TaskID.String(),
		Text:      comment.Text,
		Author:    UserToUserSummary(&comment.Author),
		CreatedAt: comment.CreatedAt,
	}
}

// AttachmentToAttachmentResponse urlFor derives the public URL from the storage path
func AttachmentToAttachmentResponse(a *models.Attachment, urlFor func(path string) string) *AttachmentResponse {
	resp := &AttachmentResponse{
		ID:          a.ID.String(),
		TaskID:      a.TaskID.String(),
		FileName:    a.FileName,
		StoragePath: a.StoragePath,
		Size:        a.Size,
		MimeType:    a.MimeType,
		CreatedAt:   a.CreatedAt,
	}
	if urlFor != nil {
		resp.URL = urlFor(a.StoragePath)
	}
	return resp
}

func PriorityConfigToResponse(cfg *models.PriorityConfig) PriorityConfigResponse {
	reminders := make([]models.Reminder, len(cfg.Reminders))
	copy(reminders, cfg.Reminders)
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].Position < reminders[j].Position
	})

	resp := PriorityConfigResponse{
		ID:          cfg.ID.String(),
		Priority:    cfg.Priority,
		Label:       cfg.Label,
		Description: cfg.Description,
		BgClass:     cfg.BgClass,
		TextClass:   cfg.TextClass,
		Reminders:   make([]ReminderResponse, len(reminders)),
	}
	for i, r := range reminders {
		resp.Reminders[i] = ReminderResponse{ID: r.ID.String(), Value: r.Value, Unit: r.Unit}
	}
	return resp
}

// PriorityConfigsToResponses ordered Bassa, Media, Alta, Urgente
func PriorityConfigsToResponses(configs []models.PriorityConfig) []PriorityConfigResponse {
	responses := make([]PriorityConfigResponse, len(configs))
	for i := range configs {
		responses[i] = PriorityConfigToResponse(&configs[i])
	}
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].Priority.Rank() > responses[j].Priority.Rank()
	})
	return responses
}
