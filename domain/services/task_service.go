package services

import (
	"context"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
)

type TaskService interface {
	ListTasks(ctx context.Context, userID, boardID uuid.UUID) ([]dto.TaskResponse, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskResponse, error)
	// CreateTask assigns the creator when no assignee is given
	CreateTask(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	UpdateTaskColumn(ctx context.Context, userID, taskID uuid.UUID, column models.Column) (*dto.TaskResponse, error)
	// DeleteTask removes blobs, attachment rows, comments, then the task
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}
