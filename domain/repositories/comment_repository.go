package repositories

import (
	"context"

	"github.com/google/uuid"
	"tasktrack/domain/models"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTask(ctx context.Context, taskID uuid.UUID) error
	CountByTask(ctx context.Context, taskID uuid.UUID) (int64, error)
}
