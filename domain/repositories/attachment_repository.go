package repositories

import (
	"context"

	"github.com/google/uuid"
	"tasktrack/domain/models"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Attachment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Attachment, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]models.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTask(ctx context.Context, taskID uuid.UUID) error
}
