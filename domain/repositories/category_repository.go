package repositories

import (
	"context"

	"github.com/google/uuid"
	"tasktrack/domain/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	// Delete also detaches the category from its tasks
	Delete(ctx context.Context, id uuid.UUID) error
}
