package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"tasktrack/domain/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task, categoryIDs, assigneeIDs []uuid.UUID) error
	// GetByID preloads Categories, Assignees and the comment/attachment counts
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]models.Task, error)
	// ListDueBetween not-done tasks with a due date in [from, to], assignees preloaded
	ListDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error)
	// Update saves scalar fields; a non-nil id slice replaces that junction wholesale
	Update(ctx context.Context, task *models.Task, categoryIDs, assigneeIDs *[]uuid.UUID) error
	UpdateColumn(ctx context.Context, id uuid.UUID, column models.Column) error
	Delete(ctx context.Context, id uuid.UUID) error
}
