package services

import (
	"context"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
)

type CategoryService interface {
	ListCategories(ctx context.Context, userID, boardID uuid.UUID) ([]dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}
