package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/repositories"
	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
)

const defaultCategoryColor = "gray"

type CategoryServiceImpl struct {
	categoryRepo repositories.CategoryRepository
	cache        *BoardCache
	access       boardAccess
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, boardRepo repositories.BoardRepository, cache *BoardCache) services.CategoryService {
	return &CategoryServiceImpl{
		categoryRepo: categoryRepo,
		cache:        cache,
		access:       boardAccess{boardRepo: boardRepo},
	}
}

func (s *CategoryServiceImpl) ListCategories(ctx context.Context, userID, boardID uuid.UUID) ([]dto.CategoryResponse, error) {
	if _, err := s.access.member(ctx, boardID, userID); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.ListByBoard(ctx, boardID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list categories", "board_id", boardID, "error", err)
		return nil, err
	}
	return dto.CategoriesToCategoryResponses(categories), nil
}

func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := s.access.member(ctx, boardID, userID); err != nil {
		return nil, err
	}

	color := req.Color
	if color == "" {
		color = defaultCategoryColor
	}

	category := &models.Category{
		ID:        uuid.New(),
		BoardID:   boardID,
		Name:      strings.TrimSpace(req.Name),
		Color:     color,
		CreatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.ErrorContext(ctx, "Failed to create category", "board_id", boardID, "error", err)
		return nil, err
	}

	s.cache.InvalidateBoard(ctx, boardID)
	logger.InfoContext(ctx, "Category created", "category_id", category.ID, "board_id", boardID)
	resp := dto.CategoryToCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryServiceImpl) load(ctx context.Context, userID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if isNotFound(err) {
			return nil, errCategoryNotFound
		}
		return nil, err
	}
	if _, err := s.access.member(ctx, category.BoardID, userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, errCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.load(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.ErrorContext(ctx, "Failed to update category", "category_id", categoryID, "error", err)
		return nil, err
	}

	s.cache.InvalidateBoard(ctx, category.BoardID)
	logger.InfoContext(ctx, "Category updated", "category_id", categoryID)
	resp := dto.CategoryToCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	category, err := s.load(ctx, userID, categoryID)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete category", "category_id", categoryID, "error", err)
		return err
	}

	s.cache.InvalidateBoard(ctx, category.BoardID)
	logger.InfoContext(ctx, "Category deleted", "category_id", categoryID, "board_id", category.BoardID)
	return nil
}
