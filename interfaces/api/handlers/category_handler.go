package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/domain/dto"
	"tasktrack/domain/services"
	"tasktrack/pkg/utils"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	boardID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	categories, err := h.categoryService.ListCategories(c.UserContext(), user.ID, boardID)
	if err != nil {
		return serviceError(c, "List categories", err)
	}

	return utils.SuccessResponse(c, categories)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	boardID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	var req dto.CreateCategoryRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	category, err := h.categoryService.CreateCategory(c.UserContext(), user.ID, boardID, &req)
	if err != nil {
		return serviceError(c, "Create category", err)
	}

	return utils.CreatedResponse(c, category)
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	categoryID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	var req dto.UpdateCategoryRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	category, err := h.categoryService.UpdateCategory(c.UserContext(), user.ID, categoryID, &req)
	if err != nil {
		return serviceError(c, "Update category", err)
	}

	return utils.SuccessResponse(c, category)
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	categoryID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	if err := h.categoryService.DeleteCategory(c.UserContext(), user.ID, categoryID); err != nil {
		return serviceError(c, "Delete category", err)
	}

	return utils.NoContentResponse(c)
}
