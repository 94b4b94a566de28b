package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tasktrack/domain/dto"
	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

const maxPageLimit = 100

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}

	profile, err := h.userService.GetProfile(c.UserContext(), user.ID)
	if err != nil {
		return serviceError(c, "Get profile", err)
	}

	return utils.SuccessResponse(c, dto.UserToUserResponse(profile))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok, err := currentUser(c)
	if !ok {
		return err
	}

	var req dto.UpdateUserRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Profile update attempt", "user_id", user.ID)

	updatedUser, err := h.userService.UpdateProfile(ctx, user.ID, &req)
	if err != nil {
		return serviceError(c, "Profile update", err)
	}

	logger.InfoContext(ctx, "Profile updated", "user_id", user.ID)
	return utils.SuccessResponse(c, dto.UserToUserResponse(updatedUser))
}

// ListUsers GET /users?page=&limit=, used to pick guests and assignees
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	pageStr := c.Query("page", "1")
	limitStr := c.Query("limit", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		logger.WarnContext(ctx, "Invalid page parameter", "page", pageStr)
		return utils.BadRequestResponse(c, "Invalid page parameter")
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		logger.WarnContext(ctx, "Invalid limit parameter", "limit", limitStr)
		return utils.BadRequestResponse(c, "Invalid limit parameter")
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset := (page - 1) * limit
	users, total, err := h.userService.ListUsers(ctx, offset, limit)
	if err != nil {
		return serviceError(c, "List users", err)
	}

	userResponses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = *dto.UserToUserResponse(user)
	}

	return utils.PaginatedSuccessResponse(c, userResponses, total, page, limit)
}
