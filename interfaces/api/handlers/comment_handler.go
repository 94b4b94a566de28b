package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/domain/dto"
	"tasktrack/domain/services"
	"tasktrack/pkg/utils"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	taskID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	comments, err := h.commentService.ListComments(c.UserContext(), user.ID, taskID)
	if err != nil {
		return serviceError(c, "List comments", err)
	}

	return utils.SuccessResponse(c, comments)
}

func (h *CommentHandler) AddComment(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	taskID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	var req dto.CreateCommentRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	comment, err := h.commentService.AddComment(c.UserContext(), user.ID, taskID, &req)
	if err != nil {
		return serviceError(c, "Add comment", err)
	}

	return utils.CreatedResponse(c, comment)
}

func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	commentID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	if err := h.commentService.DeleteComment(c.UserContext(), user.ID, commentID); err != nil {
		return serviceError(c, "Delete comment", err)
	}

	return utils.NoContentResponse(c)
}
