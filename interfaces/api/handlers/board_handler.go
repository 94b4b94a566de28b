package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/domain/dto"
	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

type BoardHandler struct {
	boardService services.BoardService
}

func NewBoardHandler(boardService services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

func (h *BoardHandler) ListBoards(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}

	boards, err := h.boardService.ListBoards(c.UserContext(), user.ID)
	if err != nil {
		return serviceError(c, "List boards", err)
	}

	return utils.SuccessResponse(c, boards)
}

func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	boardID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	board, err := h.boardService.GetBoardByID(c.UserContext(), user.ID, boardID)
	if err != nil {
		return serviceError(c, "Get board", err)
	}
	if board == nil {
		return utils.NotFoundResponse(c, "Board not found")
	}

	return utils.SuccessResponse(c, board)
}

func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok, err := currentUser(c)
	if !ok {
		return err
	}

	var req dto.CreateBoardRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	board, err := h.boardService.CreateBoard(ctx, user.ID, &req)
	if err != nil {
		return serviceError(c, "Create board", err)
	}

	logger.InfoContext(ctx, "Board created", "board_id", board.ID, "user_id", user.ID)
	return utils.CreatedResponse(c, board)
}

func (h *BoardHandler) UpdateBoard(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	boardID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	var req dto.UpdateBoardRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	board, err := h.boardService.UpdateBoard(c.UserContext(), user.ID, boardID, &req)
	if err != nil {
		return serviceError(c, "Update board", err)
	}

	return utils.SuccessResponse(c, board)
}

func (h *BoardHandler) DeleteBoard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	boardID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	if err := h.boardService.DeleteBoard(ctx, user.ID, boardID); err != nil {
		return serviceError(c, "Delete board", err)
	}

	logger.InfoContext(ctx, "Board deleted", "board_id", boardID, "user_id", user.ID)
	return utils.NoContentResponse(c)
}

func (h *BoardHandler) AddGuest(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	boardID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	var req dto.AddGuestRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	board, err := h.boardService.AddGuest(c.UserContext(), user.ID, boardID, req.Email)
	if err != nil {
		return serviceError(c, "Add guest", err)
	}

	return utils.SuccessResponse(c, board)
}

func (h *BoardHandler) RemoveGuest(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	boardID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}
	guestID, ok, err := paramUUID(c, "userId")
	if !ok {
		return err
	}

	if err := h.boardService.RemoveGuest(c.UserContext(), user.ID, boardID, guestID); err != nil {
		return serviceError(c, "Remove guest", err)
	}

	return utils.NoContentResponse(c)
}

// Kanban GET /boards/:id/kanban?search=&priority=Alta,Urgente&category=<id>,<id>
func (h *BoardHandler) Kanban(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	boardID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	var query dto.KanbanQuery
	if err := c.QueryParser(&query); err != nil {
		logger.WarnContext(c.UserContext(), "Invalid kanban query", "error", err)
		return utils.BadRequestResponse(c, "Invalid query parameters")
	}

	view, err := h.boardService.KanbanView(c.UserContext(), user.ID, boardID, &query)
	if err != nil {
		return serviceError(c, "Kanban view", err)
	}

	return utils.SuccessResponse(c, view)
}
