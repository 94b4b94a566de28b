package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/ports"
	"tasktrack/domain/repositories"
	"tasktrack/domain/services"
	"tasktrack/pkg/boardview"
	"tasktrack/pkg/logger"
)

type BoardServiceImpl struct {
	boardRepo      repositories.BoardRepository
	taskRepo       repositories.TaskRepository
	userRepo       repositories.UserRepository
	attachmentRepo repositories.AttachmentRepository
	storage        ports.StoragePort
	cache          *BoardCache
	access         boardAccess
	// loc decides the calendar day used for board statistics
	loc *time.Location
	now func() time.Time
}

func NewBoardService(
	boardRepo repositories.BoardRepository,
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	attachmentRepo repositories.AttachmentRepository,
	storage ports.StoragePort,
	cache *BoardCache,
	loc *time.Location,
) services.BoardService {
	if loc == nil {
		loc = time.UTC
	}
	return &BoardServiceImpl{
		boardRepo:      boardRepo,
		taskRepo:       taskRepo,
		userRepo:       userRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
		cache:          cache,
		access:         boardAccess{boardRepo: boardRepo},
		loc:            loc,
		now:            time.Now,
	}
}

func (s *BoardServiceImpl) today() time.Time {
	return s.now().In(s.loc)
}

func (s *BoardServiceImpl) toResponse(board *models.Board, today time.Time) dto.BoardResponse {
	resp := dto.BoardToBoardResponse(board)
	resp.Stats = boardview.ComputeStats(dto.TasksToTaskResponses(board.Tasks), today)
	return *resp
}

func (s *BoardServiceImpl) ListBoards(ctx context.Context, userID uuid.UUID) ([]dto.BoardResponse, error) {
	if cached, ok := s.cache.Get(ctx, userID); ok {
		return cached, nil
	}

	owned, err := s.boardRepo.ListOwned(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list owned boards", "user_id", userID, "error", err)
		return nil, err
	}
	guest, err := s.boardRepo.ListGuest(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list guest boards", "user_id", userID, "error", err)
		return nil, err
	}

	merged := boardview.MergeBoards(owned, guest, func(b models.Board) string { return b.ID.String() })

	today := s.today()
	boards := make([]dto.BoardResponse, len(merged))
	for i := range merged {
		boards[i] = s.toResponse(&merged[i], today)
	}

	s.cache.Set(ctx, userID, boards)
	return boards, nil
}

func (s *BoardServiceImpl) GetBoardByID(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error) {
	if _, err := s.access.member(ctx, boardID, userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		logger.ErrorContext(ctx, "Failed to load board", "board_id", boardID, "error", err)
		return nil, err
	}

	resp := s.toResponse(board, s.today())
	return &resp, nil
}

func (s *BoardServiceImpl) mustGet(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error) {
	resp, err := s.GetBoardByID(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errBoardNotFound
	}
	return resp, nil
}

func (s *BoardServiceImpl) CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	theme := req.Theme
	if theme == "" {
		theme = models.ThemeBlue
	}
	icon := req.Icon
	if icon == "" {
		icon = models.IconOther
	}

	now := s.now()
	board := &models.Board{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Icon:        icon,
		Theme:       theme,
		OwnerID:     userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// staggered created_at keeps the seeded order when categories are listed
	categories := make([]models.Category, len(models.DefaultCategories))
	for i, def := range models.DefaultCategories {
		categories[i] = models.Category{
			ID:        uuid.New(),
			BoardID:   board.ID,
			Name:      def.Name,
			Color:     def.Color,
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
	}

	if err := s.boardRepo.Create(ctx, board, categories); err != nil {
		logger.ErrorContext(ctx, "Failed to create board", "user_id", userID, "error", err)
		return nil, err
	}

	s.cache.InvalidateUsers(ctx, userID)
	logger.InfoContext(ctx, "Board created", "board_id", board.ID, "user_id", userID)
	return s.mustGet(ctx, userID, board.ID)
}

func (s *BoardServiceImpl) UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	if err := s.access.owner(ctx, boardID, userID); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		if isNotFound(err) {
			return nil, errBoardNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		board.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		board.Description = *req.Description
	}
	if req.Theme != nil {
		board.Theme = *req.Theme
	}
	if req.Icon != nil {
		board.Icon = *req.Icon
	}
	board.UpdatedAt = s.now()

	if err := s.boardRepo.Update(ctx, board); err != nil {
		logger.ErrorContext(ctx, "Failed to update board", "board_id", boardID, "error", err)
		return nil, err
	}

	s.cache.InvalidateBoard(ctx, boardID)
	logger.InfoContext(ctx, "Board updated", "board_id", boardID)
	return s.mustGet(ctx, userID, boardID)
}

// DeleteBoard blobs go first so a failed storage call leaves the board intact
func (s *BoardServiceImpl) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if err := s.access.owner(ctx, boardID, userID); err != nil {
		return err
	}

	members, err := s.boardRepo.MemberIDs(ctx, boardID)
	if err != nil {
		return err
	}

	attachments, err := s.attachmentRepo.ListByBoard(ctx, boardID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list board attachments", "board_id", boardID, "error", err)
		return err
	}
	if len(attachments) > 0 {
		if s.storage == nil {
			return errStorageDisabled
		}
		paths := make([]string, len(attachments))
		for i := range attachments {
			paths[i] = attachments[i].StoragePath
		}
		if err := s.storage.DeleteFiles(ctx, paths); err != nil {
			logger.ErrorContext(ctx, "Failed to delete board files", "board_id", boardID, "files", len(paths), "error", err)
			return err
		}
	}

	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete board", "board_id", boardID, "error", err)
		return err
	}

	s.cache.InvalidateUsers(ctx, members...)
	logger.InfoContext(ctx, "Board deleted", "board_id", boardID, "files", len(attachments))
	return nil
}

func (s *BoardServiceImpl) AddGuest(ctx context.Context, userID, boardID uuid.UUID, email string) (*dto.BoardResponse, error) {
	if err := s.access.owner(ctx, boardID, userID); err != nil {
		return nil, err
	}

	guest, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if isNotFound(err) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	if guest.ID == userID {
		return nil, services.NewError(services.ErrInvalidInput, "the owner cannot be added as a guest")
	}

	if err := s.boardRepo.AddGuest(ctx, boardID, guest.ID); err != nil {
		logger.ErrorContext(ctx, "Failed to add guest", "board_id", boardID, "guest_id", guest.ID, "error", err)
		return nil, err
	}

	s.cache.InvalidateBoard(ctx, boardID)
	logger.InfoContext(ctx, "Guest added", "board_id", boardID, "guest_id", guest.ID)
	return s.mustGet(ctx, userID, boardID)
}

// RemoveGuest the owner removes anyone, a guest may only remove themselves
func (s *BoardServiceImpl) RemoveGuest(ctx context.Context, userID, boardID, guestID uuid.UUID) error {
	owner, err := s.access.member(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if !owner && guestID != userID {
		return errOwnerOnly
	}

	members, err := s.boardRepo.MemberIDs(ctx, boardID)
	if err != nil {
		return err
	}

	if err := s.boardRepo.RemoveGuest(ctx, boardID, guestID); err != nil {
		logger.ErrorContext(ctx, "Failed to remove guest", "board_id", boardID, "guest_id", guestID, "error", err)
		return err
	}

	s.cache.InvalidateUsers(ctx, members...)
	logger.InfoContext(ctx, "Guest removed", "board_id", boardID, "guest_id", guestID)
	return nil
}

func (s *BoardServiceImpl) KanbanView(ctx context.Context, userID, boardID uuid.UUID, query *dto.KanbanQuery) (*dto.KanbanResponse, error) {
	if _, err := s.access.member(ctx, boardID, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByBoard(ctx, boardID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list board tasks", "board_id", boardID, "error", err)
		return nil, err
	}

	filter := boardview.Filter{}
	if query != nil {
		filter = boardview.ParseFilter(query.Search, query.Priority, query.Category)
	}
	return boardview.BuildKanban(boardID.String(), dto.TasksToTaskResponses(tasks), filter), nil
}
