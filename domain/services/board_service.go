package services

import (
	"context"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
)

type BoardService interface {
	// ListBoards owned and guest boards, deduplicated by id, stats computed for today
	ListBoards(ctx context.Context, userID uuid.UUID) ([]dto.BoardResponse, error)
	// GetBoardByID nil, nil when the board is missing or not visible to the user
	GetBoardByID(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error)
	CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error
	AddGuest(ctx context.Context, userID, boardID uuid.UUID, email string) (*dto.BoardResponse, error)
	RemoveGuest(ctx context.Context, userID, boardID, guestID uuid.UUID) error
	KanbanView(ctx context.Context, userID, boardID uuid.UUID, query *dto.KanbanQuery) (*dto.KanbanResponse, error)
}
