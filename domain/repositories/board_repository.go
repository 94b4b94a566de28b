package repositories

import (
	"context"

	"github.com/google/uuid"
	"tasktrack/domain/models"
)

type BoardRepository interface {
	// Create inserts the board and its categories in one transaction
	Create(ctx context.Context, board *models.Board, categories []models.Category) error
	// GetByID preloads Categories, Tasks and Guests
	GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error)
	ListOwned(ctx context.Context, userID uuid.UUID) ([]models.Board, error)
	// ListGuest boards the user joined through board_guests
	ListGuest(ctx context.Context, userID uuid.UUID) ([]models.Board, error)
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddGuest(ctx context.Context, boardID, userID uuid.UUID) error
	RemoveGuest(ctx context.Context, boardID, userID uuid.UUID) error
	IsMember(ctx context.Context, boardID, userID uuid.UUID) (owner bool, guest bool, err error)
	// MemberIDs owner followed by the guests of the board
	MemberIDs(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error)
}
