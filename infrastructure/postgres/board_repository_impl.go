package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasktrack/domain/models"
	"tasktrack/domain/repositories"
)

type BoardRepositoryImpl struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) repositories.BoardRepository {
	return &BoardRepositoryImpl{db: db}
}

func (r *BoardRepositoryImpl) Create(ctx context.Context, board *models.Board, categories []models.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(board).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return nil
		}
		for i := range categories {
			categories[i].BoardID = board.ID
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}
		board.Categories = categories
		return nil
	})
}

// withBoardRelations everything the board list and stats need
func withBoardRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("categories.created_at ASC")
		}).
		Preload("Tasks").
		Preload("Guests")
}

func (r *BoardRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := withBoardRelations(r.db.WithContext(ctx)).Where("id = ?", id).First(&board).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepositoryImpl) ListOwned(ctx context.Context, userID uuid.UUID) ([]models.Board, error) {
	var boards []models.Board
	err := withBoardRelations(r.db.WithContext(ctx)).
		Where("owner_id = ?", userID).
		Order("created_at ASC").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepositoryImpl) ListGuest(ctx context.Context, userID uuid.UUID) ([]models.Board, error) {
	var boards []models.Board
	err := withBoardRelations(r.db.WithContext(ctx)).
		Joins("JOIN board_guests ON board_guests.board_id = boards.id").
		Where("board_guests.user_id = ?", userID).
		Order("boards.created_at ASC").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepositoryImpl) Update(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Model(&models.Board{}).Where("id = ?", board.ID).Updates(map[string]interface{}{
		"title":       board.Title,
		"description": board.Description,
		"icon":        board.Icon,
		"theme":       board.Theme,
		"updated_at":  gorm.Expr("NOW()"),
	}).Error
}

// Delete removes the board with all of its tasks and every row hanging off them
func (r *BoardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Task{}).Select("id").Where("board_id = ?", id)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.ReminderDelivery{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.BoardGuest{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Board{}).Error
	})
}

func (r *BoardRepositoryImpl) AddGuest(ctx context.Context, boardID, userID uuid.UUID) error {
	guest := models.BoardGuest{BoardID: boardID, UserID: userID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&guest).Error
}

func (r *BoardRepositoryImpl) RemoveGuest(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&models.BoardGuest{}).Error
}

func (r *BoardRepositoryImpl) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, bool, error) {
	var board models.Board
	err := r.db.WithContext(ctx).Select("id", "owner_id").Where("id = ?", boardID).First(&board).Error
	if err != nil {
		return false, false, err
	}
	if board.OwnerID == userID {
		return true, false, nil
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&models.BoardGuest{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	if err != nil {
		return false, false, err
	}
	return false, count > 0, nil
}

func (r *BoardRepositoryImpl) MemberIDs(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	var board models.Board
	err := r.db.WithContext(ctx).Select("id", "owner_id").Where("id = ?", boardID).First(&board).Error
	if err != nil {
		return nil, err
	}

	var guests []models.BoardGuest
	err = r.db.WithContext(ctx).Where("board_id = ?", boardID).Find(&guests).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(guests)+1)
	ids = append(ids, board.OwnerID)
	for _, g := range guests {
		ids = append(ids, g.UserID)
	}
	return ids, nil
}
