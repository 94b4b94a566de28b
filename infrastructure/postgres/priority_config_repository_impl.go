package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasktrack/domain/models"
	"tasktrack/domain/repositories"
)

type PriorityConfigRepositoryImpl struct {
	db *gorm.DB
}

func NewPriorityConfigRepository(db *gorm.DB) repositories.PriorityConfigRepository {
	return &PriorityConfigRepositoryImpl{db: db}
}

func preloadReminders(db *gorm.DB) *gorm.DB {
	return db.Preload("Reminders", func(db *gorm.DB) *gorm.DB {
		return db.Order("reminders.position ASC")
	})
}

func (r *PriorityConfigRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PriorityConfig, error) {
	var configs []models.PriorityConfig
	err := preloadReminders(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Find(&configs).Error
	return configs, err
}

func (r *PriorityConfigRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.PriorityConfig, error) {
	var config models.PriorityConfig
	err := preloadReminders(r.db.WithContext(ctx)).Where("id = ?", id).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *PriorityConfigRepositoryImpl) GetByUserAndPriority(ctx context.Context, userID uuid.UUID, priority models.Priority) (*models.PriorityConfig, error) {
	var config models.PriorityConfig
	err := preloadReminders(r.db.WithContext(ctx)).
		Where("user_id = ? AND priority = ?", userID, priority).
		First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *PriorityConfigRepositoryImpl) EnsureDefaults(ctx context.Context, userID uuid.UUID) error {
	configs := make([]models.PriorityConfig, 0, len(models.Priorities))
	for _, p := range models.Priorities {
		def := models.PriorityDefaults[p]
		configs = append(configs, models.PriorityConfig{
			UserID:      userID,
			Priority:    p,
			Label:       def.Label,
			Description: def.Description,
			BgClass:     def.BgClass,
			TextClass:   def.TextClass,
		})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "priority"}},
			DoNothing: true,
		}).
		Create(&configs).Error
}

func (r *PriorityConfigRepositoryImpl) ReplaceReminders(ctx context.Context, configID uuid.UUID, reminders []models.Reminder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("priority_config_id = ?", configID).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		if len(reminders) == 0 {
			return nil
		}
		for i := range reminders {
			reminders[i].PriorityConfigID = configID
			reminders[i].Position = i
		}
		return tx.Create(&reminders).Error
	})
}

// ==================== Deliveries ====================

type ReminderDeliveryRepositoryImpl struct {
	db *gorm.DB
}

func NewReminderDeliveryRepository(db *gorm.DB) repositories.ReminderDeliveryRepository {
	return &ReminderDeliveryRepositoryImpl{db: db}
}

func (r *ReminderDeliveryRepositoryImpl) Exists(ctx context.Context, taskID, userID uuid.UUID, fireAt time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReminderDelivery{}).
		Where("task_id = ? AND user_id = ? AND fire_at = ?", taskID, userID, fireAt.UTC()).
		Count(&count).Error
	return count > 0, err
}

func (r *ReminderDeliveryRepositoryImpl) Create(ctx context.Context, delivery *models.ReminderDelivery) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(delivery).Error
}

func (r *ReminderDeliveryRepositoryImpl) DeleteByTasks(ctx context.Context, taskIDs []uuid.UUID) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("task_id IN ?", taskIDs).Delete(&models.ReminderDelivery{}).Error
}
