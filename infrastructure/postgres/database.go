package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasktrack/domain/models"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string // silent, error, warn, info
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(config.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}

func Migrate(db *gorm.DB) error {
	// custom junction rows must be registered before AutoMigrate
	if err := db.SetupJoinTable(&models.Board{}, "Guests", &models.BoardGuest{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.Task{}, "Categories", &models.TaskCategory{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.Task{}, "Assignees", &models.TaskAssignee{}); err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardGuest{},
		&models.Category{},
		&models.Task{},
		&models.TaskCategory{},
		&models.TaskAssignee{},
		&models.Comment{},
		&models.Attachment{},
		// Priority reminders
		&models.PriorityConfig{},
		&models.Reminder{},
		&models.ReminderDelivery{},
	)
}
