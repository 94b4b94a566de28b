package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"tasktrack/domain/models"
	natspkg "tasktrack/infrastructure/nats"
	"tasktrack/infrastructure/postgres"
	redispkg "tasktrack/infrastructure/redis"
	"tasktrack/pkg/config"
)

// reset-data empties every TaskTrack table, the Redis cache and the reminder stream of a
// development environment. It refuses to run unless APP_ENV=development.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.IsDevelopment() {
		log.Fatalf("Refusing to reset data with APP_ENV=%s", cfg.App.Env)
	}

	fmt.Println("============================================")
	fmt.Println("  TaskTrack - Clear All Data")
	fmt.Println("============================================")
	fmt.Println()

	clearPostgreSQL(cfg)
	clearRedis(cfg)
	clearNATS(cfg)

	fmt.Println()
	fmt.Println("============================================")
	fmt.Println("  Done! Ready for fresh testing.")
	fmt.Println("============================================")
}

func clearPostgreSQL(cfg *config.Config) {
	fmt.Println("[1/3] Clearing PostgreSQL...")

	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: "silent",
	})
	if err != nil {
		log.Printf("     Failed to connect to database: %v\n", err)
		return
	}

	// children before parents
	tables := []interface{}{
		&models.ReminderDelivery{},
		&models.Reminder{},
		&models.PriorityConfig{},
		&models.Attachment{},
		&models.Comment{},
		&models.TaskAssignee{},
		&models.TaskCategory{},
		&models.Task{},
		&models.Category{},
		&models.BoardGuest{},
		&models.Board{},
		&models.User{},
	}

	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, table := range tables {
		if err := all.Unscoped().Delete(table).Error; err != nil {
			fmt.Printf("     Warning: could not clear %T: %v\n", table, err)
		}
	}

	fmt.Println("     PostgreSQL cleared successfully!")
}

// cached board lists and revoked token ids
var redisPatterns = []string{"boards:user:*", "revoked:*"}

func clearRedis(cfg *config.Config) {
	fmt.Println("[2/3] Clearing Redis...")

	if cfg.Redis.URL == "" {
		fmt.Println("     Redis not configured (skipping)")
		return
	}

	client, err := redispkg.NewClient(&cfg.Redis)
	if err != nil {
		fmt.Printf("     Redis not available: %v (skipping)\n", err)
		return
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var total int64
	for _, pattern := range redisPatterns {
		n, err := client.ScanAndDelete(ctx, pattern)
		total += n
		if err != nil {
			fmt.Printf("     Failed to clear %s: %v\n", pattern, err)
		}
	}
	fmt.Printf("     Redis cleared! Keys deleted: %d\n", total)
}

func clearNATS(cfg *config.Config) {
	fmt.Println("[3/3] Clearing NATS JetStream...")

	if cfg.NATS.URL == "" {
		fmt.Println("     NATS not configured (skipping)")
		return
	}

	client, err := natspkg.NewClient(natspkg.ClientConfig{URL: cfg.NATS.URL})
	if err != nil {
		fmt.Printf("     NATS not available: %v (skipping)\n", err)
		return
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stream, err := client.JetStream().Stream(ctx, natspkg.ReminderStreamName)
	if err != nil {
		fmt.Printf("     Stream '%s' not found (OK - nothing to clear)\n", natspkg.ReminderStreamName)
		return
	}

	if err := stream.Purge(ctx); err != nil {
		fmt.Printf("     Failed to purge stream: %v\n", err)
		return
	}

	info, err := stream.Info(ctx)
	if err != nil {
		fmt.Println("     NATS stream purged!")
		return
	}
	fmt.Printf("     NATS stream purged! Messages: %d\n", info.State.Msgs)
}
