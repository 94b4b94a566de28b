package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tasktrack/application/serviceimpl"
	"tasktrack/domain/ports"
	"tasktrack/domain/repositories"
	"tasktrack/domain/services"
	natspkg "tasktrack/infrastructure/nats"
	"tasktrack/infrastructure/postgres"
	redispkg "tasktrack/infrastructure/redis"
	"tasktrack/infrastructure/storage"
	"tasktrack/infrastructure/telegram"
	"tasktrack/interfaces/api/handlers"
	"tasktrack/pkg/config"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/scheduler"
)

const reminderJobID = "reminders.dispatch"

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client      // optional, board cache and token revocation
	NATSClient     *natspkg.Client       // optional, reminder event stream
	NATSPublisher  *natspkg.Publisher    // optional
	Storage        ports.StoragePort     // nil when the configured backend is unreachable
	LocalStorage   *storage.LocalStorage // set when Storage is the local disk, serves /files
	Notifier       *telegram.TelegramNotifier
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository             repositories.UserRepository
	BoardRepository            repositories.BoardRepository
	CategoryRepository         repositories.CategoryRepository
	TaskRepository             repositories.TaskRepository
	CommentRepository          repositories.CommentRepository
	AttachmentRepository       repositories.AttachmentRepository
	PriorityConfigRepository   repositories.PriorityConfigRepository
	ReminderDeliveryRepository repositories.ReminderDeliveryRepository

	// Services
	BoardCache        *serviceimpl.BoardCache
	UserService       services.UserService
	BoardService      services.BoardService
	CategoryService   services.CategoryService
	TaskService       services.TaskService
	CommentService    services.CommentService
	AttachmentService services.AttachmentService
	PriorityService   services.PriorityService
	ReminderService   services.ReminderService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
		"file", c.Config.Log.FilePath,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		LogLevel: c.Config.Database.LogLevel,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis (optional - graceful degradation)
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			logger.Info("Redis client initialized")
		}
	} else {
		logger.Info("Redis not configured, board cache and token revocation disabled")
	}

	// NATS JetStream (optional)
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:    c.Config.NATS.URL,
			MaxAge: 7 * 24 * time.Hour,
		})
		if err != nil {
			logger.Warn("NATS client initialization failed (reminder events disabled)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.NATSPublisher = natspkg.NewPublisher(natsClient)
		}
	}

	c.Notifier = telegram.NewTelegramNotifier(telegram.Config{
		BotToken: c.Config.Telegram.BotToken,
		ChatID:   c.Config.Telegram.ChatID,
	})
	logger.Info("Telegram notifier initialized", "enabled", c.Notifier.IsEnabled())

	c.initStorage()
	return nil
}

// initStorage picks the attachment backend; a failure leaves Storage nil and uploads answer 503
func (c *Container) initStorage() {
	switch c.Config.Storage.Type {
	case "s3":
		s3Config := storage.S3StorageConfig{
			Endpoint:  c.Config.Storage.S3.Endpoint,
			AccessKey: c.Config.Storage.S3.AccessKey,
			SecretKey: c.Config.Storage.S3.SecretKey,
			Bucket:    c.Config.Storage.S3.Bucket,
			UseSSL:    c.Config.Storage.S3.UseSSL,
			Region:    c.Config.Storage.S3.Region,
			PublicURL: c.Config.Storage.S3.PublicURL,
		}
		s3Storage, err := storage.NewS3Storage(s3Config)
		if err != nil {
			logger.Warn("S3 storage unavailable, attachments disabled", "error", err)
			return
		}
		c.Storage = s3Storage
		logger.Info("S3 Storage initialized",
			"endpoint", c.Config.Storage.S3.Endpoint,
			"bucket", c.Config.Storage.S3.Bucket,
		)

	default:
		localConfig := storage.LocalStorageConfig{
			BasePath: c.Config.Storage.BasePath,
			BaseURL:  c.Config.Storage.BaseURL,
			Secret:   c.Config.JWT.Secret,
		}
		localStorage, err := storage.NewLocalStorage(localConfig)
		if err != nil {
			logger.Warn("Local storage unavailable, attachments disabled", "error", err)
			return
		}
		c.Storage = localStorage
		c.LocalStorage = localStorage
		logger.Info("Local Storage initialized", "path", c.Config.Storage.BasePath)
	}
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.BoardRepository = postgres.NewBoardRepository(c.DB)
	c.CategoryRepository = postgres.NewCategoryRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	c.CommentRepository = postgres.NewCommentRepository(c.DB)
	c.AttachmentRepository = postgres.NewAttachmentRepository(c.DB)
	c.PriorityConfigRepository = postgres.NewPriorityConfigRepository(c.DB)
	c.ReminderDeliveryRepository = postgres.NewReminderDeliveryRepository(c.DB)
	logger.Info("Repositories initialized")
	return nil
}

// cachePort nil interface when Redis is absent, never a typed nil
func (c *Container) cachePort() ports.CachePort {
	if c.RedisClient == nil {
		return nil
	}
	return c.RedisClient
}

func (c *Container) publisherPort() ports.ReminderPublisherPort {
	if c.NATSPublisher == nil {
		return nil
	}
	return c.NATSPublisher
}

func (c *Container) notifierPort() ports.ReminderNotifierPort {
	if c.Notifier == nil || !c.Notifier.IsEnabled() {
		return nil
	}
	return c.Notifier
}

func (c *Container) initServices() error {
	cache := c.cachePort()

	c.BoardCache = serviceimpl.NewBoardCache(cache, c.BoardRepository, c.Config.Cache.BoardsTTL)

	c.UserService = serviceimpl.NewUserService(c.UserRepository, cache, serviceimpl.AuthSettings{
		JWT:    c.Config.JWT,
		Google: c.Config.Google,
		GitHub: c.Config.GitHub,
	})
	c.BoardService = serviceimpl.NewBoardService(
		c.BoardRepository,
		c.TaskRepository,
		c.UserRepository,
		c.AttachmentRepository,
		c.Storage,
		c.BoardCache,
		c.Config.Location(),
	)
	c.CategoryService = serviceimpl.NewCategoryService(c.CategoryRepository, c.BoardRepository, c.BoardCache)
	c.TaskService = serviceimpl.NewTaskService(
		c.TaskRepository,
		c.BoardRepository,
		c.CategoryRepository,
		c.CommentRepository,
		c.AttachmentRepository,
		c.ReminderDeliveryRepository,
		c.Storage,
		c.BoardCache,
	)
	c.CommentService = serviceimpl.NewCommentService(c.CommentRepository, c.TaskRepository, c.BoardRepository, c.UserRepository)
	c.AttachmentService = serviceimpl.NewAttachmentService(
		c.AttachmentRepository,
		c.TaskRepository,
		c.BoardRepository,
		c.Storage,
		c.BoardCache,
		serviceimpl.AttachmentSettings{
			MaxUploadSize: c.Config.Storage.MaxUploadSize,
			SignedURLTTL:  c.Config.Storage.SignedURLTTL,
		},
	)
	c.PriorityService = serviceimpl.NewPriorityService(c.PriorityConfigRepository)
	c.ReminderService = serviceimpl.NewReminderService(
		c.TaskRepository,
		c.PriorityConfigRepository,
		c.ReminderDeliveryRepository,
		c.publisherPort(),
		c.notifierPort(),
		c.Config.Reminder.Horizon,
	)

	logger.Info("Services initialized",
		"cache", cache != nil,
		"storage", c.Storage != nil,
		"reminder_events", c.NATSPublisher != nil,
	)
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler(c.Config.Location())

	if !c.Config.Reminder.Enabled {
		logger.Info("Reminder dispatch disabled")
		return nil
	}

	if err := scheduler.ValidateCronExpression(c.Config.Reminder.Cron); err != nil {
		return fmt.Errorf("invalid REMINDER_CRON: %w", err)
	}

	err := c.EventScheduler.AddJob(reminderJobID, c.Config.Reminder.Cron, func(ctx context.Context) {
		result, err := c.ReminderService.DispatchDue(ctx, time.Now())
		if err != nil {
			logger.ErrorContext(ctx, "Reminder dispatch failed", "error", err)
			return
		}
		if result.Fired > 0 || result.Failed > 0 {
			logger.InfoContext(ctx, "Reminders dispatched",
				"scanned", result.Scanned,
				"fired", result.Fired,
				"failed", result.Failed,
			)
		}
	})
	if err != nil {
		return err
	}

	c.EventScheduler.Start()
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) healthChecks() []handlers.HealthCheck {
	checks := []handlers.HealthCheck{{
		Name:     "database",
		Required: true,
		Check: func(ctx context.Context) error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}

	if c.RedisClient != nil {
		checks = append(checks, handlers.HealthCheck{Name: "redis", Check: c.RedisClient.Ping})
	}
	if c.NATSClient != nil {
		checks = append(checks, handlers.HealthCheck{
			Name: "nats",
			Check: func(ctx context.Context) error {
				if !c.NATSClient.IsConnected() {
					return fmt.Errorf("nats disconnected")
				}
				_, err := c.NATSClient.GetStatus(ctx)
				return err
			},
		})
	}
	if c.Config.Reminder.Enabled {
		checks = append(checks, handlers.HealthCheck{
			Name: "scheduler",
			Check: func(context.Context) error {
				if c.EventScheduler == nil || !c.EventScheduler.IsRunning() {
					return fmt.Errorf("scheduler not running")
				}
				if _, ok := c.EventScheduler.GetJob(reminderJobID); !ok {
					return fmt.Errorf("job %s not registered", reminderJobID)
				}
				return nil
			},
		})
	}
	if c.Storage == nil {
		checks = append(checks, handlers.HealthCheck{
			Name:  "storage",
			Check: func(context.Context) error { return fmt.Errorf("%s storage not initialized", c.Config.Storage.Type) },
		})
	}
	return checks
}

func (c *Container) jobStatuses() map[string]handlers.JobStatus {
	if c.EventScheduler == nil {
		return nil
	}
	jobs := c.EventScheduler.ListJobs()
	out := make(map[string]handlers.JobStatus, len(jobs))
	for id, job := range jobs {
		out[id] = handlers.JobStatus{
			Cron:    job.CronExpr,
			Active:  job.IsActive,
			LastRun: job.LastRun,
			NextRun: job.NextRun,
		}
	}
	return out
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:       c.UserService,
		BoardService:      c.BoardService,
		CategoryService:   c.CategoryService,
		TaskService:       c.TaskService,
		CommentService:    c.CommentService,
		AttachmentService: c.AttachmentService,
		PriorityService:   c.PriorityService,
		Config:            c.Config,
		OAuthEndpoints:    handlers.DefaultOAuthEndpoints(),
		HealthChecks:      c.healthChecks(),
		Jobs:              c.jobStatuses,
	}
}
