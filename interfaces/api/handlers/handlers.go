package handlers

import (
	"tasktrack/domain/services"
	"tasktrack/pkg/config"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService       services.UserService
	BoardService      services.BoardService
	CategoryService   services.CategoryService
	TaskService       services.TaskService
	CommentService    services.CommentService
	AttachmentService services.AttachmentService
	PriorityService   services.PriorityService
	Config            *config.Config
	OAuthEndpoints    OAuthEndpoints
	HealthChecks      []HealthCheck
	// Jobs optional, lists the scheduled jobs on GET /health
	Jobs func() map[string]JobStatus
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler       *AuthHandler
	UserHandler       *UserHandler
	BoardHandler      *BoardHandler
	CategoryHandler   *CategoryHandler
	TaskHandler       *TaskHandler
	CommentHandler    *CommentHandler
	AttachmentHandler *AttachmentHandler
	PriorityHandler   *PriorityHandler
	HealthHandler     *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:       NewAuthHandler(services.UserService, services.Config, services.OAuthEndpoints),
		UserHandler:       NewUserHandler(services.UserService),
		BoardHandler:      NewBoardHandler(services.BoardService),
		CategoryHandler:   NewCategoryHandler(services.CategoryService),
		TaskHandler:       NewTaskHandler(services.TaskService),
		CommentHandler:    NewCommentHandler(services.CommentService),
		AttachmentHandler: NewAttachmentHandler(services.AttachmentService),
		PriorityHandler:   NewPriorityHandler(services.PriorityService),
		HealthHandler:     NewHealthHandler(services.Config.App.Name, services.Jobs, services.HealthChecks...),
	}
}
