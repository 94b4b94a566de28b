package client

import (
	"context"
	"fmt"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/pkg/kanban"
	"tasktrack/pkg/reminders"
	"tasktrack/pkg/session"
)

// Gateway adapts the SDK to the kanban, reminders and session interfaces
type Gateway struct {
	c *Client
}

var (
	_ kanban.Gateway        = (*Gateway)(nil)
	_ reminders.Gateway     = (*Gateway)(nil)
	_ session.AuthGateway   = (*Gateway)(nil)
	_ session.BoardsGateway = (*Gateway)(nil)
)

func (c *Client) Gateway() *Gateway {
	return &Gateway{c: c}
}

// ========== kanban ==========

func (g *Gateway) ListTasks(ctx context.Context, boardID string) ([]dto.TaskResponse, error) {
	return g.c.Tasks.List(ctx, boardID)
}

func (g *Gateway) CreateTask(ctx context.Context, boardID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	return g.c.Tasks.Create(ctx, boardID, req)
}

func (g *Gateway) UpdateTask(ctx context.Context, taskID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	return g.c.Tasks.Update(ctx, taskID, req)
}

func (g *Gateway) UpdateColumn(ctx context.Context, taskID string, column models.Column) (*dto.TaskResponse, error) {
	return g.c.Tasks.UpdateColumn(ctx, taskID, column)
}

func (g *Gateway) DeleteTask(ctx context.Context, taskID string) error {
	return g.c.Tasks.Delete(ctx, taskID)
}

func (g *Gateway) AddComment(ctx context.Context, taskID, text string) (*dto.CommentResponse, error) {
	return g.c.Comments.Add(ctx, taskID, text)
}

func (g *Gateway) UploadAttachment(ctx context.Context, taskID string, file kanban.PendingFile) (*dto.AttachmentResponse, error) {
	if file.Open == nil {
		return nil, fmt.Errorf("attachment %s has no content", file.Name)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer rc.Close()
	return g.c.Attachments.Upload(ctx, taskID, file.Name, file.MimeType, rc)
}

func (g *Gateway) DeleteAttachment(ctx context.Context, attachmentID string) error {
	return g.c.Attachments.Delete(ctx, attachmentID)
}

// ========== reminders ==========

func (g *Gateway) ListPriorities(ctx context.Context) ([]dto.PriorityConfigResponse, error) {
	return g.c.Priorities.List(ctx)
}

func (g *Gateway) ReplaceReminders(ctx context.Context, configID string, list []dto.ReminderInput) (*dto.PriorityConfigResponse, error) {
	return g.c.Priorities.ReplaceReminders(ctx, configID, list)
}

// ========== session ==========

func (g *Gateway) Me(ctx context.Context) (*dto.UserResponse, error) {
	return g.c.Auth.Me(ctx)
}

func (g *Gateway) SignOut(ctx context.Context) error {
	return g.c.Auth.Logout(ctx)
}

func (g *Gateway) OnAuthEvent(fn func(session.AuthEvent)) func() {
	return g.c.Auth.Subscribe(func(event AuthEvent, _ Tokens) {
		fn(session.AuthEvent(event))
	})
}

func (g *Gateway) ListBoards(ctx context.Context) ([]dto.BoardResponse, error) {
	return g.c.Boards.List(ctx)
}
