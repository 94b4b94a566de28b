package client

import (
	"context"
	"net/http"
	"net/url"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
)

type TasksAPI struct {
	c *Client
}

func (t *TasksAPI) List(ctx context.Context, boardID string) ([]dto.TaskResponse, error) {
	var tasks []dto.TaskResponse
	if err := t.c.get(ctx, "/boards/"+url.PathEscape(boardID)+"/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (t *TasksAPI) Get(ctx context.Context, id string) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	if err := t.c.get(ctx, "/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TasksAPI) Create(ctx context.Context, boardID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	path := "/boards/" + url.PathEscape(boardID) + "/tasks"
	if err := t.c.send(ctx, http.MethodPost, path, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TasksAPI) Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	if err := t.c.send(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateColumn moves the task without touching any other field
func (t *TasksAPI) UpdateColumn(ctx context.Context, id string, column models.Column) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	path := "/tasks/" + url.PathEscape(id) + "/column"
	if err := t.c.send(ctx, http.MethodPatch, path, dto.UpdateColumnRequest{ColumnID: column}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete cascades to comments and attachments server side
func (t *TasksAPI) Delete(ctx context.Context, id string) error {
	return t.c.send(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// ========== Comments ==========

type CommentsAPI struct {
	c *Client
}

func (a *CommentsAPI) List(ctx context.Context, taskID string) ([]dto.CommentResponse, error) {
	var comments []dto.CommentResponse
	if err := a.c.get(ctx, "/tasks/"+url.PathEscape(taskID)+"/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (a *CommentsAPI) Add(ctx context.Context, taskID, text string) (*dto.CommentResponse, error) {
	var comment dto.CommentResponse
	path := "/tasks/" + url.PathEscape(taskID) + "/comments"
	if err := a.c.send(ctx, http.MethodPost, path, dto.CreateCommentRequest{Text: text}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (a *CommentsAPI) Delete(ctx context.Context, id string) error {
	return a.c.send(ctx, http.MethodDelete, "/comments/"+url.PathEscape(id), nil, nil)
}
