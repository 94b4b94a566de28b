package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"tasktrack/domain/dto"
	"tasktrack/pkg/boardview"
)

type BoardsAPI struct {
	c *Client
}

// List owned and shared boards, stats included
func (b *BoardsAPI) List(ctx context.Context) ([]dto.BoardResponse, error) {
	var boards []dto.BoardResponse
	if err := b.c.get(ctx, "/boards", nil, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// Get returns nil, nil when the board does not exist or is not visible
func (b *BoardsAPI) Get(ctx context.Context, id string) (*dto.BoardResponse, error) {
	var board dto.BoardResponse
	err := b.c.get(ctx, "/boards/"+url.PathEscape(id), nil, &board)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (b *BoardsAPI) Create(ctx context.Context, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	var board dto.BoardResponse
	if err := b.c.send(ctx, http.MethodPost, "/boards", req, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (b *BoardsAPI) Update(ctx context.Context, id string, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	var board dto.BoardResponse
	if err := b.c.send(ctx, http.MethodPut, "/boards/"+url.PathEscape(id), req, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (b *BoardsAPI) Delete(ctx context.Context, id string) error {
	return b.c.send(ctx, http.MethodDelete, "/boards/"+url.PathEscape(id), nil, nil)
}

// Kanban server side filtered and sorted columns
func (b *BoardsAPI) Kanban(ctx context.Context, id string, f boardview.Filter) (*dto.KanbanResponse, error) {
	query := url.Values{}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	if len(f.Priorities) > 0 {
		names := make([]string, len(f.Priorities))
		for i, p := range f.Priorities {
			names[i] = string(p)
		}
		query.Set("priority", strings.Join(names, ","))
	}
	if len(f.Categories) > 0 {
		query.Set("category", strings.Join(f.Categories, ","))
	}

	var view dto.KanbanResponse
	if err := b.c.get(ctx, "/boards/"+url.PathEscape(id)+"/kanban", query, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (b *BoardsAPI) AddGuest(ctx context.Context, boardID, email string) (*dto.BoardResponse, error) {
	var board dto.BoardResponse
	path := "/boards/" + url.PathEscape(boardID) + "/guests"
	if err := b.c.send(ctx, http.MethodPost, path, dto.AddGuestRequest{Email: email}, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (b *BoardsAPI) RemoveGuest(ctx context.Context, boardID, userID string) error {
	path := "/boards/" + url.PathEscape(boardID) + "/guests/" + url.PathEscape(userID)
	return b.c.send(ctx, http.MethodDelete, path, nil, nil)
}

// ========== Categories ==========

func (b *BoardsAPI) Categories(ctx context.Context, boardID string) ([]dto.CategoryResponse, error) {
	var categories []dto.CategoryResponse
	if err := b.c.get(ctx, "/boards/"+url.PathEscape(boardID)+"/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (b *BoardsAPI) CreateCategory(ctx context.Context, boardID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	var category dto.CategoryResponse
	path := "/boards/" + url.PathEscape(boardID) + "/categories"
	if err := b.c.send(ctx, http.MethodPost, path, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (b *BoardsAPI) UpdateCategory(ctx context.Context, id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var category dto.CategoryResponse
	if err := b.c.send(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (b *BoardsAPI) DeleteCategory(ctx context.Context, id string) error {
	return b.c.send(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}
