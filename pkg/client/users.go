package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"tasktrack/domain/dto"
)

type UsersAPI struct {
	c *Client
}

func (u *UsersAPI) Profile(ctx context.Context) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := u.c.get(ctx, "/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersAPI) UpdateProfile(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := u.c.send(ctx, http.MethodPut, "/users/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// List admin only
func (u *UsersAPI) List(ctx context.Context, page, limit int) ([]dto.UserResponse, *PageMeta, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var (
		users []dto.UserResponse
		meta  PageMeta
	)
	if err := u.c.do(ctx, &request{
		method: http.MethodGet, path: "/users", query: query, out: &users, meta: &meta,
	}); err != nil {
		return nil, nil, err
	}
	return users, &meta, nil
}
