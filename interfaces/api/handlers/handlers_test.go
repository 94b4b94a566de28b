package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/services"
	"tasktrack/pkg/utils"
)

var testUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

// ========== fakes ==========

type fakeTaskService struct {
	services.TaskService

	CreateTaskFunc       func(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTaskColumnFunc func(ctx context.Context, userID, taskID uuid.UUID, column models.Column) (*dto.TaskResponse, error)
	DeleteTaskFunc       func(ctx context.Context, userID, taskID uuid.UUID) error
}

func (f *fakeTaskService) CreateTask(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	return f.CreateTaskFunc(ctx, userID, boardID, req)
}

func (f *fakeTaskService) UpdateTaskColumn(ctx context.Context, userID, taskID uuid.UUID, column models.Column) (*dto.TaskResponse, error) {
	return f.UpdateTaskColumnFunc(ctx, userID, taskID, column)
}

func (f *fakeTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return f.DeleteTaskFunc(ctx, userID, taskID)
}

type fakeBoardService struct {
	services.BoardService

	GetBoardByIDFunc func(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error)
	DeleteBoardFunc  func(ctx context.Context, userID, boardID uuid.UUID) error
	KanbanViewFunc   func(ctx context.Context, userID, boardID uuid.UUID, query *dto.KanbanQuery) (*dto.KanbanResponse, error)
}

func (f *fakeBoardService) GetBoardByID(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error) {
	return f.GetBoardByIDFunc(ctx, userID, boardID)
}

func (f *fakeBoardService) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	return f.DeleteBoardFunc(ctx, userID, boardID)
}

func (f *fakeBoardService) KanbanView(ctx context.Context, userID, boardID uuid.UUID, query *dto.KanbanQuery) (*dto.KanbanResponse, error) {
	return f.KanbanViewFunc(ctx, userID, boardID, query)
}

// ========== helpers ==========

// newTestApp mounts routes behind a stand-in for the auth middleware
func newTestApp(authenticated bool, mount func(app *fiber.App)) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if authenticated {
			c.Locals("user", &utils.UserContext{ID: testUserID, Username: "ada", Role: "user"})
		}
		return c.Next()
	})
	mount(app)
	return app
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *utils.ErrorInfo `json:"error"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("response is not an envelope: %s", raw)
		}
	}
	return resp.StatusCode, env
}

// ========== tests ==========

func TestCreateTask(t *testing.T) {
	boardID := uuid.New()
	var got *dto.CreateTaskRequest
	svc := &fakeTaskService{
		CreateTaskFunc: func(ctx context.Context, userID, bID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
			if userID != testUserID || bID != boardID {
				t.Errorf("user = %s, board = %s", userID, bID)
			}
			got = req
			return &dto.TaskResponse{ID: uuid.NewString(), Title: req.Title, Priority: req.Priority}, nil
		},
	}
	h := NewTaskHandler(svc)
	app := newTestApp(true, func(app *fiber.App) {
		app.Post("/boards/:id/tasks", h.CreateTask)
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"valid", `{"title":"Study","priority":"Alta","columnId":"todo"}`, http.StatusCreated, ""},
		{"missing title", `{"priority":"Alta"}`, http.StatusBadRequest, utils.ErrCodeValidation},
		{"unknown priority", `{"title":"Study","priority":"Highest"}`, http.StatusBadRequest, utils.ErrCodeValidation},
		{"unknown column", `{"title":"Study","columnId":"later"}`, http.StatusBadRequest, utils.ErrCodeValidation},
		{"malformed", `{"title":`, http.StatusBadRequest, utils.ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doRequest(t, app, http.MethodPost, "/boards/"+boardID.String()+"/tasks", tt.body)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantCode != "" && (env.Error == nil || env.Error.Code != tt.wantCode) {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
			if tt.wantCode == "" && !env.Success {
				t.Error("success = false")
			}
		})
	}

	if got == nil || got.Priority != models.PriorityAlta {
		t.Errorf("service saw %+v", got)
	}
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{services.NewError(services.ErrInvalidInput, "bad"), http.StatusBadRequest, utils.ErrCodeBadRequest},
		{services.ErrUnauthenticated, http.StatusUnauthorized, utils.ErrCodeUnauthorized},
		{services.NewError(services.ErrForbidden, "owner only"), http.StatusForbidden, utils.ErrCodeForbidden},
		{fmt.Errorf("wrapped: %w", services.ErrNotFound), http.StatusNotFound, utils.ErrCodeNotFound},
		{services.ErrConflict, http.StatusConflict, utils.ErrCodeConflict},
		{services.ErrUnavailable, http.StatusServiceUnavailable, utils.ErrCodeUnavailable},
		{errors.New("db down"), http.StatusInternalServerError, utils.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			svc := &fakeBoardService{DeleteBoardFunc: func(ctx context.Context, userID, boardID uuid.UUID) error {
				return tt.err
			}}
			h := NewBoardHandler(svc)
			app := newTestApp(true, func(app *fiber.App) {
				app.Delete("/boards/:id", h.DeleteBoard)
			})

			status, env := doRequest(t, app, http.MethodDelete, "/boards/"+uuid.NewString(), "")
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestServiceErrorHidesInternalMessage(t *testing.T) {
	svc := &fakeBoardService{DeleteBoardFunc: func(ctx context.Context, userID, boardID uuid.UUID) error {
		return errors.New("pq: connection refused")
	}}
	h := NewBoardHandler(svc)
	app := newTestApp(true, func(app *fiber.App) {
		app.Delete("/boards/:id", h.DeleteBoard)
	})

	_, env := doRequest(t, app, http.MethodDelete, "/boards/"+uuid.NewString(), "")
	if env.Error == nil || strings.Contains(env.Error.Message, "pq:") {
		t.Errorf("internal error leaked: %+v", env.Error)
	}
}

func TestDeleteTaskNoContent(t *testing.T) {
	taskID := uuid.New()
	deleted := uuid.Nil
	h := NewTaskHandler(&fakeTaskService{DeleteTaskFunc: func(ctx context.Context, userID, id uuid.UUID) error {
		deleted = id
		return nil
	}})
	app := newTestApp(true, func(app *fiber.App) {
		app.Delete("/tasks/:id", h.DeleteTask)
	})

	status, _ := doRequest(t, app, http.MethodDelete, "/tasks/"+taskID.String(), "")
	if status != http.StatusNoContent {
		t.Errorf("status = %d, want 204", status)
	}
	if deleted != taskID {
		t.Errorf("deleted %s, want %s", deleted, taskID)
	}
}

func TestUpdateColumn(t *testing.T) {
	var moved models.Column
	h := NewTaskHandler(&fakeTaskService{
		UpdateTaskColumnFunc: func(ctx context.Context, userID, taskID uuid.UUID, column models.Column) (*dto.TaskResponse, error) {
			moved = column
			return &dto.TaskResponse{ID: taskID.String(), ColumnID: column}, nil
		},
	})
	app := newTestApp(true, func(app *fiber.App) {
		app.Patch("/tasks/:id/column", h.UpdateColumn)
	})

	status, env := doRequest(t, app, http.MethodPatch, "/tasks/"+uuid.NewString()+"/column", `{"columnId":"inprogress"}`)
	if status != http.StatusOK || moved != models.ColumnInProgress {
		t.Fatalf("status = %d, moved = %q", status, moved)
	}
	var task dto.TaskResponse
	if err := json.Unmarshal(env.Data, &task); err != nil || task.ColumnID != models.ColumnInProgress {
		t.Errorf("data = %s", env.Data)
	}

	status, _ = doRequest(t, app, http.MethodPatch, "/tasks/"+uuid.NewString()+"/column", `{"columnId":"archived"}`)
	if status != http.StatusBadRequest {
		t.Errorf("unknown column status = %d, want 400", status)
	}
}

func TestGetBoardNotVisible(t *testing.T) {
	h := NewBoardHandler(&fakeBoardService{GetBoardByIDFunc: func(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error) {
		return nil, nil
	}})
	app := newTestApp(true, func(app *fiber.App) {
		app.Get("/boards/:id", h.GetBoard)
	})

	status, env := doRequest(t, app, http.MethodGet, "/boards/"+uuid.NewString(), "")
	if status != http.StatusNotFound || env.Error == nil || env.Error.Code != utils.ErrCodeNotFound {
		t.Errorf("status = %d, error = %+v", status, env.Error)
	}
}

func TestInvalidIDAndMissingUser(t *testing.T) {
	h := NewBoardHandler(&fakeBoardService{GetBoardByIDFunc: func(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error) {
		t.Error("service must not be reached")
		return nil, nil
	}})

	app := newTestApp(true, func(app *fiber.App) {
		app.Get("/boards/:id", h.GetBoard)
	})
	if status, _ := doRequest(t, app, http.MethodGet, "/boards/not-a-uuid", ""); status != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", status)
	}

	anonymous := newTestApp(false, func(app *fiber.App) {
		app.Get("/boards/:id", h.GetBoard)
	})
	if status, _ := doRequest(t, anonymous, http.MethodGet, "/boards/"+uuid.NewString(), ""); status != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", status)
	}
}

func TestKanbanQuery(t *testing.T) {
	var got *dto.KanbanQuery
	h := NewBoardHandler(&fakeBoardService{KanbanViewFunc: func(ctx context.Context, userID, boardID uuid.UUID, query *dto.KanbanQuery) (*dto.KanbanResponse, error) {
		got = query
		return &dto.KanbanResponse{BoardID: boardID.String()}, nil
	}})
	app := newTestApp(true, func(app *fiber.App) {
		app.Get("/boards/:id/kanban", h.Kanban)
	})

	status, _ := doRequest(t, app, http.MethodGet, "/boards/"+uuid.NewString()+"/kanban?search=exam&priority=Alta,Urgente&category=c1", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got == nil || got.Search != "exam" || got.Priority != "Alta,Urgente" || got.Category != "c1" {
		t.Errorf("query = %+v", got)
	}
}
