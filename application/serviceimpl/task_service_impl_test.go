package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/services"
)

type taskFixture struct {
	owner      uuid.UUID
	guest      uuid.UUID
	boardID    uuid.UUID
	category   models.Category
	created    *models.Task
	categories []uuid.UUID
	assignees  []uuid.UUID
	svc        services.TaskService
	storage    *fakeStorage
	deliveries *fakeDeliveryRepo
	deletedIDs []uuid.UUID
}

func newTaskFixture() *taskFixture {
	f := &taskFixture{owner: uuid.New(), guest: uuid.New(), boardID: uuid.New()}
	f.category = models.Category{ID: uuid.New(), BoardID: f.boardID, Name: "Esami", Color: "red"}

	boards := &fakeBoardRepo{
		IsMemberFunc: func(_ context.Context, _ uuid.UUID, userID uuid.UUID) (bool, bool, error) {
			return userID == f.owner, userID == f.guest, nil
		},
		MemberIDsFunc: func(context.Context, uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{f.owner, f.guest}, nil
		},
	}
	tasks := &fakeTaskRepo{
		CreateFunc: func(_ context.Context, task *models.Task, categoryIDs, assigneeIDs []uuid.UUID) error {
			f.created = task
			f.categories = categoryIDs
			f.assignees = assigneeIDs
			return nil
		},
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*models.Task, error) {
			if f.created == nil || f.created.ID != id {
				return nil, errTaskNotFound
			}
			cp := *f.created
			return &cp, nil
		},
		DeleteFunc: func(_ context.Context, id uuid.UUID) error {
			f.deletedIDs = append(f.deletedIDs, id)
			return nil
		},
	}
	f.storage = &fakeStorage{}
	f.deliveries = newFakeDeliveryRepo()
	f.svc = NewTaskService(tasks, boards, &fakeCategoryRepo{categories: []models.Category{f.category}},
		fakeCommentRepo{}, &fakeAttachmentRepo{}, f.deliveries, f.storage, nil)
	return f
}

func TestCreateTaskDefaults(t *testing.T) {
	f := newTaskFixture()
	resp, err := f.svc.CreateTask(context.Background(), f.guest, f.boardID, &dto.CreateTaskRequest{Title: " Studiare "})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if resp.Priority != models.PriorityMedia || resp.ColumnID != models.ColumnTodo {
		t.Errorf("defaults = %s/%s, want Media/todo", resp.Priority, resp.ColumnID)
	}
	if resp.Title != "Studiare" {
		t.Errorf("Title = %q", resp.Title)
	}
	if len(f.assignees) != 1 || f.assignees[0] != f.guest {
		t.Errorf("assignees = %v, want the creator", f.assignees)
	}
	if f.created.CreatedBy != f.guest {
		t.Error("CreatedBy not set to the caller")
	}
}

func TestCreateTaskValidatesReferences(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateTaskRequest
	}{
		{name: "foreign category", req: dto.CreateTaskRequest{Title: "x", CategoryIDs: []string{uuid.NewString()}}},
		{name: "non member assignee", req: dto.CreateTaskRequest{Title: "x", AssigneeIDs: []string{uuid.NewString()}}},
		{name: "malformed id", req: dto.CreateTaskRequest{Title: "x", CategoryIDs: []string{"nope"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if _, err := f.svc.CreateTask(ctx, f.owner, f.boardID, &req); !errors.Is(err, services.ErrInvalidInput) {
				t.Errorf("error = %v, want invalid input", err)
			}
		})
	}

	req := dto.CreateTaskRequest{
		Title:       "ok",
		CategoryIDs: []string{f.category.ID.String()},
		AssigneeIDs: []string{f.guest.String(), f.owner.String()},
	}
	if _, err := f.svc.CreateTask(ctx, f.owner, f.boardID, &req); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if len(f.assignees) != 2 || f.assignees[0] != f.guest {
		t.Errorf("assignee order not kept: %v", f.assignees)
	}
}

func TestCreateTaskOnForeignBoard(t *testing.T) {
	f := newTaskFixture()
	_, err := f.svc.CreateTask(context.Background(), uuid.New(), f.boardID, &dto.CreateTaskRequest{Title: "x"})
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestUpdateTaskColumnRejectsUnknownColumn(t *testing.T) {
	f := newTaskFixture()
	_, err := f.svc.UpdateTaskColumn(context.Background(), f.owner, uuid.New(), models.Column("archived"))
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Errorf("error = %v, want invalid input", err)
	}
	if !strings.Contains(err.Error(), "archived") {
		t.Errorf("message %q should name the column", err.Error())
	}
}

func TestDeleteTaskDropsDeliveries(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	resp, err := f.svc.CreateTask(ctx, f.owner, f.boardID, &dto.CreateTaskRequest{Title: "Ripasso"})
	if err != nil {
		t.Fatal(err)
	}
	taskID := uuid.MustParse(resp.ID)

	if err := f.svc.DeleteTask(ctx, f.owner, taskID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if len(f.deliveries.deletedTasks) != 1 || f.deliveries.deletedTasks[0] != taskID {
		t.Errorf("deliveries deleted for %v, want [%s]", f.deliveries.deletedTasks, taskID)
	}
	if len(f.deletedIDs) != 1 || f.deletedIDs[0] != taskID {
		t.Errorf("task rows deleted = %v", f.deletedIDs)
	}
}
