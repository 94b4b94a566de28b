package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/services"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
}

func newTestBoardService(boards *fakeBoardRepo, attachments *fakeAttachmentRepo, storage *fakeStorage, cache *BoardCache) *BoardServiceImpl {
	svc := NewBoardService(boards, &fakeTaskRepo{}, newFakeUserRepo(), attachments, storage, cache, time.UTC).(*BoardServiceImpl)
	svc.now = fixedNow
	return svc
}

func TestCreateBoardSeedsDefaultCategories(t *testing.T) {
	owner := uuid.New()
	var stored *models.Board
	var storedCategories []models.Category

	boards := &fakeBoardRepo{
		CreateFunc: func(_ context.Context, board *models.Board, categories []models.Category) error {
			stored = board
			storedCategories = categories
			board.Categories = categories
			return nil
		},
		IsMemberFunc: ownerOf(owner),
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*models.Board, error) {
			return stored, nil
		},
	}

	svc := newTestBoardService(boards, &fakeAttachmentRepo{}, &fakeStorage{}, nil)
	resp, err := svc.CreateBoard(context.Background(), owner, &dto.CreateBoardRequest{Title: "  Università  "})
	if err != nil {
		t.Fatalf("CreateBoard() error = %v", err)
	}

	if resp.Title != "Università" {
		t.Errorf("Title = %q, want trimmed", resp.Title)
	}
	if resp.Theme != models.ThemeBlue || resp.Icon != models.IconOther {
		t.Errorf("defaults = %s/%s, want blue/other", resp.Theme, resp.Icon)
	}
	if resp.OwnerID != owner.String() {
		t.Errorf("OwnerID = %s", resp.OwnerID)
	}

	want := []struct{ name, color string }{
		{"Da fare", "blue"},
		{"In corso", "orange"},
		{"Completato", "green"},
	}
	if len(storedCategories) != len(want) {
		t.Fatalf("categories = %d, want %d", len(storedCategories), len(want))
	}
	for i, w := range want {
		c := storedCategories[i]
		if c.Name != w.name || c.Color != w.color {
			t.Errorf("category %d = %s/%s, want %s/%s", i, c.Name, c.Color, w.name, w.color)
		}
		if c.BoardID != stored.ID {
			t.Errorf("category %d not owned by the new board", i)
		}
		if i > 0 && !c.CreatedAt.After(storedCategories[i-1].CreatedAt) {
			t.Errorf("category %d created_at does not keep the seeded order", i)
		}
	}
}

func TestListBoardsMergesAndComputesStats(t *testing.T) {
	user := uuid.New()
	shared := models.Board{ID: uuid.New(), Title: "Shared", Theme: models.ThemeGreen}
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	owned := models.Board{
		ID:    uuid.New(),
		Title: "Mine",
		Tasks: []models.Task{
			{ID: uuid.New(), ColumnID: models.ColumnDone, DueDate: &due},
			{ID: uuid.New(), ColumnID: models.ColumnTodo, DueDate: &due},
		},
	}
	guestOnly := models.Board{ID: uuid.New(), Title: "Theirs"}

	boards := &fakeBoardRepo{
		ListOwnedFunc: func(context.Context, uuid.UUID) ([]models.Board, error) {
			return []models.Board{owned, shared}, nil
		},
		ListGuestFunc: func(context.Context, uuid.UUID) ([]models.Board, error) {
			return []models.Board{shared, guestOnly}, nil
		},
	}

	svc := newTestBoardService(boards, &fakeAttachmentRepo{}, &fakeStorage{}, nil)
	got, err := svc.ListBoards(context.Background(), user)
	if err != nil {
		t.Fatalf("ListBoards() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("boards = %d, want 3", len(got))
	}
	wantOrder := []string{"Mine", "Shared", "Theirs"}
	for i, title := range wantOrder {
		if got[i].Title != title {
			t.Errorf("board %d = %s, want %s", i, got[i].Title, title)
		}
	}
	wantStats := dto.BoardStats{Deadlines: 1, InProgress: 0, Completed: 1}
	if got[0].Stats != wantStats {
		t.Errorf("stats = %+v, want %+v", got[0].Stats, wantStats)
	}
	if got[1].ThemeClass == "" {
		t.Error("theme class not resolved")
	}
}

func TestListBoardsPropagatesRepositoryError(t *testing.T) {
	boom := errors.New("db down")
	boards := &fakeBoardRepo{
		ListOwnedFunc: func(context.Context, uuid.UUID) ([]models.Board, error) { return nil, boom },
	}
	svc := newTestBoardService(boards, &fakeAttachmentRepo{}, &fakeStorage{}, nil)
	if _, err := svc.ListBoards(context.Background(), uuid.New()); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestGetBoardByIDHidesForeignBoards(t *testing.T) {
	owner, stranger := uuid.New(), uuid.New()
	boards := &fakeBoardRepo{IsMemberFunc: ownerOf(owner)}
	svc := newTestBoardService(boards, &fakeAttachmentRepo{}, &fakeStorage{}, nil)

	resp, err := svc.GetBoardByID(context.Background(), stranger, uuid.New())
	if err != nil || resp != nil {
		t.Errorf("GetBoardByID() = %v, %v, want nil, nil", resp, err)
	}
}

func TestDeleteBoardRemovesBlobsFirst(t *testing.T) {
	owner := uuid.New()
	boardID := uuid.New()
	var order []string

	boards := &fakeBoardRepo{
		IsMemberFunc:  ownerOf(owner),
		MemberIDsFunc: func(context.Context, uuid.UUID) ([]uuid.UUID, error) { return []uuid.UUID{owner}, nil },
		DeleteFunc: func(context.Context, uuid.UUID) error {
			order = append(order, "rows")
			return nil
		},
	}
	attachments := &fakeAttachmentRepo{
		ListByBoardFunc: func(context.Context, uuid.UUID) ([]models.Attachment, error) {
			return []models.Attachment{{StoragePath: "t1/a.pdf"}, {StoragePath: "t2/b.png"}}, nil
		},
	}
	storage := &fakeStorage{
		DeleteFilesFunc: func(context.Context, []string) error {
			order = append(order, "blobs")
			return nil
		},
	}
	cache := newFakeCache()
	cache.values[boardsKey(owner)] = true

	svc := newTestBoardService(boards, attachments, storage, NewBoardCache(cache, boards, time.Minute))
	if err := svc.DeleteBoard(context.Background(), owner, boardID); err != nil {
		t.Fatalf("DeleteBoard() error = %v", err)
	}

	if len(order) != 2 || order[0] != "blobs" || order[1] != "rows" {
		t.Errorf("order = %v, want [blobs rows]", order)
	}
	if len(storage.deleted) != 2 {
		t.Errorf("deleted blobs = %v", storage.deleted)
	}
	if len(cache.dels) != 1 || cache.dels[0] != boardsKey(owner) {
		t.Errorf("invalidated keys = %v", cache.dels)
	}
}

func TestDeleteBoardKeepsRowsWhenStorageFails(t *testing.T) {
	owner := uuid.New()
	deleted := false
	boards := &fakeBoardRepo{
		IsMemberFunc: ownerOf(owner),
		DeleteFunc: func(context.Context, uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	attachments := &fakeAttachmentRepo{
		ListByBoardFunc: func(context.Context, uuid.UUID) ([]models.Attachment, error) {
			return []models.Attachment{{StoragePath: "t1/a.pdf"}}, nil
		},
	}
	storage := &fakeStorage{
		DeleteFilesFunc: func(context.Context, []string) error { return errors.New("bucket unreachable") },
	}

	svc := newTestBoardService(boards, attachments, storage, nil)
	if err := svc.DeleteBoard(context.Background(), owner, uuid.New()); err == nil {
		t.Fatal("DeleteBoard() should fail when blobs cannot be removed")
	}
	if deleted {
		t.Error("board rows deleted despite storage failure")
	}
}

func TestOwnerOnlyOperations(t *testing.T) {
	owner, guest := uuid.New(), uuid.New()
	boards := &fakeBoardRepo{
		IsMemberFunc: func(_ context.Context, _ uuid.UUID, userID uuid.UUID) (bool, bool, error) {
			return userID == owner, userID == guest, nil
		},
	}
	svc := newTestBoardService(boards, &fakeAttachmentRepo{}, &fakeStorage{}, nil)
	ctx := context.Background()

	if err := svc.DeleteBoard(ctx, guest, uuid.New()); !errors.Is(err, services.ErrForbidden) {
		t.Errorf("guest DeleteBoard error = %v, want forbidden", err)
	}
	title := "x"
	if _, err := svc.UpdateBoard(ctx, guest, uuid.New(), &dto.UpdateBoardRequest{Title: &title}); !errors.Is(err, services.ErrForbidden) {
		t.Errorf("guest UpdateBoard error = %v, want forbidden", err)
	}
	if err := svc.RemoveGuest(ctx, guest, uuid.New(), guest); err != nil {
		t.Errorf("guest leaving the board error = %v", err)
	}
	if err := svc.RemoveGuest(ctx, guest, uuid.New(), uuid.New()); !errors.Is(err, services.ErrForbidden) {
		t.Errorf("guest removing someone else error = %v, want forbidden", err)
	}
}

func TestKanbanViewFilters(t *testing.T) {
	user := uuid.New()
	boardID := uuid.New()
	tasks := &fakeTaskRepo{
		ListByBoardFunc: func(context.Context, uuid.UUID) ([]models.Task, error) {
			return []models.Task{
				{ID: uuid.New(), Title: "Exam prep", ColumnID: models.ColumnTodo, Priority: models.PriorityAlta},
				{ID: uuid.New(), Title: "Laundry", ColumnID: models.ColumnDone, Priority: models.PriorityBassa},
			}, nil
		},
	}
	boards := &fakeBoardRepo{IsMemberFunc: ownerOf(user)}
	svc := NewBoardService(boards, tasks, newFakeUserRepo(), &fakeAttachmentRepo{}, nil, nil, time.UTC)

	resp, err := svc.KanbanView(context.Background(), user, boardID, &dto.KanbanQuery{Search: "exam"})
	if err != nil {
		t.Fatalf("KanbanView() error = %v", err)
	}
	if resp.Total != 2 || resp.Visible != 1 {
		t.Errorf("Total/Visible = %d/%d, want 2/1", resp.Total, resp.Visible)
	}
	if len(resp.Columns[0].Tasks) != 1 || resp.Columns[0].Tasks[0].Title != "Exam prep" {
		t.Errorf("todo column = %+v", resp.Columns[0].Tasks)
	}

	resp, err = svc.KanbanView(context.Background(), user, boardID, &dto.KanbanQuery{Search: "zzz"})
	if err != nil {
		t.Fatalf("KanbanView() error = %v", err)
	}
	if resp.Visible != 0 {
		t.Errorf("Visible = %d, want 0", resp.Visible)
	}
}
