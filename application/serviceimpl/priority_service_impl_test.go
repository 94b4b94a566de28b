package serviceimpl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/services"
)

func TestListPrioritiesSeedsDefaults(t *testing.T) {
	repo := newFakePriorityRepo()
	svc := NewPriorityService(repo)
	user := uuid.New()

	got, err := svc.ListPriorities(context.Background(), user)
	if err != nil {
		t.Fatalf("ListPriorities() error = %v", err)
	}
	want := []models.Priority{models.PriorityBassa, models.PriorityMedia, models.PriorityAlta, models.PriorityUrgente}
	if len(got) != len(want) {
		t.Fatalf("configs = %d, want %d", len(got), len(want))
	}
	for i, p := range want {
		if got[i].Priority != p {
			t.Errorf("config %d = %s, want %s", i, got[i].Priority, p)
		}
	}
}

func TestReplaceReminders(t *testing.T) {
	user := uuid.New()
	cfg := &models.PriorityConfig{ID: uuid.New(), UserID: user, Priority: models.PriorityUrgente}
	repo := newFakePriorityRepo(cfg)
	svc := NewPriorityService(repo)
	ctx := context.Background()

	req := &dto.ReplaceRemindersRequest{Reminders: []dto.ReminderInput{
		{Value: 1, Unit: models.UnitDays},
		{Value: 2, Unit: models.UnitHours},
	}}
	resp, err := svc.ReplaceReminders(ctx, user, cfg.ID, req)
	if err != nil {
		t.Fatalf("ReplaceReminders() error = %v", err)
	}
	if len(resp.Reminders) != 2 || resp.Reminders[0].Unit != models.UnitDays || resp.Reminders[1].Value != 2 {
		t.Errorf("reminders = %+v", resp.Reminders)
	}
	for i, r := range repo.replaced[cfg.ID] {
		if r.Position != i {
			t.Errorf("reminder %d position = %d", i, r.Position)
		}
	}

	tooMany := &dto.ReplaceRemindersRequest{Reminders: make([]dto.ReminderInput, 4)}
	for i := range tooMany.Reminders {
		tooMany.Reminders[i] = dto.ReminderInput{Value: i + 1, Unit: models.UnitHours}
	}
	if _, err := svc.ReplaceReminders(ctx, user, cfg.ID, tooMany); !errors.Is(err, services.ErrInvalidInput) {
		t.Errorf("four reminders error = %v, want invalid input", err)
	}
	if len(repo.replaced[cfg.ID]) != 2 {
		t.Error("rejected request must not touch the stored set")
	}

	bad := &dto.ReplaceRemindersRequest{Reminders: []dto.ReminderInput{{Value: 0, Unit: models.UnitHours}}}
	if _, err := svc.ReplaceReminders(ctx, user, cfg.ID, bad); !errors.Is(err, services.ErrInvalidInput) {
		t.Errorf("zero value error = %v, want invalid input", err)
	}

	if _, err := svc.ReplaceReminders(ctx, uuid.New(), cfg.ID, req); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("foreign config error = %v, want not found", err)
	}

	empty := &dto.ReplaceRemindersRequest{}
	resp, err = svc.ReplaceReminders(ctx, user, cfg.ID, empty)
	if err != nil {
		t.Fatalf("clearing reminders error = %v", err)
	}
	if len(resp.Reminders) != 0 {
		t.Errorf("reminders after clear = %d", len(resp.Reminders))
	}
}
