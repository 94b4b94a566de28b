package reminders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
)

type fakeGateway struct {
	ListPrioritiesFunc   func(ctx context.Context) ([]dto.PriorityConfigResponse, error)
	ReplaceRemindersFunc func(ctx context.Context, configID string, reminders []dto.ReminderInput) (*dto.PriorityConfigResponse, error)

	mu    sync.Mutex
	calls map[string][]dto.ReminderInput
}

func (f *fakeGateway) ListPriorities(ctx context.Context) ([]dto.PriorityConfigResponse, error) {
	if f.ListPrioritiesFunc != nil {
		return f.ListPrioritiesFunc(ctx)
	}
	return configs(), nil
}

func (f *fakeGateway) ReplaceReminders(ctx context.Context, configID string, reminders []dto.ReminderInput) (*dto.PriorityConfigResponse, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string][]dto.ReminderInput{}
	}
	f.calls[configID] = reminders
	f.mu.Unlock()
	if f.ReplaceRemindersFunc != nil {
		return f.ReplaceRemindersFunc(ctx, configID, reminders)
	}
	return &dto.PriorityConfigResponse{ID: configID}, nil
}

func configs() []dto.PriorityConfigResponse {
	return []dto.PriorityConfigResponse{
		{ID: "p-bassa", Priority: models.PriorityBassa},
		{ID: "p-media", Priority: models.PriorityMedia, Reminders: []dto.ReminderResponse{{ID: "r1", Value: 1, Unit: models.UnitDays}}},
		{ID: "p-alta", Priority: models.PriorityAlta, Reminders: []dto.ReminderResponse{
			{ID: "r2", Value: 2, Unit: models.UnitHours},
			{ID: "r3", Value: 30, Unit: models.UnitMinutes},
		}},
		{ID: "p-urgente", Priority: models.PriorityUrgente, Reminders: []dto.ReminderResponse{
			{ID: "r4", Value: 1, Unit: models.UnitHours},
			{ID: "r5", Value: 15, Unit: models.UnitMinutes},
			{ID: "r6", Value: 5, Unit: models.UnitMinutes},
		}},
	}
}

func loadedEditor(t *testing.T, gw *fakeGateway) *Editor {
	t.Helper()
	e := NewEditor(gw)
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return e
}

func TestHasChanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *Editor)
		want   bool
	}{
		{name: "untouched", mutate: func(e *Editor) {}, want: false},
		{name: "add", mutate: func(e *Editor) { e.Add(models.PriorityBassa, 1, models.UnitDays) }, want: true},
		{name: "remove", mutate: func(e *Editor) { e.Remove(models.PriorityMedia, 0) }, want: true},
		{name: "update", mutate: func(e *Editor) { e.Update(models.PriorityMedia, 0, 2, models.UnitDays) }, want: true},
		{name: "reorder", mutate: func(e *Editor) { e.Move(models.PriorityAlta, 0, 1) }, want: true},
		{
			name: "add then remove",
			mutate: func(e *Editor) {
				e.Add(models.PriorityBassa, 1, models.UnitDays)
				e.Remove(models.PriorityBassa, 0)
			},
			want: false,
		},
		{
			name: "discard",
			mutate: func(e *Editor) {
				e.Add(models.PriorityBassa, 1, models.UnitDays)
				e.Discard()
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := loadedEditor(t, &fakeGateway{})
			tt.mutate(e)
			if got := e.HasChanges(); got != tt.want {
				t.Errorf("HasChanges() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddRespectsCap(t *testing.T) {
	e := loadedEditor(t, &fakeGateway{})
	before := e.Priorities()[3].Reminders

	added, err := e.Add(models.PriorityUrgente, 1, models.UnitDays)
	if err != nil || added {
		t.Fatalf("Add() = %v, %v; want false, nil", added, err)
	}
	after := e.Priorities()[3].Reminders
	if len(after) != len(before) {
		t.Errorf("reminders = %d, want %d", len(after), len(before))
	}
	if e.HasChanges() {
		t.Error("a refused add must not count as a change")
	}
}

func TestAddValidates(t *testing.T) {
	e := loadedEditor(t, &fakeGateway{})
	if _, err := e.Add(models.PriorityBassa, 0, models.UnitDays); err == nil {
		t.Error("zero value accepted")
	}
	if _, err := e.Add(models.PriorityBassa, 1, "weeks"); err == nil {
		t.Error("unknown unit accepted")
	}
	if _, err := e.Add("Critica", 1, models.UnitDays); !errors.Is(err, ErrUnknownPriority) {
		t.Errorf("unknown priority error = %v", err)
	}
}

func TestMove(t *testing.T) {
	e := loadedEditor(t, &fakeGateway{})
	if ok, _ := e.Move(models.PriorityUrgente, 2, 0); !ok {
		t.Fatal("Move() = false")
	}
	got := e.Priorities()[3].Reminders
	want := []string{"r6", "r4", "r5"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if ok, _ := e.Move(models.PriorityUrgente, 0, 3); ok {
		t.Error("out of range move accepted")
	}
}

func TestSaveAllSendsEveryConfig(t *testing.T) {
	gw := &fakeGateway{}
	e := loadedEditor(t, gw)
	fixed := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	e.Add(models.PriorityBassa, 3, models.UnitDays)
	if err := e.SaveAll(context.Background()); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	if len(gw.calls) != 4 {
		t.Errorf("replace calls = %d, want 4", len(gw.calls))
	}
	if got := gw.calls["p-bassa"]; len(got) != 1 || got[0].Value != 3 || got[0].Unit != models.UnitDays {
		t.Errorf("bassa payload = %v", got)
	}
	if got := gw.calls["p-urgente"]; len(got) != 3 {
		t.Errorf("urgente payload = %v", got)
	}
	if e.HasChanges() {
		t.Error("HasChanges() after a successful save")
	}
	if !e.SavedAt().Equal(fixed) {
		t.Errorf("SavedAt() = %v", e.SavedAt())
	}
}

func TestSaveAllFailureKeepsChanges(t *testing.T) {
	gw := &fakeGateway{
		ReplaceRemindersFunc: func(ctx context.Context, configID string, reminders []dto.ReminderInput) (*dto.PriorityConfigResponse, error) {
			if configID == "p-alta" {
				return nil, errors.New("boom")
			}
			return &dto.PriorityConfigResponse{ID: configID}, nil
		},
	}
	e := loadedEditor(t, gw)
	e.Remove(models.PriorityMedia, 0)

	if err := e.SaveAll(context.Background()); err == nil {
		t.Fatal("SaveAll() error = nil")
	}
	if !e.HasChanges() {
		t.Error("HasChanges() = false after a failed save")
	}
	if !e.SavedAt().IsZero() {
		t.Error("SavedAt() set after a failed save")
	}

	// a retry resends every config, including the ones that went through
	gw.calls = nil
	gw.ReplaceRemindersFunc = nil
	if err := e.SaveAll(context.Background()); err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if len(gw.calls) != 4 {
		t.Errorf("retry calls = %d, want 4", len(gw.calls))
	}
	if got, ok := gw.calls["p-media"]; !ok || len(got) != 0 {
		t.Errorf("media payload = %v, want empty set", got)
	}
}

func TestRestoreKeepsSnapshot(t *testing.T) {
	e := loadedEditor(t, &fakeGateway{})
	draft := e.Priorities()
	draft[0].Reminders = append(draft[0].Reminders, dto.ReminderResponse{Value: 1, Unit: models.UnitHours})

	e.Restore(draft)
	if !e.HasChanges() {
		t.Error("restored draft should differ from the snapshot")
	}
	if len(e.Saved()[0].Reminders) != 0 {
		t.Error("snapshot changed")
	}
}
