package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
)

type reminderFixture struct {
	now       time.Time
	user      models.User
	task      models.Task
	config    *models.PriorityConfig
	tasks     *fakeTaskRepo
	priority  *fakePriorityRepo
	delivery  *fakeDeliveryRepo
	publisher *fakePublisher
}

// task due in 90 minutes with reminders 2 hours and 1 day before (fired) and 30 minutes before (pending)
func newReminderFixture() *reminderFixture {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	due := now.Add(90 * time.Minute)
	user := models.User{ID: uuid.New(), Username: "mario"}
	task := models.Task{
		ID:        uuid.New(),
		BoardID:   uuid.New(),
		Title:     "Consegna tesi",
		Priority:  models.PriorityAlta,
		ColumnID:  models.ColumnTodo,
		DueDate:   &due,
		Assignees: []models.User{user},
	}
	config := &models.PriorityConfig{
		ID:       uuid.New(),
		UserID:   user.ID,
		Priority: models.PriorityAlta,
		Reminders: []models.Reminder{
			{ID: uuid.New(), Value: 2, Unit: models.UnitHours},
			{ID: uuid.New(), Value: 1, Unit: models.UnitDays},
			{ID: uuid.New(), Value: 30, Unit: models.UnitMinutes},
		},
	}

	f := &reminderFixture{
		now:       now,
		user:      user,
		task:      task,
		config:    config,
		priority:  newFakePriorityRepo(config),
		delivery:  newFakeDeliveryRepo(),
		publisher: &fakePublisher{},
	}
	f.tasks = &fakeTaskRepo{
		ListDueBetweenFunc: func(_ context.Context, from, to time.Time) ([]models.Task, error) {
			return []models.Task{f.task}, nil
		},
	}
	return f
}

func (f *reminderFixture) service() *ReminderServiceImpl {
	return NewReminderService(f.tasks, f.priority, f.delivery, f.publisher, nil, 7*24*time.Hour).(*ReminderServiceImpl)
}

func TestDispatchDueFiresPassedReminders(t *testing.T) {
	f := newReminderFixture()
	svc := f.service()

	result, err := svc.DispatchDue(context.Background(), f.now)
	if err != nil {
		t.Fatalf("DispatchDue() error = %v", err)
	}
	if result.Scanned != 1 || result.Fired != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want scanned 1 fired 2 failed 0", result)
	}
	if len(f.publisher.events) != 2 {
		t.Fatalf("published = %d, want 2", len(f.publisher.events))
	}

	ev := f.publisher.events[0]
	if ev.TaskID != f.task.ID.String() || ev.UserID != f.user.ID.String() || ev.Username != "mario" {
		t.Errorf("event = %+v", ev)
	}
	if ev.Offset != "2 hours" {
		t.Errorf("Offset = %q, want %q", ev.Offset, "2 hours")
	}
}

func TestDispatchDueNeverFiresTwice(t *testing.T) {
	f := newReminderFixture()
	svc := f.service()
	ctx := context.Background()

	if _, err := svc.DispatchDue(ctx, f.now); err != nil {
		t.Fatal(err)
	}
	result, err := svc.DispatchDue(ctx, f.now.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if result.Fired != 0 {
		t.Errorf("second tick fired %d, want 0", result.Fired)
	}

	// the 30 minute reminder becomes due one hour later
	result, err = svc.DispatchDue(ctx, f.now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if result.Fired != 1 {
		t.Errorf("later tick fired %d, want 1", result.Fired)
	}
	if len(f.publisher.events) != 3 {
		t.Errorf("published total = %d, want 3", len(f.publisher.events))
	}
}

func TestDispatchDueSurvivesUnchangedSave(t *testing.T) {
	f := newReminderFixture()
	svc := f.service()
	priorities := NewPriorityService(f.priority)
	ctx := context.Background()

	first, err := svc.DispatchDue(ctx, f.now)
	if err != nil {
		t.Fatal(err)
	}
	if first.Fired != 2 {
		t.Fatalf("first tick fired %d, want 2", first.Fired)
	}

	// same set saved again, the rows come back with new ids
	same := &dto.ReplaceRemindersRequest{}
	for _, r := range f.config.Reminders {
		same.Reminders = append(same.Reminders, dto.ReminderInput{Value: r.Value, Unit: r.Unit})
	}
	if _, err := priorities.ReplaceReminders(ctx, f.user.ID, f.config.ID, same); err != nil {
		t.Fatalf("ReplaceReminders() error = %v", err)
	}

	again, err := svc.DispatchDue(ctx, f.now)
	if err != nil {
		t.Fatal(err)
	}
	if again.Fired != 0 {
		t.Errorf("after unchanged save fired %d, want 0", again.Fired)
	}

	// a new due date moves the fire times, so the reminders are armed again
	later := f.task.DueDate.Add(10 * time.Minute)
	f.task.DueDate = &later
	moved, err := svc.DispatchDue(ctx, f.now)
	if err != nil {
		t.Fatal(err)
	}
	if moved.Fired != 2 {
		t.Errorf("after due date change fired %d, want 2", moved.Fired)
	}
}

func TestDispatchDuePublishFailureIsRetried(t *testing.T) {
	f := newReminderFixture()
	f.publisher.err = errors.New("nats unavailable")
	svc := f.service()
	ctx := context.Background()

	result, err := svc.DispatchDue(ctx, f.now)
	if err != nil {
		t.Fatalf("DispatchDue() error = %v", err)
	}
	if result.Failed != 2 || result.Fired != 0 {
		t.Errorf("result = %+v, want 2 failed", result)
	}

	f.publisher.err = nil
	result, err = svc.DispatchDue(ctx, f.now)
	if err != nil {
		t.Fatal(err)
	}
	if result.Fired != 2 {
		t.Errorf("retry fired %d, want 2", result.Fired)
	}
}

func TestDispatchDueSkipsUsersWithoutConfig(t *testing.T) {
	f := newReminderFixture()
	stranger := models.User{ID: uuid.New(), Username: "luigi"}
	f.task.Assignees = []models.User{stranger, stranger}
	svc := f.service()

	result, err := svc.DispatchDue(context.Background(), f.now)
	if err != nil {
		t.Fatal(err)
	}
	if result.Fired != 0 {
		t.Errorf("fired %d for a user without reminders", result.Fired)
	}
	if f.priority.lookups != 1 {
		t.Errorf("config lookups = %d, want 1 per user and priority", f.priority.lookups)
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		value int
		unit  models.ReminderUnit
		want  string
	}{
		{1, models.UnitHours, "1 hour"},
		{3, models.UnitDays, "3 days"},
		{15, models.UnitMinutes, "15 minutes"},
		{2, "weeks", "2 weeks"},
	}
	for _, tt := range tests {
		if got := FormatOffset(tt.value, tt.unit); got != tt.want {
			t.Errorf("FormatOffset(%d, %s) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}
