// Package reminders edits the per-priority reminder lists against the last saved
// snapshot and syncs every config in one concurrent batch.
package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/pkg/logger"
)

var ErrUnknownPriority = errors.New("unknown priority")

// Gateway persistence calls of the editor
type Gateway interface {
	ListPriorities(ctx context.Context) ([]dto.PriorityConfigResponse, error)
	// ReplaceReminders drops every reminder of the config, then stores reminders
	ReplaceReminders(ctx context.Context, configID string, reminders []dto.ReminderInput) (*dto.PriorityConfigResponse, error)
}

// Editor working copy of the priority configs plus the last saved snapshot
type Editor struct {
	gw  Gateway
	now func() time.Time

	mu         sync.Mutex
	priorities []dto.PriorityConfigResponse
	saved      []dto.PriorityConfigResponse
	savedAt    time.Time
}

func NewEditor(gw Gateway) *Editor {
	return &Editor{gw: gw, now: time.Now}
}

// Load fetches the configs; working copy and snapshot start equal
func (e *Editor) Load(ctx context.Context) error {
	configs, err := e.gw.ListPriorities(ctx)
	if err != nil {
		return fmt.Errorf("load priorities: %w", err)
	}

	e.mu.Lock()
	e.saved = clone(configs)
	e.priorities = clone(configs)
	e.mu.Unlock()
	return nil
}

// Restore replaces the working copy with a previously kept draft, keeping the snapshot
func (e *Editor) Restore(draft []dto.PriorityConfigResponse) {
	e.mu.Lock()
	e.priorities = clone(draft)
	e.mu.Unlock()
}

func (e *Editor) Priorities() []dto.PriorityConfigResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.priorities)
}

func (e *Editor) Saved() []dto.PriorityConfigResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.saved)
}

// SavedAt time of the last successful SaveAll, zero before the first one
func (e *Editor) SavedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.savedAt
}

// HasChanges compares the serialised working copy with the snapshot; order matters
func (e *Editor) HasChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !sameJSON(e.priorities, e.saved)
}

// Add appends a reminder; false when the priority already holds the maximum
func (e *Editor) Add(p models.Priority, value int, unit models.ReminderUnit) (bool, error) {
	if err := checkReminder(value, unit); err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.find(p)
	if cfg == nil {
		return false, ErrUnknownPriority
	}
	if len(cfg.Reminders) >= models.MaxRemindersPerPriority {
		return false, nil
	}
	cfg.Reminders = append(cfg.Reminders, dto.ReminderResponse{Value: value, Unit: unit})
	return true, nil
}

// Remove drops the reminder at index; false when index is out of range
func (e *Editor) Remove(p models.Priority, index int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.find(p)
	if cfg == nil {
		return false, ErrUnknownPriority
	}
	if index < 0 || index >= len(cfg.Reminders) {
		return false, nil
	}
	cfg.Reminders = append(cfg.Reminders[:index:index], cfg.Reminders[index+1:]...)
	return true, nil
}

func (e *Editor) Update(p models.Priority, index, value int, unit models.ReminderUnit) (bool, error) {
	if err := checkReminder(value, unit); err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.find(p)
	if cfg == nil {
		return false, ErrUnknownPriority
	}
	if index < 0 || index >= len(cfg.Reminders) {
		return false, nil
	}
	cfg.Reminders[index].Value = value
	cfg.Reminders[index].Unit = unit
	return true, nil
}

// Move reorders one reminder inside its priority
func (e *Editor) Move(p models.Priority, from, to int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.find(p)
	if cfg == nil {
		return false, ErrUnknownPriority
	}
	n := len(cfg.Reminders)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false, nil
	}
	r := cfg.Reminders[from]
	rest := append(cfg.Reminders[:from:from], cfg.Reminders[from+1:]...)
	cfg.Reminders = append(rest[:to:to], append([]dto.ReminderResponse{r}, rest[to:]...)...)
	return true, nil
}

// Discard resets the working copy to the snapshot
func (e *Editor) Discard() {
	e.mu.Lock()
	e.priorities = clone(e.saved)
	e.mu.Unlock()
}

// SaveAll replaces the reminder set of every config concurrently and waits for
// all of them. Only when every call succeeded does the snapshot move to the
// working copy; after a failure the next SaveAll resends every config.
func (e *Editor) SaveAll(ctx context.Context) error {
	working := e.Priorities()

	var g errgroup.Group
	for i := range working {
		cfg := working[i]
		inputs := make([]dto.ReminderInput, len(cfg.Reminders))
		for j, r := range cfg.Reminders {
			inputs[j] = dto.ReminderInput{Value: r.Value, Unit: r.Unit}
		}
		g.Go(func() error {
			if _, err := e.gw.ReplaceReminders(ctx, cfg.ID, inputs); err != nil {
				return fmt.Errorf("priority %s: %w", cfg.Priority, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "Failed to save reminders", "error", err)
		return err
	}

	e.mu.Lock()
	e.saved = working
	e.savedAt = e.now()
	e.mu.Unlock()

	logger.InfoContext(ctx, "Reminders saved", "priorities", len(working))
	return nil
}

func (e *Editor) find(p models.Priority) *dto.PriorityConfigResponse {
	for i := range e.priorities {
		if e.priorities[i].Priority == p {
			return &e.priorities[i]
		}
	}
	return nil
}

func checkReminder(value int, unit models.ReminderUnit) error {
	if value <= 0 {
		return fmt.Errorf("reminder value must be positive, got %d", value)
	}
	if !unit.Valid() {
		return fmt.Errorf("unknown reminder unit %q", unit)
	}
	return nil
}

// clone deep copy; nil and empty reminder lists serialise the same afterwards
func clone(configs []dto.PriorityConfigResponse) []dto.PriorityConfigResponse {
	out := make([]dto.PriorityConfigResponse, len(configs))
	for i, cfg := range configs {
		out[i] = cfg
		out[i].Reminders = append([]dto.ReminderResponse{}, cfg.Reminders...)
	}
	return out
}

func sameJSON(a, b []dto.PriorityConfigResponse) bool {
	ra, errA := json.Marshal(a)
	rb, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(ra) == string(rb)
}
