// Package kanban holds the client side state of one board: the task set, the
// active filters, drag and drop with optimistic updates, and the task dialog
// whose pending comments and attachments are committed together on save.
package kanban

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/pkg/boardview"
	"tasktrack/pkg/logger"
)

var (
	ErrUnknownTask     = errors.New("task is not on this board")
	ErrInvalidColumn   = errors.New("invalid column")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrNotDragging     = errors.New("no task is being dragged")
)

// Phase what the task list currently shows relative to the server
type Phase int

const (
	// PhaseClean tasks match the last fetch or confirmed write
	PhaseClean Phase = iota
	// PhaseOptimistic a column change is shown before the server confirmed it
	PhaseOptimistic
	// PhaseReloading the optimistic change failed and a full fetch is running
	PhaseReloading
)

func (p Phase) String() string {
	switch p {
	case PhaseClean:
		return "clean"
	case PhaseOptimistic:
		return "optimistic"
	case PhaseReloading:
		return "reloading"
	}
	return "unknown"
}

// Controller view state of one board. Methods are safe for concurrent use;
// the open Dialog belongs to the caller until Save or CloseDialog.
type Controller struct {
	boardID string
	gw      Gateway

	mu       sync.Mutex
	tasks    []dto.TaskResponse
	filter   boardview.Filter
	dragging string
	dialog   *Dialog

	// moves waiting on the server, and those of them refetching after a failure
	pending   int
	reloading int
}

func NewController(boardID string, gw Gateway) *Controller {
	return &Controller{boardID: boardID, gw: gw}
}

func (c *Controller) BoardID() string {
	return c.boardID
}

// Load replaces the task set with a fresh fetch; on error the current set is kept
func (c *Controller) Load(ctx context.Context) error {
	tasks, err := c.gw.ListTasks(ctx, c.boardID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load tasks", "board_id", c.boardID, "error", err)
		return fmt.Errorf("load board %s: %w", c.boardID, err)
	}

	c.mu.Lock()
	c.tasks = tasks
	c.mu.Unlock()
	return nil
}

// Tasks every task of the board, unfiltered
func (c *Controller) Tasks() []dto.TaskResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneTasks(c.tasks)
}

func (c *Controller) Task(id string) (dto.TaskResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		return c.tasks[i], true
	}
	return dto.TaskResponse{}, false
}

// Phase clean only once every in-flight move has settled
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.reloading > 0:
		return PhaseReloading
	case c.pending > 0:
		return PhaseOptimistic
	}
	return PhaseClean
}

// ========== Filters ==========

func (c *Controller) Filter() boardview.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Controller) SetFilter(f boardview.Filter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

func (c *Controller) SetSearch(search string) {
	c.mu.Lock()
	c.filter.Search = search
	c.mu.Unlock()
}

// TogglePriority adds the level to the filter or removes it when present
func (c *Controller) TogglePriority(p models.Priority) {
	c.mu.Lock()
	c.filter.Priorities = toggle(c.filter.Priorities, p)
	c.mu.Unlock()
}

func (c *Controller) ToggleCategory(categoryID string) {
	c.mu.Lock()
	c.filter.Categories = toggle(c.filter.Categories, categoryID)
	c.mu.Unlock()
}

func (c *Controller) ClearFilters() {
	c.mu.Lock()
	c.filter = boardview.Filter{}
	c.mu.Unlock()
}

// View filtered tasks grouped into the three sorted columns
func (c *Controller) View() *dto.KanbanResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return boardview.BuildKanban(c.boardID, c.tasks, c.filter)
}

// Column filtered and sorted tasks of one column
func (c *Controller) Column(column models.Column) []dto.TaskResponse {
	for _, col := range c.View().Columns {
		if col.ID == column {
			return col.Tasks
		}
	}
	return nil
}

// ========== Drag and drop ==========

func (c *Controller) BeginDrag(taskID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(taskID) < 0 {
		return ErrUnknownTask
	}
	c.dragging = taskID
	return nil
}

func (c *Controller) Dragging() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

func (c *Controller) CancelDrag() {
	c.mu.Lock()
	c.dragging = ""
	c.mu.Unlock()
}

// Drop moves the dragged task into column
func (c *Controller) Drop(ctx context.Context, column models.Column) error {
	c.mu.Lock()
	taskID := c.dragging
	c.dragging = ""
	c.mu.Unlock()

	if taskID == "" {
		return ErrNotDragging
	}
	return c.Move(ctx, taskID, column)
}

// Move rewrites the column locally, then persists it. When the write fails the
// local state is thrown away and refetched; if that fetch fails too the task
// goes back to what it was before this move. Other moves in flight keep their
// own state. No retry.
func (c *Controller) Move(ctx context.Context, taskID string, column models.Column) error {
	if !column.Valid() {
		return ErrInvalidColumn
	}

	c.mu.Lock()
	i := c.indexOf(taskID)
	if i < 0 {
		c.mu.Unlock()
		return ErrUnknownTask
	}
	if c.tasks[i].ColumnID == column {
		c.mu.Unlock()
		return nil
	}
	before := c.tasks[i]
	c.tasks[i].ColumnID = column
	c.pending++
	c.mu.Unlock()

	updated, err := c.gw.UpdateColumn(ctx, taskID, column)
	if err == nil {
		c.mu.Lock()
		if updated != nil {
			if i := c.indexOf(taskID); i >= 0 {
				c.tasks[i] = *updated
			}
		}
		c.pending--
		c.mu.Unlock()
		return nil
	}

	logger.ErrorContext(ctx, "Failed to move task, reloading board",
		"board_id", c.boardID, "task_id", taskID, "column", column, "error", err)

	c.mu.Lock()
	c.reloading++
	c.mu.Unlock()

	fresh, reloadErr := c.gw.ListTasks(ctx, c.boardID)

	c.mu.Lock()
	if reloadErr != nil {
		logger.ErrorContext(ctx, "Reload after failed move failed", "board_id", c.boardID, "error", reloadErr)
		if i := c.indexOf(taskID); i >= 0 {
			c.tasks[i] = before
		}
	} else {
		c.tasks = fresh
	}
	c.reloading--
	c.pending--
	c.mu.Unlock()

	return fmt.Errorf("move task %s to %s: %w", taskID, column, err)
}

// ========== Dialog ==========

// OpenCreate starts a new task dialog prefilled with column
func (c *Controller) OpenCreate(column models.Column) *Dialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = newCreateDialog(column)
	return c.dialog
}

func (c *Controller) OpenEdit(taskID string) (*Dialog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(taskID)
	if i < 0 {
		return nil, ErrUnknownTask
	}
	c.dialog = newEditDialog(c.tasks[i])
	return c.dialog, nil
}

// Dialog the open dialog or nil
func (c *Controller) Dialog() *Dialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog
}

// CloseDialog discards the dialog and everything pending in it
func (c *Controller) CloseDialog() {
	c.mu.Lock()
	c.dialog = nil
	c.mu.Unlock()
}

// Save persists the dialog. For an existing task the pending comments, uploads
// and attachment deletions are sent concurrently after the task update and all
// are awaited. On any failure the dialog stays open with its pending state so
// the caller can retry. On success the dialog closes; callers reload afterwards.
func (c *Controller) Save(ctx context.Context) (*dto.TaskResponse, error) {
	d := c.Dialog()
	if d == nil {
		return nil, ErrNoDialog
	}
	if err := d.Form.validate(); err != nil {
		return nil, err
	}

	if d.Mode == ModeCreate {
		task, err := c.gw.CreateTask(ctx, c.boardID, d.Form.createRequest())
		if err != nil {
			logger.ErrorContext(ctx, "Failed to create task", "board_id", c.boardID, "error", err)
			return nil, fmt.Errorf("create task: %w", err)
		}
		c.commit(d, *task)
		return task, nil
	}

	task, err := c.gw.UpdateTask(ctx, d.task.ID, d.Form.updateRequest())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", d.task.ID, "error", err)
		return nil, fmt.Errorf("update task: %w", err)
	}

	if err := c.flushPending(ctx, d); err != nil {
		logger.ErrorContext(ctx, "Failed to save pending items", "task_id", d.task.ID, "error", err)
		return nil, fmt.Errorf("save task %s: %w", d.task.ID, err)
	}

	task.CommentCount = d.task.CommentCount + len(d.comments)
	task.AttachmentCount = d.task.AttachmentCount + len(d.files) - len(d.deletions)
	if task.AttachmentCount < 0 {
		task.AttachmentCount = 0
	}
	c.commit(d, *task)
	return task, nil
}

// flushPending fan-out without cancellation: every call runs, the first error is reported
func (c *Controller) flushPending(ctx context.Context, d *Dialog) error {
	taskID := d.task.ID
	var g errgroup.Group

	for _, text := range d.comments {
		text := text
		g.Go(func() error {
			_, err := c.gw.AddComment(ctx, taskID, text)
			return err
		})
	}
	for _, file := range d.files {
		file := file
		g.Go(func() error {
			_, err := c.gw.UploadAttachment(ctx, taskID, file)
			return err
		})
	}
	for _, id := range d.deletions {
		id := id
		g.Go(func() error {
			return c.gw.DeleteAttachment(ctx, id)
		})
	}
	return g.Wait()
}

// Delete first call arms the confirmation and returns false, the second deletes
// the task (comments and attachments go with it) and closes the dialog
func (c *Controller) Delete(ctx context.Context) (bool, error) {
	d := c.Dialog()
	if d == nil {
		return false, ErrNoDialog
	}
	if d.Mode != ModeEdit {
		return false, ErrTaskNotSaved
	}
	if !d.deleteArmed {
		d.deleteArmed = true
		return false, nil
	}

	if err := c.gw.DeleteTask(ctx, d.task.ID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", d.task.ID, "error", err)
		return false, fmt.Errorf("delete task: %w", err)
	}

	c.mu.Lock()
	if i := c.indexOf(d.task.ID); i >= 0 {
		c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)
	}
	if c.dialog == d {
		c.dialog = nil
	}
	c.mu.Unlock()
	return true, nil
}

// commit stores the saved task locally and closes d
func (c *Controller) commit(d *Dialog, task dto.TaskResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(task.ID); i >= 0 {
		c.tasks[i] = task
	} else {
		c.tasks = append(c.tasks, task)
	}
	if c.dialog == d {
		c.dialog = nil
	}
}

func (c *Controller) indexOf(taskID string) int {
	for i := range c.tasks {
		if c.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []dto.TaskResponse) []dto.TaskResponse {
	if tasks == nil {
		return nil
	}
	out := make([]dto.TaskResponse, len(tasks))
	copy(out, tasks)
	return out
}

func toggle[T comparable](list []T, v T) []T {
	for i, item := range list {
		if item == v {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, v)
}
