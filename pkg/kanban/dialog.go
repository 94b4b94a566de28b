package kanban

import (
	"errors"
	"strings"
	"time"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
)

var (
	ErrNoDialog = errors.New("no task dialog is open")
	// ErrTaskNotSaved comments, attachments and deletion need a persisted task
	ErrTaskNotSaved = errors.New("save the task first")
	ErrEmptyTitle   = errors.New("title is required")
	ErrEmptyComment = errors.New("comment is empty")
)

type DialogMode int

const (
	ModeCreate DialogMode = iota
	ModeEdit
)

// TaskForm fields of the create/edit dialog
type TaskForm struct {
	Title       string
	Description string
	Priority    models.Priority
	ColumnID    models.Column
	DueDate     *time.Time
	CategoryIDs []string
}

func (f *TaskForm) validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrEmptyTitle
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return ErrInvalidPriority
	}
	if f.ColumnID != "" && !f.ColumnID.Valid() {
		return ErrInvalidColumn
	}
	return nil
}

func (f *TaskForm) createRequest() *dto.CreateTaskRequest {
	return &dto.CreateTaskRequest{
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Priority:    f.Priority,
		ColumnID:    f.ColumnID,
		DueDate:     f.DueDate,
		CategoryIDs: append([]string(nil), f.CategoryIDs...),
	}
}

// updateRequest every field is sent; categories are replaced wholesale
func (f *TaskForm) updateRequest() *dto.UpdateTaskRequest {
	title := strings.TrimSpace(f.Title)
	description := f.Description
	categories := append([]string{}, f.CategoryIDs...)

	req := &dto.UpdateTaskRequest{
		Title:        &title,
		Description:  &description,
		DueDate:      f.DueDate,
		ClearDueDate: f.DueDate == nil,
		CategoryIDs:  &categories,
	}
	if f.Priority != "" {
		priority := f.Priority
		req.Priority = &priority
	}
	if f.ColumnID != "" {
		column := f.ColumnID
		req.ColumnID = &column
	}
	return req
}

// Dialog one create-or-edit session. Comments, files and attachment deletions
// stay pending until Controller.Save commits them with the task.
type Dialog struct {
	Mode DialogMode
	Form TaskForm

	task        *dto.TaskResponse
	comments    []string
	files       []PendingFile
	deletions   []string
	deleteArmed bool
}

func newCreateDialog(column models.Column) *Dialog {
	if !column.Valid() {
		column = models.ColumnTodo
	}
	return &Dialog{
		Mode: ModeCreate,
		Form: TaskForm{Priority: models.PriorityMedia, ColumnID: column},
	}
}

func newEditDialog(task dto.TaskResponse) *Dialog {
	categories := make([]string, len(task.Categories))
	for i, c := range task.Categories {
		categories[i] = c.ID
	}
	return &Dialog{
		Mode: ModeEdit,
		Form: TaskForm{
			Title:       task.Title,
			Description: task.Description,
			Priority:    task.Priority,
			ColumnID:    task.ColumnID,
			DueDate:     task.DueDate,
			CategoryIDs: categories,
		},
		task: &task,
	}
}

// Task the task as it was when the dialog opened, nil in create mode
func (d *Dialog) Task() *dto.TaskResponse {
	return d.task
}

func (d *Dialog) AddComment(text string) error {
	if d.Mode != ModeEdit {
		return ErrTaskNotSaved
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyComment
	}
	d.comments = append(d.comments, text)
	return nil
}

func (d *Dialog) AddFile(f PendingFile) error {
	if d.Mode != ModeEdit {
		return ErrTaskNotSaved
	}
	d.files = append(d.files, f)
	return nil
}

// MarkForDeletion queues removal of a saved attachment; marking twice is a no-op
func (d *Dialog) MarkForDeletion(attachmentID string) error {
	if d.Mode != ModeEdit {
		return ErrTaskNotSaved
	}
	for _, id := range d.deletions {
		if id == attachmentID {
			return nil
		}
	}
	d.deletions = append(d.deletions, attachmentID)
	return nil
}

func (d *Dialog) UnmarkForDeletion(attachmentID string) {
	for i, id := range d.deletions {
		if id == attachmentID {
			d.deletions = append(d.deletions[:i], d.deletions[i+1:]...)
			return
		}
	}
}

func (d *Dialog) PendingComments() []string {
	return append([]string(nil), d.comments...)
}

func (d *Dialog) PendingFiles() []PendingFile {
	return append([]PendingFile(nil), d.files...)
}

func (d *Dialog) PendingDeletions() []string {
	return append([]string(nil), d.deletions...)
}

// DeleteArmed first delete request seen, the next one executes
func (d *Dialog) DeleteArmed() bool {
	return d.deleteArmed
}

// DisarmDelete backs out of the confirmation state
func (d *Dialog) DisarmDelete() {
	d.deleteArmed = false
}
