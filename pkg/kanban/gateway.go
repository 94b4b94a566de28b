package kanban

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
)

// Gateway persistence calls the controller needs for one board
type Gateway interface {
	ListTasks(ctx context.Context, boardID string) ([]dto.TaskResponse, error)
	CreateTask(ctx context.Context, boardID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, taskID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	UpdateColumn(ctx context.Context, taskID string, column models.Column) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, taskID string) error

	AddComment(ctx context.Context, taskID, text string) (*dto.CommentResponse, error)
	UploadAttachment(ctx context.Context, taskID string, file PendingFile) (*dto.AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, attachmentID string) error
}

// PendingFile an attachment selected in the dialog but not uploaded yet
type PendingFile struct {
	Name     string
	MimeType string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// FileFromPath pending file backed by a local path, opened only on save
func FileFromPath(path string) (PendingFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return PendingFile{}, err
	}
	if info.IsDir() {
		return PendingFile{}, fmt.Errorf("%s is a directory", path)
	}

	name := filepath.Base(path)
	return PendingFile{
		Name:     name,
		MimeType: mime.TypeByExtension(filepath.Ext(name)),
		Size:     info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}
