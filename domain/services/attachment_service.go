package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
)

// UploadInput one file of a multipart request
type UploadInput struct {
	FileName string
	MimeType string
	Size     int64
	Reader   io.Reader
}

type AttachmentService interface {
	ListAttachments(ctx context.Context, userID, taskID uuid.UUID) ([]dto.AttachmentResponse, error)
	// UploadAttachment blob first, then the row; the blob is removed if the row fails
	UploadAttachment(ctx context.Context, userID, taskID uuid.UUID, in *UploadInput) (*dto.AttachmentResponse, error)
	GetSignedURL(ctx context.Context, userID, attachmentID uuid.UUID, expiry time.Duration) (*dto.SignedURLResponse, error)
	// DeleteAttachment blob first, then the row
	DeleteAttachment(ctx context.Context, userID, attachmentID uuid.UUID) error
}
