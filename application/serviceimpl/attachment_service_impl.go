package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/ports"
	"tasktrack/domain/repositories"
	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

// AttachmentSettings upload limits and the default signed URL lifetime
type AttachmentSettings struct {
	MaxUploadSize int64
	SignedURLTTL  time.Duration
}

type AttachmentServiceImpl struct {
	attachmentRepo repositories.AttachmentRepository
	taskRepo       repositories.TaskRepository
	// storage nil when no provider is configured, every call then fails as unavailable
	storage  ports.StoragePort
	cache    *BoardCache
	access   boardAccess
	settings AttachmentSettings
	now      func() time.Time
}

func NewAttachmentService(
	attachmentRepo repositories.AttachmentRepository,
	taskRepo repositories.TaskRepository,
	boardRepo repositories.BoardRepository,
	storage ports.StoragePort,
	cache *BoardCache,
	settings AttachmentSettings,
) services.AttachmentService {
	return &AttachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		taskRepo:       taskRepo,
		storage:        storage,
		cache:          cache,
		access:         boardAccess{boardRepo: boardRepo},
		settings:       settings,
		now:            time.Now,
	}
}

func (s *AttachmentServiceImpl) toResponse(a *models.Attachment) dto.AttachmentResponse {
	var urlFor func(string) string
	if s.storage != nil {
		urlFor = s.storage.GetFileURL
	}
	return *dto.AttachmentToAttachmentResponse(a, urlFor)
}

func (s *AttachmentServiceImpl) ListAttachments(ctx context.Context, userID, taskID uuid.UUID) ([]dto.AttachmentResponse, error) {
	if _, _, err := s.access.task(ctx, s.taskRepo, taskID, userID); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.ListByTask(ctx, taskID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list attachments", "task_id", taskID, "error", err)
		return nil, err
	}

	responses := make([]dto.AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = s.toResponse(&attachments[i])
	}
	return responses, nil
}

func (s *AttachmentServiceImpl) UploadAttachment(ctx context.Context, userID, taskID uuid.UUID, in *services.UploadInput) (*dto.AttachmentResponse, error) {
	if s.storage == nil {
		return nil, errStorageDisabled
	}
	if in == nil || in.Reader == nil || in.FileName == "" {
		return nil, services.NewError(services.ErrInvalidInput, "file is required")
	}
	if s.settings.MaxUploadSize > 0 && in.Size > s.settings.MaxUploadSize {
		return nil, services.NewError(services.ErrInvalidInput,
			fmt.Sprintf("file too large: %s, limit %s", utils.FormatBytes(uint64(in.Size)), utils.FormatBytes(uint64(s.settings.MaxUploadSize))))
	}

	task, _, err := s.access.task(ctx, s.taskRepo, taskID, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	path := utils.BuildAttachmentPath(taskID.String(), in.FileName, now)
	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	if _, err := s.storage.UploadFile(ctx, in.Reader, in.Size, path, mimeType); err != nil {
		logger.ErrorContext(ctx, "Failed to upload attachment", "task_id", taskID, "path", path, "provider", s.storage.GetProviderName(), "error", err)
		return nil, err
	}

	attachment := &models.Attachment{
		ID:          uuid.New(),
		TaskID:      taskID,
		FileName:    utils.SanitizeFileName(in.FileName),
		StoragePath: path,
		Size:        in.Size,
		MimeType:    mimeType,
		UploadedBy:  userID,
		CreatedAt:   now,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		logger.ErrorContext(ctx, "Failed to save attachment, removing blob", "task_id", taskID, "path", path, "error", err)
		if delErr := s.storage.DeleteFiles(ctx, []string{path}); delErr != nil {
			logger.WarnContext(ctx, "Failed to remove orphaned blob", "path", path, "error", delErr)
		}
		return nil, err
	}

	s.cache.InvalidateBoard(ctx, task.BoardID)
	logger.InfoContext(ctx, "Attachment uploaded", "attachment_id", attachment.ID, "task_id", taskID, "size", in.Size)
	resp := s.toResponse(attachment)
	return &resp, nil
}

func (s *AttachmentServiceImpl) load(ctx context.Context, userID, attachmentID uuid.UUID) (*models.Attachment, *models.Task, error) {
	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, errAttachmentNotFound
		}
		return nil, nil, err
	}
	task, _, err := s.access.task(ctx, s.taskRepo, attachment.TaskID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, nil, errAttachmentNotFound
		}
		return nil, nil, err
	}
	return attachment, task, nil
}

func (s *AttachmentServiceImpl) GetSignedURL(ctx context.Context, userID, attachmentID uuid.UUID, expiry time.Duration) (*dto.SignedURLResponse, error) {
	if s.storage == nil {
		return nil, errStorageDisabled
	}
	attachment, _, err := s.load(ctx, userID, attachmentID)
	if err != nil {
		return nil, err
	}

	if expiry <= 0 {
		expiry = s.settings.SignedURLTTL
	}
	url, err := s.storage.GetSignedURL(ctx, attachment.StoragePath, expiry)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to sign attachment URL", "attachment_id", attachmentID, "error", err)
		return nil, err
	}

	return &dto.SignedURLResponse{URL: url, ExpiresAt: s.now().Add(expiry)}, nil
}

func (s *AttachmentServiceImpl) DeleteAttachment(ctx context.Context, userID, attachmentID uuid.UUID) error {
	if s.storage == nil {
		return errStorageDisabled
	}
	attachment, task, err := s.load(ctx, userID, attachmentID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteFiles(ctx, []string{attachment.StoragePath}); err != nil {
		logger.ErrorContext(ctx, "Failed to delete attachment blob", "attachment_id", attachmentID, "error", err)
		return err
	}
	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete attachment", "attachment_id", attachmentID, "error", err)
		return err
	}

	s.cache.InvalidateBoard(ctx, task.BoardID)
	logger.InfoContext(ctx, "Attachment deleted", "attachment_id", attachmentID, "task_id", attachment.TaskID)
	return nil
}
