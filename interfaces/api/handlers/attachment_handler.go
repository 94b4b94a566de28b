package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

type AttachmentHandler struct {
	attachmentService services.AttachmentService
}

func NewAttachmentHandler(attachmentService services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

func (h *AttachmentHandler) ListAttachments(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	taskID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	attachments, err := h.attachmentService.ListAttachments(c.UserContext(), user.ID, taskID)
	if err != nil {
		return serviceError(c, "List attachments", err)
	}

	return utils.SuccessResponse(c, attachments)
}

// Upload POST /tasks/:id/attachments, multipart field "file"
func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	taskID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "No file in upload request", "error", err)
		return utils.BadRequestResponse(c, "File is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open uploaded file", "error", err)
		return utils.InternalServerErrorResponse(c)
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	logger.InfoContext(ctx, "Attachment upload", "task_id", taskID, "file_name", fileHeader.Filename, "size", fileHeader.Size)

	attachment, err := h.attachmentService.UploadAttachment(ctx, user.ID, taskID, &services.UploadInput{
		FileName: fileHeader.Filename,
		MimeType: mimeType,
		Size:     fileHeader.Size,
		Reader:   file,
	})
	if err != nil {
		return serviceError(c, "Upload attachment", err)
	}

	return utils.CreatedResponse(c, attachment)
}

// SignedURL GET /attachments/:id/signed-url?expiry=, expiry as a duration ("15m") or seconds
func (h *AttachmentHandler) SignedURL(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	attachmentID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	expiry, err := parseExpiry(c.Query("expiry"))
	if err != nil {
		logger.WarnContext(c.UserContext(), "Invalid expiry parameter", "expiry", c.Query("expiry"))
		return utils.BadRequestResponse(c, "Invalid expiry parameter")
	}

	signed, err := h.attachmentService.GetSignedURL(c.UserContext(), user.ID, attachmentID, expiry)
	if err != nil {
		return serviceError(c, "Signed URL", err)
	}

	return utils.SuccessResponse(c, signed)
}

func (h *AttachmentHandler) DeleteAttachment(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}
	attachmentID, ok, err := paramUUID(c, "id")
	if !ok {
		return err
	}

	if err := h.attachmentService.DeleteAttachment(c.UserContext(), user.ID, attachmentID); err != nil {
		return serviceError(c, "Delete attachment", err)
	}

	return utils.NoContentResponse(c)
}

// parseExpiry zero means the configured default
func parseExpiry(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds < 0 {
			return 0, strconv.ErrRange
		}
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, strconv.ErrSyntax
	}
	return d, nil
}
