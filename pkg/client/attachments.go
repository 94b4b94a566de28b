package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"tasktrack/domain/dto"
)

type AttachmentsAPI struct {
	c *Client
}

// multipartBody buffered so the request can be replayed after a token refresh
type multipartBody struct {
	data        []byte
	contentType string
}

func (a *AttachmentsAPI) List(ctx context.Context, taskID string) ([]dto.AttachmentResponse, error) {
	var attachments []dto.AttachmentResponse
	if err := a.c.get(ctx, "/tasks/"+url.PathEscape(taskID)+"/attachments", nil, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

// Upload sends r as the multipart "file" field; mimeType may be empty
func (a *AttachmentsAPI) Upload(ctx context.Context, taskID, fileName, mimeType string, r io.Reader) (*dto.AttachmentResponse, error) {
	body, err := newMultipartFile("file", fileName, mimeType, r)
	if err != nil {
		return nil, err
	}

	var attachment dto.AttachmentResponse
	path := "/tasks/" + url.PathEscape(taskID) + "/attachments"
	if err := a.c.send(ctx, http.MethodPost, path, body, &attachment); err != nil {
		return nil, err
	}
	return &attachment, nil
}

// SignedURL expiring download link; zero expiry uses the server default
func (a *AttachmentsAPI) SignedURL(ctx context.Context, id string, expiry time.Duration) (*dto.SignedURLResponse, error) {
	query := url.Values{}
	if expiry > 0 {
		query.Set("expiry", strconv.Itoa(int(expiry.Seconds())))
	}

	var signed dto.SignedURLResponse
	if err := a.c.get(ctx, "/attachments/"+url.PathEscape(id)+"/signed-url", query, &signed); err != nil {
		return nil, err
	}
	return &signed, nil
}

// Delete removes the stored blob and the record
func (a *AttachmentsAPI) Delete(ctx context.Context, id string) error {
	return a.c.send(ctx, http.MethodDelete, "/attachments/"+url.PathEscape(id), nil, nil)
}

func newMultipartFile(field, fileName, mimeType string, r io.Reader) (*multipartBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, fileName))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header.Set("Content-Type", mimeType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileName, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	return &multipartBody{data: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}
