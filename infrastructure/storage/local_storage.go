package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tasktrack/domain/ports"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

var (
	ErrInvalidSignature = errors.New("invalid or expired signature")
)

// LocalStorage StoragePort on the local filesystem, served under BaseURL
type LocalStorage struct {
	basePath string
	baseURL  string
	secret   []byte
	now      func() time.Time
}

type LocalStorageConfig struct {
	BasePath string // ./uploads
	BaseURL  string // http://localhost:8080/files
	// Secret signs the expiring URLs
	Secret string
}

func NewLocalStorage(config LocalStorageConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: config.BasePath,
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
		secret:   []byte(config.Secret),
		now:      time.Now,
	}, nil
}

var _ ports.StoragePort = (*LocalStorage)(nil)

// BasePath root directory, mounted by the static files route
func (l *LocalStorage) BasePath() string {
	return l.basePath
}

func (l *LocalStorage) UploadFile(ctx context.Context, file io.Reader, size int64, path string, contentType string) (string, error) {
	path, err := utils.ValidateAndSanitizePath(path)
	if err != nil {
		return "", err
	}

	if size > 0 {
		ok, info, err := utils.CheckDiskSpace(l.basePath, size, 0)
		if err != nil {
			logger.WarnContext(ctx, "Disk space check failed", "error", err)
		} else if !ok {
			return "", utils.NewDiskSpaceError(size, info.Free)
		}
	}

	fullPath := filepath.Join(l.basePath, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.DebugContext(ctx, "File stored locally", "path", path, "content_type", contentType)
	return l.GetFileURL(path), nil
}

// DeleteFiles missing files count as deleted
func (l *LocalStorage) DeleteFiles(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		fullPath := filepath.Join(l.basePath, filepath.FromSlash(strings.TrimPrefix(p, "/")))

		if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
			logger.WarnContext(ctx, "Failed to delete file", "path", p, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to delete file: %w", err)
			}
			continue
		}
		l.cleanupEmptyDirs(filepath.Dir(fullPath))
	}
	return firstErr
}

func (l *LocalStorage) GetFileURL(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return l.baseURL + path
}

// GetSignedURL public URL plus expires and an HMAC over "path:expires"
func (l *LocalStorage) GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	path = strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "/")
	expires := l.now().Add(clampExpiry(expiry)).Unix()

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", l.sign(path, expires))
	return l.GetFileURL(path) + "?" + q.Encode(), nil
}

// VerifySignature checks the query produced by GetSignedURL
func (l *LocalStorage) VerifySignature(path, expires, signature string) error {
	path = strings.TrimPrefix(path, "/")
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil || l.now().Unix() > exp {
		return ErrInvalidSignature
	}
	if !hmac.Equal([]byte(signature), []byte(l.sign(path, exp))) {
		return ErrInvalidSignature
	}
	return nil
}

func (l *LocalStorage) sign(path string, expires int64) string {
	mac := hmac.New(sha256.New, l.secret)
	fmt.Fprintf(mac, "%s:%d", path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

func (l *LocalStorage) GetProviderName() string {
	return "local"
}

// cleanupEmptyDirs removes empty directories up to basePath
func (l *LocalStorage) cleanupEmptyDirs(dir string) {
	absBase, _ := filepath.Abs(l.basePath)
	absDir, _ := filepath.Abs(dir)

	for absDir != absBase && strings.HasPrefix(absDir, absBase) {
		entries, err := os.ReadDir(absDir)
		if err != nil || len(entries) > 0 {
			break
		}
		os.Remove(absDir)
		absDir = filepath.Dir(absDir)
	}
}
