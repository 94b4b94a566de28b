package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"tasktrack/domain/ports"
	"tasktrack/pkg/logger"
)

// presigned URLs are valid for at most 7 days on S3
const maxPresignExpiry = 7 * 24 * time.Hour

// S3Storage StoragePort on S3 compatible storage (MinIO, R2, AWS)
type S3Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	endpoint  string
	useSSL    bool
}

type S3StorageConfig struct {
	Endpoint  string // minio:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string // optional CDN or public bucket URL
}

// NewMinioClient shared by the API and cmd/setup-bucket
func NewMinioClient(config S3StorageConfig) (*minio.Client, error) {
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure:    config.UseSSL,
		Region:    config.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	return client, nil
}

// NewS3Storage creates the bucket when it does not exist yet
func NewS3Storage(config S3StorageConfig) (*S3Storage, error) {
	client, err := NewMinioClient(config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{
			Region: config.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("S3 bucket created", "bucket", config.Bucket)
	}

	logger.Info("S3 storage initialized",
		"endpoint", config.Endpoint,
		"bucket", config.Bucket,
		"ssl", config.UseSSL,
	)

	return &S3Storage{
		client:    client,
		bucket:    config.Bucket,
		publicURL: strings.TrimSuffix(config.PublicURL, "/"),
		endpoint:  config.Endpoint,
		useSSL:    config.UseSSL,
	}, nil
}

var _ ports.StoragePort = (*S3Storage)(nil)

func normalizeKey(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.TrimPrefix(path, "/")
}

func (s *S3Storage) UploadFile(ctx context.Context, file io.Reader, size int64, path string, contentType string) (string, error) {
	path = normalizeKey(path)

	if size <= 0 {
		// unknown length, minio streams until EOF
		size = -1
	}
	_, err := s.client.PutObject(ctx, s.bucket, path, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logger.DebugContext(ctx, "File uploaded to S3", "path", path, "content_type", contentType, "size", size)

	return s.GetFileURL(path), nil
}

// DeleteFiles one bulk request; NoSuchKey is ignored
func (s *S3Storage) DeleteFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(paths))
	for _, p := range paths {
		objectsCh <- minio.ObjectInfo{Key: normalizeKey(p)}
	}
	close(objectsCh)

	var firstErr error
	failed := 0
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if minio.ToErrorResponse(rErr.Err).Code == "NoSuchKey" {
			continue
		}
		failed++
		logger.WarnContext(ctx, "Failed to delete object", "key", rErr.ObjectName, "error", rErr.Err)
		if firstErr == nil {
			firstErr = rErr.Err
		}
	}

	if firstErr != nil {
		return fmt.Errorf("failed to delete %d of %d files: %w", failed, len(paths), firstErr)
	}

	logger.DebugContext(ctx, "Files deleted from S3", "count", len(paths))
	return nil
}

func (s *S3Storage) GetFileURL(path string) string {
	path = normalizeKey(path)

	if s.publicURL != "" {
		return s.publicURL + "/" + path
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, path)
}

// GetSignedURL presigned GET, expiry clamped to [1s, 7d]
func (s *S3Storage) GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	path = normalizeKey(path)
	expiry = clampExpiry(expiry)

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, path, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	logger.DebugContext(ctx, "Presigned URL generated", "path", path, "expiry", expiry)
	return presigned.String(), nil
}

func (s *S3Storage) GetProviderName() string {
	return "s3"
}

func clampExpiry(expiry time.Duration) time.Duration {
	if expiry < time.Second {
		return time.Second
	}
	if expiry > maxPresignExpiry {
		return maxPresignExpiry
	}
	return expiry
}
