package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/config"
)

var ErrStorageUnavailable = errors.New("media storage is not configured")

// File is an uploaded file as received from a multipart form.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type Service interface {
	UploadAvatar(ctx context.Context, file *File) (string, error)
	DeleteAvatar(ctx context.Context, publicURL string) error
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) UploadAvatar(ctx context.Context, file *File) (string, error) {
	if err := s.validate(file); err != nil {
		return "", err
	}
	if s.minioClient == nil {
		return "", ErrStorageUnavailable
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	storagePath := fmt.Sprintf("avatars/%s/%s%s", time.Now().Format("2006/01"), uuid.New().String(), ext)

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, file.Reader, file.Size, minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return s.getPublicURL(storagePath), nil
}

// DeleteAvatar ignores URLs that do not point into the avatar bucket.
func (s *service) DeleteAvatar(ctx context.Context, publicURL string) error {
	prefix := s.getPublicURL("")
	if s.minioClient == nil || !strings.HasPrefix(publicURL, prefix) {
		return nil
	}

	storagePath := strings.TrimPrefix(publicURL, prefix)
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) validate(file *File) error {
	if file == nil || file.Reader == nil {
		return apperrors.Invalid("avatar file is required")
	}
	if file.Size <= 0 {
		return apperrors.Invalid("avatar file is empty")
	}
	if file.Size > s.cfg.MaxAvatarSize {
		return apperrors.Invalid("avatar must be at most %d MB", s.cfg.MaxAvatarSize/(1024*1024))
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return apperrors.Invalid("only image files are allowed")
	}
	return nil
}

func (s *service) getPublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, storagePath)
}
