package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"lingo-quiz/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage stores objects in a MinIO or S3-compatible bucket.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioStorage(cfg config.MinioConfig) (*MinioStorage, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio endpoint and bucket are required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioStorage{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

func (s *MinioStorage) Save(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error) {
	key := path.Join(folder, path.Base(name))
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *MinioStorage) Delete(ctx context.Context, publicPath string) error {
	key, ok := strings.CutPrefix(publicPath, s.publicURL+"/")
	if !ok || key == "" {
		return fmt.Errorf("path %q is not managed by minio storage", publicPath)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
