package minio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path"
	"path/filepath"
	"photo-ingest/internal/config"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("bucket created", "bucket", cfg.BucketName)
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// EnsureDirectory is a no-op, object keys need no parent
func (a *Adapter) EnsureDirectory(ctx context.Context, _ string) error {
	return ctx.Err()
}

// WriteFile puts data as a single object, it is visible only once fully uploaded
func (a *Adapter) WriteFile(ctx context.Context, filePath string, data []byte) error {
	key := ObjectKey(filePath)
	_, err := a.client.PutObject(ctx, a.config.BucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(key),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

// Remove deletes the object stored at filePath
func (a *Adapter) Remove(ctx context.Context, filePath string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, ObjectKey(filePath), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectKey turns a storage path into a bucket key
func ObjectKey(filePath string) string {
	key := path.Clean(filepath.ToSlash(filePath))
	key = strings.TrimPrefix(key, "./")
	return strings.TrimLeft(key, "/")
}

func contentType(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
