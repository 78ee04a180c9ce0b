// Package storage persists uploaded media in an S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/inkwell-blog/inkwell/pkg/config"
	"github.com/inkwell-blog/inkwell/pkg/logging"
)

// ErrStorageDisabled is returned when uploads are attempted without a
// configured object store.
var ErrStorageDisabled = fmt.Errorf("storage is disabled")

// allowed upload extensions
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Store saves uploaded files and hands back public URLs.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New creates an object store client and ensures the bucket exists.
func New(cfg *config.StorageConfig) (*Store, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Object storage disabled")
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	logging.GetLogger().Info("Object storage connection established")

	return &Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// UploadImage stores an image under a generated object name and returns the
// object name and its public URL. Only jpeg and png files are accepted.
func (s *Store) UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, string, error) {
	if s == nil || s.client == nil {
		return "", "", ErrStorageDisabled
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return "", "", fmt.Errorf("unsupported file type: %s", ext)
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now().UTC()
	objectName := fmt.Sprintf("images/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-filename": fileName,
			"uploaded-at":       now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to store object: %w", err)
	}

	return objectName, s.ObjectURL(objectName), nil
}

// DeleteImage removes a stored object.
func (s *Store) DeleteImage(ctx context.Context, objectName string) error {
	if s == nil || s.client == nil {
		return ErrStorageDisabled
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}

// ObjectURL returns the public URL of a stored object.
func (s *Store) ObjectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName)
}
