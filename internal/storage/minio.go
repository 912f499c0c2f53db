package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hawbir/minbar/backend/internal/config"
)

// Uploader accepts a binary upload and returns a retrievable URL. The rest of
// the application only ever stores the returned URL string.
type Uploader interface {
	Upload(ctx context.Context, folder, fileName string, file io.Reader, size int64) (string, error)
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating MinIO client: %w", err)
	}

	return &MinIOClient{client: client, cfg: cfg.MinIO}, nil
}

// EnsureBucket creates the configured bucket if it does not exist yet.
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("error creating bucket: %w", err)
	}
	return nil
}

// Upload stores the file under a generated object name and returns its public
// URL.
func (m *MinIOClient) Upload(ctx context.Context, folder, fileName string, file io.Reader, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".jpg"
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	_, err := m.client.PutObject(ctx, m.cfg.Bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
			},
		})
	if err != nil {
		return "", fmt.Errorf("error uploading to MinIO: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", m.cfg.PublicURL, m.cfg.Bucket, objectName), nil
}
