package infra

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tnqbao/gau-showcase-service/config"
)

// MinioClient serves the showcase buckets from a self-hosted S3-compatible
// endpoint such as MinIO.
type MinioClient struct {
	Client        *minio.Client
	Endpoint      string
	Region        string
	PublicBaseURL string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Storage.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	if cfg.Storage.AccessKey == "" || cfg.Storage.SecretKey == "" {
		panic("MinIO credentials are not configured")
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
		Region: cfg.Storage.Region,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	return &MinioClient{
		Client:        minioClient,
		Endpoint:      endpoint,
		Region:        cfg.Storage.Region,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	}
}

func (m *MinioClient) Store(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	if bucket == "" || key == "" {
		return fmt.Errorf("%w: bucket and key cannot be empty", ErrStorage)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.Client.PutObject(ctx, bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return storageError("put", bucket, key, err)
	}
	return nil
}

func (m *MinioClient) Remove(ctx context.Context, bucket, key string) error {
	if bucket == "" || key == "" {
		return fmt.Errorf("%w: bucket and key cannot be empty", ErrStorage)
	}

	if err := m.Client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		if isMinioNotFound(err) {
			return nil
		}
		return storageError("delete", bucket, key, err)
	}
	return nil
}

func (m *MinioClient) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := m.Client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return false, nil
		}
		return false, storageError("stat", bucket, key, err)
	}
	return true, nil
}

func (m *MinioClient) List(ctx context.Context, bucket string) ([]string, error) {
	objectsCh := m.Client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Recursive: true,
	})

	var keys []string
	for object := range objectsCh {
		if object.Err != nil {
			return nil, storageError("list", bucket, "", object.Err)
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

func (m *MinioClient) URL(bucket, key string) string {
	return ObjectURL(m.PublicBaseURL, bucket, m.Region, key)
}

// EnsureBucket creates a bucket if it doesn't exist
func (m *MinioClient) EnsureBucket(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("bucketName cannot be empty")
	}

	exists, err := m.Client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		if err := m.Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: m.Region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func isMinioNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}
