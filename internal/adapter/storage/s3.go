package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vikas-0-3/farmer/internal/app/config"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
)

// S3Store keeps uploads in an S3-compatible bucket (MinIO). Selected by
// UPLOADS_BACKEND=s3.
type S3Store struct {
	client *minio.Client
	bucket string
	log    logger.Logger
}

func NewS3Store(cfg config.UploadsConfig, log logger.Logger) (*S3Store, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.S3Endpoint, err)
	}

	ctx := context.Background()
	if err := client.MakeBucket(ctx, cfg.S3Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errExists := client.BucketExists(ctx, cfg.S3Bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", cfg.S3Bucket, err)
		}
	}

	log.Infof("S3 upload store ready, endpoint=%s bucket=%s", cfg.S3Endpoint, cfg.S3Bucket)
	return &S3Store{client: client, bucket: cfg.S3Bucket, log: log}, nil
}

func (s *S3Store) Save(ctx context.Context, prefix, originalName string, data io.Reader, size int64) (string, error) {
	key := objectName(prefix, originalName)

	_, err := s.client.PutObject(ctx, s.bucket, key, data, size, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, s.bucket, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key), nil
}
