package filestorage

import (
	"bytes"
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	s3client "techscreen-backend/s3"
)

// ObjectStore is the subset of the S3 API used for archiving.
type ObjectStore interface {
	EnsureBucket(ctx context.Context, bucketName string) error
	PutObject(ctx context.Context, bucketName, objectKey string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, bucketName, objectKey string, expires time.Duration) (string, error)
}

type minioStore struct {
	s3client *minio.Client
}

func NewMinioStore(client *minio.Client) ObjectStore {
	return &minioStore{s3client: client}
}

func (m minioStore) EnsureBucket(ctx context.Context, bucketName string) error {
	return s3client.MakeBucket(ctx, m.s3client, bucketName)
}

func (m minioStore) PutObject(ctx context.Context, bucketName, objectKey string, data []byte, contentType string) error {
	_, err := m.s3client.PutObject(ctx, bucketName, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (m minioStore) PresignedURL(ctx context.Context, bucketName, objectKey string, expires time.Duration) (string, error) {
	u, err := m.s3client.PresignedGetObject(ctx, bucketName, objectKey, expires, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
