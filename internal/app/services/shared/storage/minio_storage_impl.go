package storage

import (
	"bytes"
	"context"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/pkg/constvars"
	"labcore-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.ObjectStorage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

// PutJSON archives a raw payload under the given key and returns the key.
func (m *minioStorage) PutJSON(ctx context.Context, objectKey string, data []byte) (string, error) {
	_, err := m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return objectKey, nil
}
