package contracts

import (
	"context"
	"time"
)

type Storage interface {
	UploadBytes(ctx context.Context, content []byte, bucketName, objectName, contentType string) (string, error)
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}
