package core

import "context"

// ObjectClient reads documents from S3 or any object storage.
// It is abstract so AWS can be swapped for MinIO, GCS and the like.
type ObjectClient interface {
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)
}
