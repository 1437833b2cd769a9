package objectclient

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfg "github.com/markdave123-py/Chunkwise/internal/config"
	"github.com/markdave123-py/Chunkwise/internal/core"
	"github.com/markdave123-py/Chunkwise/internal/logger"
)

var _ core.ObjectClient = (*S3Client)(nil)

// objectAPI is the slice of the S3 API the client uses.
type objectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Client struct {
	client   objectAPI
	maxBytes int64
}

func NewS3Client(ctx context.Context, cfg *cfg.Config) (*S3Client, error) {
	if cfg.AwsAccessKey == "" || cfg.AwsSecretKey == "" {
		return nil, fmt.Errorf("AWS credentials not set")
	}
	if cfg.AwsRegion == "" {
		return nil, fmt.Errorf("AWS_REGION not set")
	}

	awsCfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(cfg.AwsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AwsAccessKey, cfg.AwsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	logger.FromContext(ctx).Info("object storage client ready", "region", cfg.AwsRegion)
	return newS3Client(s3.NewFromConfig(awsCfg), cfg.MaxContentLength), nil
}

func newS3Client(api objectAPI, maxBytes int64) *S3Client {
	return &S3Client{client: api, maxBytes: maxBytes}
}

// GetFile downloads an object. Objects larger than the configured
// content limit are rejected rather than truncated.
func (c *S3Client) GetFile(ctx context.Context, bucket, key string) ([]byte, error) {
	ctxGet, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := c.client.GetObject(ctxGet, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s/%s: %w", bucket, key, err)
	}
	defer resp.Body.Close()

	var r io.Reader = resp.Body
	if c.maxBytes > 0 {
		r = io.LimitReader(resp.Body, c.maxBytes+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if c.maxBytes > 0 && int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("object %s/%s exceeds %d bytes", bucket, key, c.maxBytes)
	}
	return body, nil
}
