package objectclient

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	objects map[string]string
	input   *s3.GetObjectInput
}

func (f *fakeObjectAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = in
	body, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Client_GetFile(t *testing.T) {
	api := &fakeObjectAPI{objects: map[string]string{"docs/a.txt": "hello world"}}

	t.Run("Should download the object", func(t *testing.T) {
		data, err := newS3Client(api, 0).GetFile(context.Background(), "docs", "a.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(data))
		assert.Equal(t, "docs", aws.ToString(api.input.Bucket))
		assert.Equal(t, "a.txt", aws.ToString(api.input.Key))
	})

	t.Run("Should reject objects over the limit", func(t *testing.T) {
		_, err := newS3Client(api, 5).GetFile(context.Background(), "docs", "a.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds 5 bytes")
	})

	t.Run("Should wrap storage errors", func(t *testing.T) {
		_, err := newS3Client(api, 0).GetFile(context.Background(), "docs", "missing.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "s3 get docs/missing.txt")
	})
}

func TestParseURI(t *testing.T) {
	cases := []struct {
		in     string
		bucket string
		key    string
		ok     bool
	}{
		{"s3://docs/reports/q1.pdf", "docs", "reports/q1.pdf", true},
		{"https://my-bucket.s3.us-east-2.amazonaws.com/path/to/file.pdf", "my-bucket", "path/to/file.pdf", true},
		{"s3://docs", "", "", false},
		{"s3:///key", "", "", false},
		{"notes.txt", "", "", false},
		{"https://example.com/a.pdf", "", "", false},
	}
	for _, tc := range cases {
		t.Run("Should parse "+tc.in, func(t *testing.T) {
			bucket, key, ok := ParseURI(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.bucket, bucket)
			assert.Equal(t, tc.key, key)
		})
	}
}
