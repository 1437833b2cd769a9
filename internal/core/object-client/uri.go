package objectclient

import "strings"

// ParseURI splits an object location into bucket and key. It accepts
// s3://bucket/key and virtual-hosted URLs such as
// https://my-bucket.s3.us-east-2.amazonaws.com/path/to/file.pdf.
func ParseURI(u string) (bucket, key string, ok bool) {
	switch {
	case strings.HasPrefix(u, "s3://"):
		bucket, key, _ = strings.Cut(strings.TrimPrefix(u, "s3://"), "/")
	case strings.HasPrefix(u, "https://") && strings.Contains(u, ".s3."):
		var host string
		host, key, _ = strings.Cut(strings.TrimPrefix(u, "https://"), "/")
		bucket, _, _ = strings.Cut(host, ".")
	default:
		return "", "", false
	}
	if bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
