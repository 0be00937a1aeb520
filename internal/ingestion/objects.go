package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const maxObjectBytes = 10 << 20

// ObjectReader reads one object from a bucket store.
type ObjectReader interface {
	ReadObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// S3Reader reads resumes from Amazon S3.
type S3Reader struct {
	client *s3.Client
}

// NewS3Reader loads the default AWS credential chain, optionally pinned to a
// shared-config profile and region.
func NewS3Reader(ctx context.Context, profile, region string) (*S3Reader, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Reader{client: s3.NewFromConfig(cfg)}, nil
}

// ReadObject downloads s3://bucket/key.
func (r *S3Reader) ReadObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s/%s: %w", bucket, key, err)
	}
	defer func() { _ = out.Body.Close() }()
	return io.ReadAll(io.LimitReader(out.Body, maxObjectBytes))
}

// GCSReader reads resumes from Google Cloud Storage.
type GCSReader struct {
	client *storage.Client
}

// NewGCSReader uses application default credentials.
func NewGCSReader(ctx context.Context) (*GCSReader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSReader{client: client}, nil
}

// ReadObject downloads gs://bucket/key.
func (r *GCSReader) ReadObject(ctx context.Context, bucket, key string) ([]byte, error) {
	rc, err := r.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s/%s: %w", bucket, key, err)
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(io.LimitReader(rc, maxObjectBytes))
}

// Close releases the underlying client.
func (r *GCSReader) Close() error {
	return r.client.Close()
}

// parseObjectURI splits scheme://bucket/key.
func parseObjectURI(raw string) (kind SourceKind, bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", "", err
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", "", fmt.Errorf("expected %s://bucket/key", u.Scheme)
	}
	return SourceKind(u.Scheme), u.Host, key, nil
}
