// Package s3 implements an S3-backed content store.
//
// This is the durable backing store of the namespace: file bytes live as
// objects in a bucket, and each content ID's reported location is its
// s3:// URL.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tierview/tierview/pkg/content"
)

// S3ContentStore implements content.ContentStore on Amazon S3 or any
// S3-compatible storage.
//
// Key Design:
// The ContentID is used directly as the object key, under an optional
// prefix. The bucket mirrors the namespace, which keeps objects
// inspectable and allows reconstruction from the bucket alone.
//
// Characteristics:
//   - Every read hits S3; there is no local caching, so BypassCache is
//     naturally satisfied
//   - Custom endpoints supported for S3-compatible storage (MinIO etc.)
//
// Thread Safety:
// Safe for concurrent use by multiple goroutines.
type S3ContentStore struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
}

// S3ContentStoreConfig contains configuration for the S3 content store.
type S3ContentStoreConfig struct {
	// Client is the configured S3 client
	Client *s3.Client

	// Bucket is the S3 bucket name
	Bucket string

	// KeyPrefix is an optional prefix for all object keys
	KeyPrefix string
}

// NewS3ContentStore creates a new S3-based content store and verifies
// bucket access. The bucket must already exist.
func NewS3ContentStore(ctx context.Context, cfg S3ContentStoreConfig) (*S3ContentStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Client == nil {
		return nil, fmt.Errorf("S3 client is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	_, err := cfg.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(cfg.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access bucket %q: %w", cfg.Bucket, err)
	}

	return &S3ContentStore{
		client:    cfg.Client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// Open returns a streaming reader over the object's bytes.
//
// The S3 GetObject operation respects context cancellation; once the body
// is returned the caller owns it and must close it.
func (s *S3ContentStore) Open(ctx context.Context, id string, opts content.OpenOptions) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(id)),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
		}
		return nil, fmt.Errorf("failed to get object from S3: %v: %w", err, content.ErrStoreUnavailable)
	}

	return result.Body, nil
}

// Locations reports the object's s3:// URL if it exists.
func (s *S3ContentStore) Locations(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := s.objectKey(id)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
		}
		return nil, fmt.Errorf("failed to head object in S3: %v: %w", err, content.ErrStoreUnavailable)
	}

	return []string{fmt.Sprintf("s3://%s/%s", s.bucket, key)}, nil
}

func (s *S3ContentStore) objectKey(id string) string {
	if s.keyPrefix == "" {
		return id
	}
	return s.keyPrefix + id
}
