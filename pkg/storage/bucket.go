package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// StorageError wraps a failed object store call.
type StorageError struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// BucketStorage talks to any S3-compatible endpoint (Supabase Storage, R2, MinIO).
type BucketStorage struct {
	client        *s3.Client
	publicURL     string
	uploadTimeout time.Duration
}

func NewBucketStorage(ctx context.Context, endpoint, region, accessKey, secretKey, publicURL string, uploadTimeout time.Duration) (*BucketStorage, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &BucketStorage{
		client:        client,
		publicURL:     strings.TrimSuffix(publicURL, "/"),
		uploadTimeout: uploadTimeout,
	}, nil
}

// Upload stores data at key. Without upsert the write is conditional on the key not existing.
func (s *BucketStorage) Upload(ctx context.Context, bucket, key string, data []byte, contentType string, upsert bool) (string, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if !upsert {
		input.IfNoneMatch = aws.String("*")
	}

	if _, err := s.client.PutObject(uploadCtx, input); err != nil {
		return "", &StorageError{Op: "upload", Bucket: bucket, Key: key, Err: err}
	}
	return key, nil
}

func (s *BucketStorage) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, bucket, strings.TrimPrefix(path, "/"))
}

// PathFromURL recovers the object path from one of our public URLs.
// URLs on another host or bucket are rejected so we never delete foreign objects.
func (s *BucketStorage) PathFromURL(bucket, fileURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, bucket)
	if !strings.HasPrefix(fileURL, prefix) {
		return "", false
	}
	path := strings.TrimPrefix(fileURL, prefix)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return path, path != ""
}

func (s *BucketStorage) Remove(ctx context.Context, bucket string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, len(paths))
	for i, p := range paths {
		objects[i] = types.ObjectIdentifier{Key: aws.String(p)}
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return &StorageError{Op: "remove", Bucket: bucket, Key: strings.Join(paths, ","), Err: err}
	}
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return &StorageError{
			Op:     "remove",
			Bucket: bucket,
			Key:    aws.ToString(first.Key),
			Err:    fmt.Errorf("%s: %s", aws.ToString(first.Code), aws.ToString(first.Message)),
		}
	}
	return nil
}
