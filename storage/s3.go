package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Client defines the S3 operations used by S3Storage.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Storage implements Storage over an S3 bucket for deployments
// fronted by object storage. Exclusive creation is enforced with a
// conditional PutObject (If-None-Match: *), which S3 and compatible
// services reject with 412 when the key already exists.
// It is safe for concurrent use.
type S3Storage struct {
	client  S3Client
	bucket  string
	baseURL string
}

// S3Config contains configuration for S3 storage.
type S3Config struct {
	Bucket      string
	Region      string
	AccessKeyID string
	SecretKey   string
	Endpoint    string // Optional: for S3-compatible services
	BaseURL     string // Public URL base for serving files
}

// S3Option configures S3Storage construction.
type S3Option func(*s3Options)

type s3Options struct {
	s3Client S3Client
}

// WithS3Client sets a custom pre-configured S3 client.
// Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// NewS3Storage creates a new S3 storage instance.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		if cfg.Region == "" {
			return nil, fmt.Errorf("%w: region is required", ErrInvalidConfig)
		}

		awsOptions := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				awsconfig.WithCredentialsProvider(
					credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
				),
			)
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}

		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
				o.UsePathStyle = true
			}
		})
	}

	baseURL := cfg.BaseURL
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &S3Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Create stores a new object under name. The body is buffered first so
// a short read never produces a truncated object in the bucket.
func (s *S3Storage) Create(ctx context.Context, name string, r io.Reader) (int64, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		IfNoneMatch:   aws.String("*"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return 0, fmt.Errorf("%w: %s", ErrAlreadyExists, name)
		}
		return 0, fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}

	return int64(len(body)), nil
}

// ExistsWithPrefix reports whether any key in the bucket starts with prefix.
func (s *S3Storage) ExistsWithPrefix(ctx context.Context, prefix string) bool {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		// Treat probe failures as taken so allocation retries rather
		// than risking a name collision.
		return true
	}
	return len(out.Contents) > 0
}

// Remove deletes a single object.
func (s *S3Storage) Remove(ctx context.Context, name string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}
	return nil
}

// URL returns the public URL for a stored object.
func (s *S3Storage) URL(name string) string {
	if s.baseURL != "" {
		return s.baseURL + name
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, name)
}

// Healthcheck verifies the bucket is reachable.
func (s *S3Storage) Healthcheck(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrDirectoryUnwritable, err)
	}
	return nil
}
