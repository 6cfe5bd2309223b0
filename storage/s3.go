package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/arloliu/featkit/errs"
)

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the bucket name (required).
	Bucket string

	// AccessKey is the access key ID (required).
	AccessKey string

	// SecretKey is the secret access key (required).
	SecretKey string

	// Endpoint is a custom endpoint URL, e.g. for MinIO (optional).
	Endpoint string

	// Region defaults to DefaultRegion.
	Region string

	// Prefix is prepended to every key (optional).
	Prefix string

	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	c.Prefix = strings.Trim(c.Prefix, "/")
}

func (c *Config) validate() error {
	switch {
	case c.Bucket == "":
		return fmt.Errorf("%w: bucket is required", errs.ErrInvalidConfig)
	case c.AccessKey == "":
		return fmt.Errorf("%w: access key is required", errs.ErrInvalidConfig)
	case c.SecretKey == "":
		return fmt.Errorf("%w: secret key is required", errs.ErrInvalidConfig)
	}

	return nil
}

// s3API is the subset of *s3.Client used by S3.
type s3API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 implements FS on S3-compatible object storage.
// Paths are slash-separated object keys relative to Config.Prefix.
type S3 struct {
	client s3API
	cfg    Config
}

var _ FS = (*S3)(nil)

// NewS3 creates an S3 file system with static credentials.
func NewS3(cfg Config) (*S3, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3{client: s3.New(s3.Options{}, opts...), cfg: cfg}, nil
}

// Join joins key elements with forward slashes.
func (s *S3) Join(elem ...string) string {
	return path.Join(elem...)
}

func (s *S3) key(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if s.cfg.Prefix == "" {
		return p
	}

	return s.cfg.Prefix + "/" + p
}

func (s *S3) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(p)),
	})
	if err == nil {
		return true, nil
	}

	err = wrapS3Error(err, p)
	if errors.Is(err, errs.ErrMetadataNotFound) {
		return false, nil
	}

	return false, err
}

func (s *S3) ReadFile(ctx context.Context, p string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(p)),
	})
	if err != nil {
		return nil, wrapS3Error(err, p)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", p, err)
	}

	return data, nil
}

func (s *S3) WriteFile(ctx context.Context, p string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(s.key(p)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return wrapS3Error(err, p)
	}

	return nil
}

// wrapS3Error maps S3 failures onto featkit sentinel errors.
// The original error is formatted with %v so callers match on sentinels only.
func wrapS3Error(err error, p string) error {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return fmt.Errorf("%w: %s: %v", errs.ErrMetadataNotFound, p, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s: %v", errs.ErrMetadataNotFound, p, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %s: %v", errs.ErrAccessDenied, p, err)
		}
	}

	return fmt.Errorf("s3 object %q: %w", p, err)
}
