package blob

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const downloadTimeout = 2 * time.Minute

// S3Config holds the settings for an S3-backed blob store.
type S3Config struct {
	Region string
	Bucket string

	// AccessKey and SecretKey select static credentials. When both are
	// empty the SDK's default credential chain is used instead.
	AccessKey string
	SecretKey string

	// Endpoint overrides the S3 endpoint, for S3-compatible stores such as
	// MinIO. Empty means AWS.
	Endpoint string
}

// S3Store downloads uploaded files from an S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
	logger *slog.Logger
}

// NewS3Store builds the S3 client and verifies the configuration names a
// region and bucket.
func NewS3Store(ctx context.Context, cfg S3Config, logger *slog.Logger) (*S3Store, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("blob: S3 region not set")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob: S3 bucket name not set")
	}
	if logger == nil {
		logger = slog.Default()
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// S3-compatible stores rarely support virtual-hosted buckets.
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With("component", "blob"),
	}, nil
}

// Download fetches the object at blobPath from the configured bucket.
func (s *S3Store) Download(ctx context.Context, blobPath string) ([]byte, error) {
	key := strings.TrimPrefix(blobPath, "/")
	if key == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	ctxGet, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	resp, err := s.client.GetObject(ctxGet, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 body for %s: %w", key, err)
	}

	s.logger.Debug("downloaded blob", "key", key, "bytes", len(body))
	return body, nil
}
