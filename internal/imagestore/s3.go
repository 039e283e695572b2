package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("imagestore")

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// URLExpiry bounds presigned GET links; defaults to one hour.
	URLExpiry time.Duration
}

type S3Store struct {
	client     *minio.Client
	bucketName string
	region     string
	urlExpiry  time.Duration

	bucketMu    sync.Mutex
	bucketReady bool
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Store{client: client, bucketName: bucket, region: region, urlExpiry: expiry}, nil
}

// ensureBucket creates the bucket on first use. A failed check is retried by
// the next call.
func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.bucketMu.Lock()
	defer s.bucketMu.Unlock()
	if s.bucketReady {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return err
		}
	}
	s.bucketReady = true
	return nil
}

func (s *S3Store) Put(ctx context.Context, key string, content []byte, contentType string) error {
	ctx, span := tracer.Start(ctx, "imagestore_put")
	defer span.End()

	key = normalizeKey(key)
	if key == "" {
		return fmt.Errorf("key is required")
	}
	span.SetAttributes(
		attribute.String("minio.bucket", s.bucketName),
		attribute.String("minio.key", key),
		attribute.Int("minio.size", len(content)),
	)
	if err := s.ensureBucket(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("ensure bucket: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// URL returns a presigned GET link valid for the configured expiry.
func (s *S3Store) URL(ctx context.Context, key string) (string, error) {
	ctx, span := tracer.Start(ctx, "imagestore_presign")
	defer span.End()

	u, err := s.client.PresignedGetObject(ctx, s.bucketName, normalizeKey(key), s.urlExpiry, nil)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return u.String(), nil
}
