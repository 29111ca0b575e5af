package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/momsgrove/grove-api/pkg/config"
)

// MinIOClient wraps MinIO operations
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // Public URL for generating accessible URLs (e.g., https://files.example.com)
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists.
// Documents stay private; they are only reachable through presigned URLs.
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(func() error {
		return client.ensureBucket(ctx)
	}, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	log.Printf("✅ Object storage ready (bucket %s)", client.bucket)
	return client, nil
}

// ensureBucket creates the bucket when missing
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Upload stores an object
func (m *MinIOClient) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}

// PresignedURL returns a time-limited download URL for key
func (m *MinIOClient) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return rewriteHost(u, m.publicURL), nil
}

// rewriteHost swaps the internal endpoint for the public one when MinIO
// sits behind a reverse proxy. Path and signed query are kept.
func rewriteHost(u *url.URL, publicURL string) string {
	if publicURL == "" {
		return u.String()
	}
	base, err := url.Parse(publicURL)
	if err != nil || base.Host == "" {
		return u.String()
	}
	out := *u
	out.Scheme = base.Scheme
	out.Host = base.Host
	return out.String()
}
