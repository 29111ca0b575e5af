// Package storage holds the object stores for compliance documents.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"
)

// ObjectStore uploads documents and hands out download links
type ObjectStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

var (
	_ ObjectStore = (*MinIOClient)(nil)
	_ ObjectStore = (*MemoryStore)(nil)
)

// Object is a stored blob
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStore keeps objects in a map. It is used in memory mode and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
	baseURL string
}

// NewMemoryStore creates an empty store whose links point at baseURL
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]Object),
		baseURL: baseURL,
	}
}

// Upload reads the whole object into memory
func (s *MemoryStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	if size >= 0 && int64(buf.Len()) != size {
		return fmt.Errorf("failed to upload file: read %d bytes, expected %d", buf.Len(), size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = Object{Data: buf.Bytes(), ContentType: contentType}
	return nil
}

// PresignedURL returns a fake signed link. Missing keys are an error.
func (s *MemoryStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("failed to generate presigned URL: object %s not found", key)
	}
	q := url.Values{}
	q.Set("expires", fmt.Sprintf("%d", int64(expiry.Seconds())))
	return fmt.Sprintf("%s/%s?%s", s.baseURL, url.PathEscape(key), q.Encode()), nil
}

// Get returns a stored object
func (s *MemoryStore) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[key]
	return o, ok
}
