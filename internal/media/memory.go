package media

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryUploader keeps uploaded objects in memory. Used in development and tests.
type MemoryUploader struct {
	mu      sync.RWMutex
	objects map[string][]byte
	fail    error
}

// NewMemoryUploader builds an empty in-memory uploader.
func NewMemoryUploader() *MemoryUploader {
	return &MemoryUploader{objects: make(map[string][]byte)}
}

// FailWith makes every subsequent Upload return err.
func (m *MemoryUploader) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// Upload reads obj fully and returns a memory:// URL for it.
func (m *MemoryUploader) Upload(_ context.Context, obj Object) (string, error) {
	m.mu.RLock()
	fail := m.fail
	m.mu.RUnlock()
	if fail != nil {
		return "", fail
	}

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", fmt.Errorf("read object: %w", err)
	}
	key := ObjectKey(obj)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return "memory://" + key, nil
}

// Object returns the stored bytes for a URL produced by Upload.
func (m *MemoryUploader) Object(url string) ([]byte, bool) {
	const prefix = "memory://"
	if len(url) < len(prefix) {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[url[len(prefix):]]
	return data, ok
}

// Len reports the number of stored objects.
func (m *MemoryUploader) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
