package services

import (
	"context"
	"fmt"
	"sync"
)

// MockFileStore is an in-memory FileStore for testing
type MockFileStore struct {
	files map[string][]byte // map of key to file content
	mu    sync.RWMutex

	// PutErr, when set, is returned by Put
	PutErr error
}

// NewMockFileStore creates a new mock file store
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		files: make(map[string][]byte),
	}
}

// Put simulates storing a file
func (m *MockFileStore) Put(_ context.Context, key string, content []byte, _ string) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	m.files[key] = append([]byte(nil), content...)
	m.mu.Unlock()
	return nil
}

// URL returns a mock download URL for a stored file
func (m *MockFileStore) URL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.files[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("file not found in mock storage: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/uploads/%s?mock=true", key), nil
}

// Delete simulates deleting a file
func (m *MockFileStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	m.mu.Lock()
	delete(m.files, key)
	m.mu.Unlock()
	return nil
}

// Files returns all stored files (for testing assertions)
func (m *MockFileStore) Files() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent race conditions
	files := make(map[string][]byte, len(m.files))
	for k, v := range m.files {
		files[k] = v
	}
	return files
}

// FileExists checks if a file exists in mock storage
func (m *MockFileStore) FileExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.files[key]
	return exists
}
