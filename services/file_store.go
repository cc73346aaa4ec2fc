package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quickprint-campus/quickprint-api/utils"
)

// FileStore persists uploaded print files
type FileStore interface {
	// Put stores content under key
	Put(ctx context.Context, key string, content []byte, contentType string) error

	// URL returns a URL the shop can download the file from
	URL(ctx context.Context, key string) (string, error)

	// Delete removes the file stored under key
	Delete(ctx context.Context, key string) error
}

// LocalFileStore keeps files in a directory served by GET /api/v1/uploads/:filename
type LocalFileStore struct {
	dir     string
	baseURL string
}

// NewLocalFileStore creates a store writing to dir with URLs under baseURL
func NewLocalFileStore(dir, baseURL string) *LocalFileStore {
	return &LocalFileStore{dir: dir, baseURL: baseURL}
}

// Dir returns the directory files are written to
func (s *LocalFileStore) Dir() string {
	return s.dir
}

// Put writes content to the upload directory
func (s *LocalFileStore) Put(_ context.Context, key string, content []byte, _ string) error {
	if !utils.ValidStoredFileName(key) {
		return fmt.Errorf("invalid file key %q", key)
	}
	return utils.SaveFile(s.dir, key, content)
}

// URL returns the public download URL of key
func (s *LocalFileStore) URL(_ context.Context, key string) (string, error) {
	return utils.GetFileURL(s.baseURL, key), nil
}

// Delete removes key from the upload directory. Missing files are not an error.
func (s *LocalFileStore) Delete(_ context.Context, key string) error {
	if !utils.ValidStoredFileName(key) {
		return fmt.Errorf("invalid file key %q", key)
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
