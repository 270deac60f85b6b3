package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
)

// LocalBlobStore stores files below a base directory on the local filesystem.
type LocalBlobStore struct {
	basePath string
}

// NewLocalBlobStore creates a local store, creating basePath if needed.
func NewLocalBlobStore(basePath string) (*LocalBlobStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("local storage path is required")
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalBlobStore{basePath: basePath}, nil
}

var _ portssvc.BlobStore = (*LocalBlobStore)(nil)

// Save writes data to a new object and returns its object name.
func (l *LocalBlobStore) Save(ctx context.Context, data []byte, suggestedName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	objectName := GenerateObjectName(suggestedName)
	fullPath := l.FilePath(objectName)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	// O_EXCL: an existing object is never overwritten
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write data to file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close file %s: %w", fullPath, err)
	}
	return objectName, nil
}

// FilePath returns the full filesystem path for an object
func (l *LocalBlobStore) FilePath(objectName string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(objectName))
}

// Close is a no-op for local storage
func (l *LocalBlobStore) Close() error {
	return nil
}
