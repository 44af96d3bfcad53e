package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSystemStore writes samples under a base directory on local disk
type FileSystemStore struct {
	baseDir string
}

// NewFileSystemStore creates a filesystem backend rooted at baseDir
func NewFileSystemStore(baseDir string) (*FileSystemStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("file store base directory not configured")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FileSystemStore{baseDir: baseDir}, nil
}

// Save writes the sample atomically: content lands in a temp file in the
// target directory and is renamed into place, so readers never observe a
// partial write.
func (s *FileSystemStore) Save(ctx context.Context, wakeWord, fileName string, content io.Reader) (string, error) {
	key := SampleKey(wakeWord, fileName)
	target := filepath.Join(s.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create sample directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+fileName+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write sample: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("failed to finalize sample: %w", err)
	}
	return key, nil
}

// HealthCheck verifies the base directory is writable
func (s *FileSystemStore) HealthCheck(ctx context.Context) error {
	probe, err := os.CreateTemp(s.baseDir, ".healthz.*")
	if err != nil {
		return fmt.Errorf("file store not writable: %w", err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}
