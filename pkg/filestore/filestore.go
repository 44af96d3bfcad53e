package filestore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ariahq/aria/pkg/config"
)

// SampleStore persists wake word sample audio
type SampleStore interface {
	// Save writes the sample under the wake word's directory and returns
	// the storage key
	Save(ctx context.Context, wakeWord, fileName string, content io.Reader) (string, error)

	// HealthCheck verifies the backend is reachable and writable
	HealthCheck(ctx context.Context) error
}

// SampleKey builds the storage key for a sample. The wake word name is kept
// verbatim as the directory segment; training tooling locates samples by the
// exact configured name.
func SampleKey(wakeWord, fileName string) string {
	return path.Join("wake_word", strings.TrimSpace(wakeWord), fileName)
}

// New selects a backend from configuration
func New(cfg config.FileStoreConfig) (SampleStore, error) {
	switch cfg.Type {
	case "filesystem":
		return NewFileSystemStore(cfg.DataDir)
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown file store type %q", cfg.Type)
	}
}
