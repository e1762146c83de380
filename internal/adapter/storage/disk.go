package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/vikas-0-3/farmer/internal/platform/logger"
)

// DiskStore writes uploads to a local directory served read-only under
// a fixed URL prefix.
type DiskStore struct {
	dir       string
	urlPrefix string
	log       logger.Logger
}

func NewDiskStore(dir, urlPrefix string, log logger.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, urlPrefix: urlPrefix, log: log}, nil
}

func (s *DiskStore) Save(ctx context.Context, prefix, originalName string, data io.Reader, size int64) (string, error) {
	name := objectName(prefix, originalName)
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file %s: %w", dst, err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(data, MaxUploadSize+1))
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write upload file %s: %w", dst, err)
	}
	if written > MaxUploadSize {
		_ = os.Remove(dst)
		return "", ErrTooLarge
	}

	s.log.Debugf("stored upload %s (%d bytes)", dst, written)
	return path.Join(s.urlPrefix, name), nil
}
