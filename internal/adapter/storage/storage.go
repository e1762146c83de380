package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize caps image uploads at 10 MB.
const MaxUploadSize = 10 << 20

var (
	ErrNotAnImage = errors.New("only image uploads are allowed")
	ErrTooLarge   = errors.New("uploaded file exceeds the size limit")
)

// Store persists uploaded images and returns the path clients use to
// fetch them back.
type Store interface {
	Save(ctx context.Context, prefix, originalName string, data io.Reader, size int64) (string, error)
}

// ValidateImage enforces the upload contract: image/* content type,
// at most MaxUploadSize bytes.
func ValidateImage(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}
	if size > MaxUploadSize {
		return ErrTooLarge
	}
	return nil
}

// objectName builds a unique stored name, keeping the original
// extension: "user-<uuid>.jpg".
func objectName(prefix, originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s-%s%s", prefix, uuid.New().String(), ext)
}
