package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vikas-0-3/farmer/internal/adapter/storage"
)

// parseForm accepts both multipart and urlencoded bodies so the
// image-bearing routes keep working without a file part.
func parseForm(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
			return fmt.Errorf("parse multipart form: %w", err)
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

// saveUpload stores the file under field, if one was sent. The second
// return reports whether anything was uploaded at all, so callers can
// distinguish "no file" from "empty path".
func saveUpload(r *http.Request, field, prefix string, store storage.Store) (string, bool, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read form file %q: %w", field, err)
	}
	defer file.Close()

	if err := storage.ValidateImage(header.Header.Get("Content-Type"), header.Size); err != nil {
		return "", false, err
	}

	path, err := store.Save(r.Context(), prefix, header.Filename, file, header.Size)
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}
