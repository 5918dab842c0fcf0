// Package photo turns uploaded image bytes into the data URL stored on PersonalInfo.
package photo

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes caps uploads when no limit is configured.
const DefaultMaxBytes int64 = 5 << 20

// Ingest reads an upload and returns it as a "data:<mime>;base64,..." URL.
// Content that is not an image, is empty, or exceeds maxBytes is ignored: ok is false and
// err is nil. err is set only when reading fails.
func Ingest(r io.Reader, maxBytes int64) (dataURL string, ok bool, err error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", false, fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) == 0 || int64(len(data)) > maxBytes {
		return "", false, nil
	}

	mime := mimetype.Detect(data)
	if !IsImage(mime.String()) {
		return "", false, nil
	}

	// drop parameters such as "; charset=utf-8" on SVG
	mediaType, _, _ := strings.Cut(mime.String(), ";")
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), true, nil
}

// IngestFile is Ingest over the file at path.
func IngestFile(path string, maxBytes int64) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to open photo: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Ingest(f, maxBytes)
}

// IsImage reports whether a MIME type is an image type.
func IsImage(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}
