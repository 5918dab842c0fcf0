// Package inspect reads back exported PDFs.
package inspect

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Report summarizes an exported PDF.
type Report struct {
	Path  string `json:"path,omitempty"`
	Pages int    `json:"pages"`
	Bytes int64  `json:"bytes"`
}

// Error represents a PDF that could not be opened or read
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("inspect error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("inspect error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CountPDFPages counts the pages of the PDF at path.
func CountPDFPages(path string) (int, error) {
	report, err := InspectFile(path)
	if err != nil {
		return 0, err
	}
	return report.Pages, nil
}

// InspectFile opens the PDF at path and reports its page count and size.
func InspectFile(path string) (*Report, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to open %s", path), Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to stat %s", path), Cause: err}
	}

	return &Report{Path: path, Pages: r.NumPage(), Bytes: info.Size()}, nil
}

// InspectBytes reports on an in-memory PDF.
func InspectBytes(data []byte) (*Report, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &Error{Message: "failed to parse pdf", Cause: err}
	}
	return &Report{Pages: r.NumPage(), Bytes: int64(len(data))}, nil
}
