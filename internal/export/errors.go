// Package export turns a CV Document into a paginated A4 PDF.
//
// The pipeline renders the preview HTML, captures #cv-content as a PNG, tiles that image over
// as many pages as its scaled height needs, and hands the PDF to an ArtifactStore.
package export

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned by Paginate for non-positive image or page sizes.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// ErrInvalidFilename is returned for an export filename that is not a plain file name.
var ErrInvalidFilename = errors.New("invalid export filename")

// ErrTargetNotFound is returned when the element to capture is not in the page.
var ErrTargetNotFound = errors.New("capture target not found")

// Export stages, in pipeline order.
const (
	StageQueue    = "queue"
	StageRender   = "render"
	StageCapture  = "capture"
	StagePaginate = "paginate"
	StageCompose  = "compose"
	StageStore    = "store"
)

// ExportError is the single error an export returns. Stage names where it stopped.
type ExportError struct {
	Stage string
	Cause error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed at %s: %v", e.Stage, e.Cause)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// CaptureError represents a headless browser failure
type CaptureError struct {
	Message string
	Cause   error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("capture error: %s", e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}
