package export

import (
	"fmt"
	"math"
)

// A4 page size in millimetres.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

// epsilon absorbs float error so an exact multiple of the page height does not spill a page.
const epsilon = 1e-6

// Layout places one scaled image on consecutive pages.
type Layout struct {
	PageWidth  float64
	PageHeight float64
	// ImageWidth and ImageHeight are the placed image size in page units.
	ImageWidth  float64
	ImageHeight float64
	// Offsets holds the vertical image offset for each page; page k is at -k*PageHeight.
	Offsets []float64
}

// Pages returns the number of pages in the layout.
func (l Layout) Pages() int {
	return len(l.Offsets)
}

// Paginate scales a captured image to the page width and slices it into page-height windows.
// The first page places the image at 0; while image remains below the current window another
// page is added with the image shifted up by exactly one page height.
func Paginate(capturedWidth, capturedHeight int, pageWidth, pageHeight float64) (Layout, error) {
	if capturedWidth <= 0 || capturedHeight <= 0 || pageWidth <= 0 || pageHeight <= 0 {
		return Layout{}, fmt.Errorf("%w: image %dx%d, page %.2fx%.2f",
			ErrInvalidDimensions, capturedWidth, capturedHeight, pageWidth, pageHeight)
	}

	scaledHeight := float64(capturedHeight) * pageWidth / float64(capturedWidth)
	layout := Layout{
		PageWidth:   pageWidth,
		PageHeight:  pageHeight,
		ImageWidth:  pageWidth,
		ImageHeight: scaledHeight,
		Offsets:     make([]float64, 0, int(math.Ceil(scaledHeight/pageHeight))),
	}

	remaining := scaledHeight
	for k := 0; ; k++ {
		layout.Offsets = append(layout.Offsets, -float64(k)*pageHeight)
		remaining -= pageHeight
		if remaining <= epsilon {
			break
		}
	}
	return layout, nil
}
