package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const snapshotImageName = "cv-snapshot"

// ComposePDF writes a portrait PDF in millimetres with one page per layout offset.
// Every page draws the full snapshot at (0, offset) scaled to the layout image size,
// so each page shows the next page-height window of the capture.
func ComposePDF(snap *Snapshot, layout Layout) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("compose: nil snapshot")
	}
	if layout.Pages() == 0 {
		return nil, fmt.Errorf("compose: layout has no pages")
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("cv-builder", true)

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(snapshotImageName, opt, snap.Reader())
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("compose: failed to register snapshot: %w", err)
	}

	for _, offset := range layout.Offsets {
		pdf.AddPage()
		pdf.ImageOptions(snapshotImageName, 0, offset, layout.ImageWidth, layout.ImageHeight, false, opt, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("compose: failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
