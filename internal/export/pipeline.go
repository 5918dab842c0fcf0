package export

import (
	"context"
	"time"

	"github.com/jonathan/cv-builder/internal/logger"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
	"golang.org/x/sync/semaphore"
)

// Artifact describes one finished export.
type Artifact struct {
	Filename  string    `json:"filename"`
	Location  string    `json:"location"`
	Pages     int       `json:"pages"`
	Bytes     int       `json:"bytes"`
	CreatedAt time.Time `json:"createdAt"`
	// Data is the PDF itself.
	Data []byte `json:"-"`
}

// Exporter runs the export pipeline. Exports through one Exporter run one at a time;
// later calls wait their turn.
type Exporter struct {
	capturer   Capturer
	store      ArtifactStore
	pageWidth  float64
	pageHeight float64
	selector   string
	sem        *semaphore.Weighted
	now        func() time.Time
}

// NewExporter returns an A4 Exporter that captures #cv-content with capturer and keeps
// artifacts in store.
func NewExporter(capturer Capturer, store ArtifactStore) *Exporter {
	return &Exporter{
		capturer:   capturer,
		store:      store,
		pageWidth:  A4Width,
		pageHeight: A4Height,
		selector:   "#" + rendering.TargetID,
		sem:        semaphore.NewWeighted(1),
		now:        time.Now,
	}
}

// Export renders doc, captures it, paginates it onto A4 pages and stores the PDF as filename.
// An empty filename is derived from the document's full name; any other filename must pass
// ValidateFilename. Any pipeline failure returns a single *ExportError and no artifact;
// doc is never modified.
func (e *Exporter) Export(ctx context.Context, doc types.Document, filename string) (*Artifact, error) {
	if filename != "" {
		if err := ValidateFilename(filename); err != nil {
			return nil, err
		}
	}
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, &ExportError{Stage: StageQueue, Cause: err}
	}
	defer e.sem.Release(1)

	if filename == "" {
		filename = Filename(doc.PersonalInfo.FullName)
	}
	log := logger.Logger.With().Str("filename", filename).Logger()
	start := e.now()

	html, err := rendering.RenderDocument(doc)
	if err != nil {
		return nil, &ExportError{Stage: StageRender, Cause: err}
	}

	snap, err := e.capturer.Capture(ctx, html, e.selector)
	if err != nil {
		return nil, &ExportError{Stage: StageCapture, Cause: err}
	}

	layout, err := Paginate(snap.Width, snap.Height, e.pageWidth, e.pageHeight)
	if err != nil {
		return nil, &ExportError{Stage: StagePaginate, Cause: err}
	}

	data, err := ComposePDF(snap, layout)
	if err != nil {
		return nil, &ExportError{Stage: StageCompose, Cause: err}
	}

	location, err := e.store.Put(ctx, filename, data)
	if err != nil {
		return nil, &ExportError{Stage: StageStore, Cause: err}
	}

	log.Info().
		Int("pages", layout.Pages()).
		Int("bytes", len(data)).
		Str("location", location).
		Dur("elapsed", e.now().Sub(start)).
		Msg("export complete")

	return &Artifact{
		Filename:  filename,
		Location:  location,
		Pages:     layout.Pages(),
		Bytes:     len(data),
		CreatedAt: e.now(),
		Data:      data,
	}, nil
}
