package workspace

import (
	"context"

	"github.com/killallgit/scriptify/internal/services/export"
)

// ExportOptions controls what goes into an export
type ExportOptions struct {
	Filename        string
	Title           string
	IncludeMetadata bool
}

// Document builds the export input from the current transcript. Segments of
// the last result are attached only while the transcript still matches it.
func (w *Workspace) Document(opts ExportOptions) export.Document {
	text := w.store.Transcript()
	doc := export.Document{Text: text}

	result := w.Result()
	if result != nil && result.Text == text && result.HasSegments() {
		doc.Segments = result.Segments
	}

	title := opts.Title
	current := w.store.Current()
	if title == "" && opts.IncludeMetadata && current != nil {
		title = current.Title
	}

	if !opts.IncludeMetadata {
		if title != "" {
			doc.Metadata = &export.Metadata{Title: title}
		}
		return doc
	}

	meta := &export.Metadata{Title: title}
	if audio := w.capture.Artifact(); audio != nil && audio.Duration > 0 {
		duration := audio.Duration
		meta.Duration = &duration
	}
	if result != nil {
		meta.Language = result.Language
		confidence := result.Confidence
		meta.Confidence = &confidence
	}
	created := w.now()
	if current != nil {
		created = current.CreatedAt
	}
	meta.CreatedAt = &created
	doc.Metadata = meta
	return doc
}

// Export renders the current transcript in one format. Export failures are
// returned to the caller and never touch the current error or the store.
func (w *Workspace) Export(format export.Format, opts ExportOptions) (*export.Output, error) {
	return w.exporter.Export(w.Document(opts), format, opts.Filename)
}

// ExportBundle renders several formats into one archive
func (w *Workspace) ExportBundle(formats []export.Format, opts ExportOptions) (*export.Output, error) {
	return w.exporter.Bundle(w.Document(opts), formats, opts.Filename)
}

// SaveExport writes an output into the configured export directory
func (w *Workspace) SaveExport(ctx context.Context, out *export.Output) (string, error) {
	return w.exporter.Save(ctx, out, w.cfg.OutputDir)
}
