package export

import (
	"context"
	"time"

	"github.com/killallgit/scriptify/internal/models"
)

// Format is an export format key
type Format string

const (
	FormatTXT  Format = "txt"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
)

// Formats lists every supported format in a stable order
var Formats = []Format{FormatTXT, FormatDOCX, FormatPDF, FormatSRT, FormatVTT}

// Metadata is optional document information shown by the document formats
type Metadata struct {
	Title      string     `json:"title,omitempty"`
	Duration   *float64   `json:"duration,omitempty"`
	Language   string     `json:"language,omitempty"`
	Confidence *float64   `json:"confidence,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// Document is the input to every renderer. Renderers never modify it.
type Document struct {
	Text     string           `json:"text"`
	Segments []models.Segment `json:"segments,omitempty"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

// Title returns the metadata title, empty when there is none
func (d Document) Title() string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata.Title
}

// Output is a rendered file ready to be downloaded or written
type Output struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ExportService renders transcripts into files
type ExportService interface {
	// Render produces the raw bytes of one format
	Render(doc Document, format Format) ([]byte, error)

	// Export renders one format and names it <base>.<ext>
	Export(doc Document, format Format, baseName string) (*Output, error)

	// Bundle renders every requested format into <base>-export.zip
	Bundle(doc Document, formats []Format, baseName string) (*Output, error)

	// Save writes an output into dir and returns the written path
	Save(ctx context.Context, out *Output, dir string) (string, error)
}
