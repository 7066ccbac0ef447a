package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const zipContentType = "application/zip"

// Service implements ExportService
type Service struct {
	now func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithNow injects the time source used for default file names and archive entries
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an export service
func NewService(opts ...Option) *Service {
	s := &Service{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render implements ExportService
func (s *Service) Render(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatTXT:
		return renderTXT(doc), nil
	case FormatDOCX:
		return renderDocument(doc, false)
	case FormatPDF:
		return renderDocument(doc, true)
	case FormatSRT:
		return renderSRT(doc)
	case FormatVTT:
		return renderVTT(doc)
	default:
		_, err := ParseFormat(string(format))
		return nil, err
	}
}

// Export implements ExportService
func (s *Service) Export(doc Document, format Format, baseName string) (*Output, error) {
	data, err := s.Render(doc, format)
	if err != nil {
		return nil, err
	}

	return &Output{
		Filename:    s.baseName(baseName) + "." + string(format),
		ContentType: ContentType(format),
		Data:        data,
	}, nil
}

// Bundle implements ExportService. Repeated formats are written once and
// entries follow the order requested. Any failing format fails the bundle.
func (s *Service) Bundle(doc Document, formats []Format, baseName string) (*Output, error) {
	base := s.baseName(baseName)
	formats = dedupe(formats)
	if len(formats) == 0 {
		formats = []Format{FormatTXT}
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	modified := s.now()

	for _, format := range formats {
		data, err := s.Render(doc, format)
		if err != nil {
			return nil, err
		}

		header := &zip.FileHeader{
			Name:     base + "." + string(format),
			Method:   zip.Deflate,
			Modified: modified,
		}
		writer, err := archive.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", header.Name, err)
		}
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", header.Name, err)
		}
	}

	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	log.Printf("[DEBUG] Bundled %d format(s) into %s-export.zip", len(formats), base)
	return &Output{
		Filename:    base + "-export.zip",
		ContentType: zipContentType,
		Data:        buf.Bytes(),
	}, nil
}

// Save implements ExportService
func (s *Service) Save(ctx context.Context, out *Output, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(out.Filename))
	if err := os.WriteFile(path, out.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	log.Printf("[INFO] Wrote export %s (%d bytes)", path, len(out.Data))
	return path, nil
}

// baseName trims a caller supplied name or falls back to transcription-<unix millis>
func (s *Service) baseName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if _, ok := contentTypes[Format(strings.ToLower(ext))]; ok || ext == "zip" {
		name = strings.TrimSuffix(name, "."+ext)
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fmt.Sprintf("transcription-%d", s.now().UnixMilli())
	}
	return name
}

func dedupe(formats []Format) []Format {
	seen := make(map[Format]bool, len(formats))
	out := make([]Format, 0, len(formats))
	for _, f := range formats {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
