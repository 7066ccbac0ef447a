package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

const defaultDocumentTitle = "Transcription"

var contentTypes = map[Format]string{
	FormatTXT:  "text/plain; charset=utf-8",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatPDF:  "application/pdf",
	FormatSRT:  "text/plain; charset=utf-8",
	FormatVTT:  "text/vtt; charset=utf-8",
}

// ParseFormat maps a format key to a Format
func ParseFormat(key string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(key)))
	if _, ok := contentTypes[format]; !ok {
		return "", apperrors.UnsupportedFormat(key)
	}
	return format, nil
}

// ContentType returns the MIME type served for a format
func ContentType(format Format) string {
	return contentTypes[format]
}

func renderTXT(doc Document) []byte {
	if title := doc.Title(); title != "" {
		return []byte(title + "\n\n" + doc.Text)
	}
	return []byte(doc.Text)
}

// renderCues writes numbered cue blocks separated by a blank line
func renderCues(doc Document, format Format, stamp func(float64) string) ([]byte, error) {
	if len(doc.Segments) == 0 {
		return nil, apperrors.MissingSegments(strings.ToUpper(string(format)))
	}

	var buf bytes.Buffer
	for i, seg := range doc.Segments {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "%d\n%s --> %s\n%s\n", i+1, stamp(seg.Start), stamp(seg.End), strings.TrimSpace(seg.Text))
	}
	return buf.Bytes(), nil
}

func renderSRT(doc Document) ([]byte, error) {
	return renderCues(doc, FormatSRT, SRTTimestamp)
}

func renderVTT(doc Document) ([]byte, error) {
	body, err := renderCues(doc, FormatVTT, VTTTimestamp)
	if err != nil {
		return nil, err
	}
	return append([]byte("WEBVTT\n\n"), body...), nil
}

const documentHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{- if .Print}}
@media print { body { margin: 20px; } }
{{- end}}
body { font-family: Arial, sans-serif; margin: 40px; }
.header { font-size: 24px; font-weight: bold; margin-bottom: 20px; }
.content { line-height: 1.6; }
.metadata { color: #666; font-size: 12px; margin-top: 20px; }
</style>
</head>
<body>
<div class="header">{{.Title}}</div>
<div class="content">{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</div>
{{- with .Meta}}
<div class="metadata">
<p>Duration: {{.Duration}}</p>
<p>Language: {{.Language}}</p>
<p>Confidence: {{.Confidence}}</p>
<p>Created: {{.Created}}</p>
</div>
{{- end}}
</body>
</html>
`

var documentTemplate = template.Must(template.New("document").Parse(documentHTML))

type documentView struct {
	Title string
	Print bool
	Lines []string
	Meta  *metadataView
}

type metadataView struct {
	Duration   string
	Language   string
	Confidence string
	Created    string
}

func newMetadataView(meta *Metadata) *metadataView {
	if meta == nil {
		return nil
	}

	view := &metadataView{
		Duration:   formatDuration(meta.Duration),
		Language:   "Unknown",
		Confidence: "Unknown",
		Created:    "Unknown",
	}
	if meta.Language != "" {
		view.Language = meta.Language
	}
	if meta.Confidence != nil && *meta.Confidence > 0 {
		view.Confidence = fmt.Sprintf("%.1f%%", *meta.Confidence*100)
	}
	if meta.CreatedAt != nil {
		view.Created = meta.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return view
}

// renderDocument produces the styled markup shared by the docx and pdf formats
func renderDocument(doc Document, printable bool) ([]byte, error) {
	title := doc.Title()
	if title == "" {
		title = defaultDocumentTitle
	}

	view := documentView{
		Title: title,
		Print: printable,
		Lines: strings.Split(doc.Text, "\n"),
		Meta:  newMetadataView(doc.Metadata),
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}
