package export

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/killallgit/scriptify/internal/models"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
	"github.com/killallgit/scriptify/pkg/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)

func newTestService() *Service {
	return NewService(WithNow(func() time.Time { return fixedNow }))
}

func twoSegments() []models.Segment {
	return []models.Segment{
		{Start: 0, End: 1.5, Text: "hi"},
		{Start: 1.5, End: 3, Text: "there"},
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		srt     string
		vtt     string
	}{
		{0, "00:00:00,000", "00:00:00.000"},
		{1.5, "00:00:01,500", "00:00:01.500"},
		{59.9999, "00:00:59,999", "00:00:59.999"},
		{61.25, "00:01:01,250", "00:01:01.250"},
		{3725.5, "01:02:05,500", "01:02:05.500"},
		{-3, "00:00:00,000", "00:00:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.srt, func(t *testing.T) {
			assert.Equal(t, tt.srt, SRTTimestamp(tt.seconds))
			assert.Equal(t, tt.vtt, VTTTimestamp(tt.seconds))
		})
	}
}

func TestRender_SRT(t *testing.T) {
	svc := newTestService()

	data, err := svc.Render(Document{Text: "hi there", Segments: twoSegments()}, FormatSRT)
	require.NoError(t, err)

	expected := "1\n00:00:00,000 --> 00:00:01,500\nhi\n\n2\n00:00:01,500 --> 00:00:03,000\nthere\n"
	assert.Equal(t, expected, string(data))
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n\n"), 2)
}

func TestRender_VTT(t *testing.T) {
	svc := newTestService()

	data, err := svc.Render(Document{Segments: twoSegments()}, FormatVTT)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "WEBVTT\n\n1\n00:00:00.000 --> 00:00:01.500\nhi\n"))
}

func TestRender_TimestampedFormatsRequireSegments(t *testing.T) {
	svc := newTestService()
	docs := map[string]Document{
		"nil segments":   {Text: "hello"},
		"empty segments": {Text: "hello", Segments: []models.Segment{}},
	}

	for name, doc := range docs {
		for _, format := range []Format{FormatSRT, FormatVTT} {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				data, err := svc.Render(doc, format)
				assert.Nil(t, data)
				assert.True(t, apperrors.Is(err, apperrors.ErrCodeMissingSegments))
			})
		}
	}
}

func TestRender_TXT(t *testing.T) {
	svc := newTestService()

	t.Run("no title is the raw text", func(t *testing.T) {
		data, err := svc.Render(Document{Text: "hello world"}, FormatTXT)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(data))
	})

	t.Run("title line then blank line", func(t *testing.T) {
		data, err := svc.Render(Document{Text: "body", Metadata: &Metadata{Title: "Standup"}}, FormatTXT)
		require.NoError(t, err)
		assert.Equal(t, "Standup\n\nbody", string(data))
	})
}

func TestRender_TXTRoundTrip(t *testing.T) {
	svc := newTestService()
	texts := []string{
		"hello world",
		"line one\nline two\n\nthird paragraph",
		"  padded  ",
		"unicode: café ✓",
		"",
	}

	for _, text := range texts {
		data, err := svc.Render(Document{Text: text}, FormatTXT)
		require.NoError(t, err)
		assert.Equal(t, text, string(data))
	}

	parsed, err := transcript.NewParser().Parse(string(must(svc.Render(Document{Text: "hello world"}, FormatTXT))), transcript.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "hello world", parsed.ToPlainText())
}

func TestRender_SubtitleRoundTrip(t *testing.T) {
	svc := newTestService()
	segments := []models.Segment{
		{Start: 0, End: 2.25, Text: "first cue"},
		{Start: 2.25, End: 65.5, Text: "second cue"},
	}
	parser := transcript.NewParser()

	for _, tc := range []struct {
		format Format
		parse  transcript.TranscriptFormat
	}{
		{FormatSRT, transcript.FormatSRT},
		{FormatVTT, transcript.FormatVTT},
	} {
		t.Run(string(tc.format), func(t *testing.T) {
			data, err := svc.Render(Document{Segments: segments}, tc.format)
			require.NoError(t, err)

			parsed, err := parser.Parse(string(data), tc.parse)
			require.NoError(t, err)
			require.Len(t, parsed.Segments, 2)
			for i := range segments {
				assert.InDelta(t, segments[i].Start, parsed.Segments[i].Start, 0.001)
				assert.InDelta(t, segments[i].End, parsed.Segments[i].End, 0.001)
				assert.Equal(t, segments[i].Text, parsed.Segments[i].Text)
			}
		})
	}
}

func TestRender_Documents(t *testing.T) {
	svc := newTestService()
	duration := 125.0
	confidence := 0.953
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	doc := Document{
		Text: "line <one>\nline two",
		Metadata: &Metadata{
			Title:      "Board & Review",
			Duration:   &duration,
			Language:   "en",
			Confidence: &confidence,
			CreatedAt:  &created,
		},
	}

	docx, err := svc.Render(doc, FormatDOCX)
	require.NoError(t, err)
	html := string(docx)
	assert.Contains(t, html, "<title>Board &amp; Review</title>")
	assert.Contains(t, html, "line &lt;one&gt;<br>line two")
	assert.Contains(t, html, "Duration: 2:05")
	assert.Contains(t, html, "Confidence: 95.3%")
	assert.Contains(t, html, "Created: 2024-01-02 03:04:05")
	assert.NotContains(t, html, "@media print")

	pdf, err := svc.Render(doc, FormatPDF)
	require.NoError(t, err)
	assert.Contains(t, string(pdf), "@media print")

	bare, err := svc.Render(Document{Text: "plain"}, FormatDOCX)
	require.NoError(t, err)
	assert.Contains(t, string(bare), `<div class="header">Transcription</div>`)
	assert.NotContains(t, string(bare), `class="metadata"`)
}

func TestRender_DoesNotMutateDocument(t *testing.T) {
	svc := newTestService()
	doc := Document{Text: "  keep  ", Segments: []models.Segment{{Start: 0, End: 1, Text: "  spaced  "}}}

	for _, format := range Formats {
		_, err := svc.Render(doc, format)
		require.NoError(t, err)
	}
	assert.Equal(t, "  keep  ", doc.Text)
	assert.Equal(t, "  spaced  ", doc.Segments[0].Text)
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat(" SRT ")
	require.NoError(t, err)
	assert.Equal(t, FormatSRT, format)

	_, err = ParseFormat("rtf")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeUnsupportedFormat))

	_, err = newTestService().Render(Document{Text: "x"}, Format("rtf"))
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeUnsupportedFormat))
}

func TestExport_FileNames(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		base string
		want string
	}{
		{"", "transcription-1709980200000.txt"},
		{"meeting", "meeting.txt"},
		{"meeting.txt", "meeting.txt"},
		{"notes.v2", "notes.v2.txt"},
		{"../../etc/passwd", "passwd.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out, err := svc.Export(Document{Text: "hello world"}, FormatTXT, tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Filename)
			assert.Equal(t, "text/plain; charset=utf-8", out.ContentType)
		})
	}
}

func TestBundle(t *testing.T) {
	svc := newTestService()
	doc := Document{Text: "hi there", Segments: twoSegments()}

	out, err := svc.Bundle(doc, []Format{FormatTXT, FormatSRT, FormatTXT, FormatVTT}, "call")
	require.NoError(t, err)
	assert.Equal(t, "call-export.zip", out.Filename)
	assert.Equal(t, "application/zip", out.ContentType)

	reader, err := zip.NewReader(bytes.NewReader(out.Data), int64(len(out.Data)))
	require.NoError(t, err)

	names := make([]string, 0, len(reader.File))
	contents := map[string]string{}
	for _, f := range reader.File {
		names = append(names, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		contents[f.Name] = string(body)
	}

	assert.Equal(t, []string{"call.txt", "call.srt", "call.vtt"}, names)
	assert.Equal(t, "hi there", contents["call.txt"])
	assert.Equal(t, string(must(svc.Render(doc, FormatSRT))), contents["call.srt"])
}

func TestBundle_FailsWithoutSegments(t *testing.T) {
	out, err := newTestService().Bundle(Document{Text: "hello"}, []Format{FormatTXT, FormatSRT}, "x")
	assert.Nil(t, out)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeMissingSegments))
}

func TestSave(t *testing.T) {
	svc := newTestService()
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	out, err := svc.Export(Document{Text: "hello world"}, FormatTXT, "scenario")
	require.NoError(t, err)

	path, err := svc.Save(context.Background(), out, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scenario.txt"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(written))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Save(ctx, out, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func must(data []byte, err error) []byte {
	if err != nil {
		panic(err)
	}
	return data
}
