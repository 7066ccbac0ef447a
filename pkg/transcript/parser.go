package transcript

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/killallgit/scriptify/internal/models"
)

// TranscriptFormat represents the format of an imported transcript
type TranscriptFormat string

const (
	FormatVTT  TranscriptFormat = "vtt"
	FormatSRT  TranscriptFormat = "srt"
	FormatJSON TranscriptFormat = "json"
	FormatText TranscriptFormat = "text"
)

var (
	vttTimestampRegex = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}\.\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}\.\d{3})`)
	srtTimestampRegex = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})`)
	sequenceRegex     = regexp.MustCompile(`^\d+$`)
	voiceTagRegex     = regexp.MustCompile(`<v[^>]*>`)
)

// Transcript represents a parsed transcript
type Transcript struct {
	Format   TranscriptFormat
	Segments []models.Segment
	FullText string
	Language string
	Duration float64 // seconds, end of last segment
}

// Parser handles parsing different transcript formats
type Parser struct{}

// NewParser creates a new transcript parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses transcript content based on its format
func (p *Parser) Parse(content string, format TranscriptFormat) (*Transcript, error) {
	var (
		transcript *Transcript
		err        error
	)

	switch format {
	case FormatVTT:
		transcript = p.parseCues(content, FormatVTT, vttTimestampRegex)
	case FormatSRT:
		transcript = p.parseCues(content, FormatSRT, srtTimestampRegex)
	case FormatJSON:
		transcript, err = p.parseJSON(content)
	case FormatText:
		transcript = &Transcript{Format: FormatText, FullText: strings.TrimSpace(content)}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	if n := len(transcript.Segments); n > 0 {
		transcript.Duration = transcript.Segments[n-1].End
	}
	return transcript, nil
}

// parseCues handles both SRT and WebVTT, which differ only in header and decimal separator
func (p *Parser) parseCues(content string, format TranscriptFormat, timestamps *regexp.Regexp) *Transcript {
	transcript := &Transcript{Format: format, Segments: []models.Segment{}}

	var (
		current  *models.Segment
		text     strings.Builder
		fullText []string
	)

	flush := func() {
		if current != nil && text.Len() > 0 {
			current.Text = strings.TrimSpace(text.String())
			transcript.Segments = append(transcript.Segments, *current)
			fullText = append(fullText, current.Text)
		}
		current = nil
		text.Reset()
	}

	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			flush()
		case format == FormatVTT && (strings.HasPrefix(line, "WEBVTT") || strings.HasPrefix(line, "NOTE")):
			continue
		case current == nil && sequenceRegex.MatchString(line):
			continue
		default:
			if matches := timestamps.FindStringSubmatch(line); matches != nil {
				flush()
				current = &models.Segment{
					Start: parseTimestamp(matches[1]),
					End:   parseTimestamp(matches[2]),
				}
				continue
			}
			if current == nil {
				continue
			}
			if text.Len() > 0 {
				text.WriteString(" ")
			}
			text.WriteString(removeVTTTags(line))
		}
	}
	flush()

	transcript.FullText = strings.Join(fullText, " ")
	return transcript
}

type jsonSegment struct {
	Start     float64 `json:"start"`
	StartTime float64 `json:"startTime"`
	End       float64 `json:"end"`
	EndTime   float64 `json:"endTime"`
	Text      string  `json:"text"`
	Body      string  `json:"body"`
}

// parseJSON accepts a bare segment array or an object with text/language/segments
func (p *Parser) parseJSON(content string) (*Transcript, error) {
	transcript := &Transcript{Format: FormatJSON, Segments: []models.Segment{}}

	var segments []jsonSegment
	if err := json.Unmarshal([]byte(content), &segments); err != nil {
		var obj struct {
			Text     string        `json:"text"`
			Language string        `json:"language"`
			Segments []jsonSegment `json:"segments"`
		}
		if err := json.Unmarshal([]byte(content), &obj); err != nil {
			return nil, fmt.Errorf("failed to parse JSON transcript: %w", err)
		}
		segments = obj.Segments
		transcript.FullText = strings.TrimSpace(obj.Text)
		transcript.Language = obj.Language
	}

	var fullText []string
	for _, seg := range segments {
		start := seg.Start
		if start == 0 {
			start = seg.StartTime
		}
		end := seg.End
		if end == 0 {
			end = seg.EndTime
		}
		text := seg.Text
		if text == "" {
			text = seg.Body
		}

		segment := models.Segment{Start: start, End: end, Text: strings.TrimSpace(text)}
		transcript.Segments = append(transcript.Segments, segment)
		fullText = append(fullText, segment.Text)
	}

	if transcript.FullText == "" {
		transcript.FullText = strings.Join(fullText, " ")
	}
	return transcript, nil
}

// parseTimestamp parses HH:MM:SS.mmm or HH:MM:SS,mmm into seconds
func parseTimestamp(timestamp string) float64 {
	timestamp = strings.Replace(timestamp, ",", ".", 1)
	parts := strings.Split(timestamp, ":")
	if len(parts) != 3 {
		return 0
	}

	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	seconds, _ := strconv.ParseFloat(parts[2], 64)

	return float64(hours*3600+minutes*60) + seconds
}

// removeVTTTags strips voice and styling tags from cue text
func removeVTTTags(text string) string {
	text = voiceTagRegex.ReplaceAllString(text, "")
	for _, tag := range []string{"</v>", "<i>", "</i>", "<b>", "</b>", "<u>", "</u>"} {
		text = strings.ReplaceAll(text, tag, "")
	}
	return strings.TrimSpace(text)
}

// ToPlainText returns the transcript body without timing
func (t *Transcript) ToPlainText() string {
	if t.FullText != "" {
		return t.FullText
	}

	texts := make([]string, 0, len(t.Segments))
	for _, segment := range t.Segments {
		texts = append(texts, segment.Text)
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

// ToResult converts an imported transcript into a transcription result
func (t *Transcript) ToResult(source string) *models.TranscriptionResult {
	result := &models.TranscriptionResult{
		Text:       t.ToPlainText(),
		Confidence: 1,
		Language:   t.Language,
		Backend:    source,
	}
	if len(t.Segments) > 0 {
		result.Segments = t.Segments
	}
	return result
}
