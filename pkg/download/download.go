package download

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

// Options configures the download behavior
type Options struct {
	MaxSize       int64         // Maximum body size in bytes (0 = no limit)
	Timeout       time.Duration // Download timeout
	ProgressFunc  ProgressFunc  // Optional progress callback
	UserAgent     string        // User agent string
	ValidateAudio bool          // Validate content-type is audio
}

// ProgressFunc is called during download to report progress
type ProgressFunc func(downloaded, total int64)

// DefaultOptions returns default download options
func DefaultOptions() Options {
	return Options{
		MaxSize:       100 * 1024 * 1024,
		Timeout:       2 * time.Minute,
		UserAgent:     "Scriptify/1.0",
		ValidateAudio: true,
	}
}

// Result is a remote audio file held in memory
type Result struct {
	Data         []byte
	ContentType  string
	Filename     string
	ETag         string
	LastModified time.Time
}

// AudioType returns the declared content type when it names a specific audio
// type, or "" so the caller sniffs the bytes instead
func (r *Result) AudioType() string {
	if strings.HasPrefix(strings.ToLower(r.ContentType), "audio/") {
		return r.ContentType
	}
	return ""
}

// Downloader fetches remote audio files
type Downloader struct {
	client  *http.Client
	options Options
}

// NewDownloader creates a new downloader with the given options
func NewDownloader(options Options) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: options.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  true, // Don't compress audio
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		options: options,
	}
}

// Fetch downloads an http(s) URL into memory
func (d *Downloader) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, apperrors.ValidationError("url", "must be an absolute http or https URL")
	}

	log.Printf("[DEBUG] Starting download from %s", parsed.Redacted())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.options.UserAgent)
	req.Header.Set("Accept", "audio/*,*/*")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "failed to download audio")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Newf(apperrors.ErrCodeValidation, "audio source returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if d.options.ValidateAudio && !isAudioContentType(contentType) {
		return nil, apperrors.InvalidFormat(contentType)
	}

	if d.options.MaxSize > 0 && resp.ContentLength > d.options.MaxSize {
		return nil, tooLarge(d.options.MaxSize)
	}

	data, err := d.read(resp.Body, resp.ContentLength)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Data:        data,
		ContentType: contentType,
		Filename:    filenameFor(parsed, resp.Header.Get("Content-Disposition")),
		ETag:        resp.Header.Get("ETag"),
	}
	if lastMod := resp.Header.Get("Last-Modified"); lastMod != "" {
		if t, err := http.ParseTime(lastMod); err == nil {
			result.LastModified = t
		}
	}

	log.Printf("[DEBUG] Downloaded %d bytes (%s)", len(data), result.Filename)
	return result, nil
}

// read copies the body with optional progress tracking and the size limit
func (d *Downloader) read(src io.Reader, totalSize int64) ([]byte, error) {
	reader := src
	if d.options.ProgressFunc != nil && totalSize > 0 {
		reader = &progressReader{
			reader:   src,
			total:    totalSize,
			callback: d.options.ProgressFunc,
		}
	}

	// Read one byte past the limit to detect oversize bodies without a Content-Length
	if d.options.MaxSize > 0 {
		reader = io.LimitReader(reader, d.options.MaxSize+1)
	}

	var buf bytes.Buffer
	if totalSize > 0 {
		buf.Grow(int(totalSize))
	}
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "failed to download audio")
	}
	if d.options.MaxSize > 0 && int64(buf.Len()) > d.options.MaxSize {
		return nil, tooLarge(d.options.MaxSize)
	}
	return buf.Bytes(), nil
}

func tooLarge(max int64) error {
	return apperrors.ValidationError("url", fmt.Sprintf("audio exceeds %d bytes", max))
}

// filenameFor prefers the Content-Disposition name, then the last path element
func filenameFor(u *url.URL, disposition string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
			return path.Base(params["filename"])
		}
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "download"
	}
	if ext := strings.TrimPrefix(path.Ext(name), "."); ext != "" && !isValidAudioExtension(ext) {
		return strings.TrimSuffix(name, path.Ext(name))
	}
	return name
}

// isAudioContentType checks if content type is audio
func isAudioContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.HasPrefix(contentType, "audio/") ||
		strings.HasPrefix(contentType, "video/webm") ||
		contentType == "application/octet-stream" // Some servers use this for audio
}

// isValidAudioExtension checks if extension is valid for audio files
func isValidAudioExtension(ext string) bool {
	ext = strings.ToLower(ext)
	validExts := []string{"mp3", "m4a", "aac", "ogg", "wav", "flac", "opus", "webm", "mp4"}
	for _, valid := range validExts {
		if ext == valid {
			return true
		}
	}
	return false
}

// progressReader wraps a reader to report progress
type progressReader struct {
	reader     io.Reader
	total      int64
	downloaded int64
	callback   ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.downloaded += int64(n)
		if pr.callback != nil {
			pr.callback(pr.downloaded, pr.total)
		}
	}
	return n, err
}
