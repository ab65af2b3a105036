package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	ioutils "github.com/handiism/ds-patches-downloader/internal/io"
)

// DefaultUserAgent is sent when Options.UserAgent is empty.
const DefaultUserAgent = "ds-patches-downloader"

// DefaultChunkSize is the copy buffer used by DownloadFile when none is given.
const DefaultChunkSize = 64 * 1024

// Options configures the HTTP client.
type Options struct {
	// UserAgent is sent with every request.
	// Default: DefaultUserAgent
	UserAgent string

	// HeaderTimeout bounds the wait for response headers. Bodies are not
	// bounded so large artifacts can stream for as long as they need.
	// Default: 30s
	HeaderTimeout time.Duration

	// MaxIdleConnsPerHost sets the maximum idle connections per host.
	// Concurrent downloads usually hit the same release host.
	// Default: 32
	MaxIdleConnsPerHost int
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:           DefaultUserAgent,
		HeaderTimeout:       30 * time.Second,
		MaxIdleConnsPerHost: 32,
	}
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %s", e.URL, e.Status)
}

// Client wraps HTTP operations for the releases API and release assets.
//
// Client provides:
//   - Configured User-Agent header
//   - Response header timeout without limiting body streaming
//   - Non-2xx statuses reported as *StatusError
//   - File download with chunked writes and progress tracking
//
// Example usage:
//
//	client := NewClient(DefaultOptions())
//
//	// Fetch an API page
//	body, err := client.GetWithAccept(ctx, pageURL, "application/vnd.github+json")
//
//	// Download file with progress
//	err = client.DownloadFile(ctx, assetURL, "/srv/patches/server-4.12.zip", 64*1024, func(written, total int64) {
//	    fmt.Printf("%d / %d\n", written, total)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client with the given options.
// Zero fields fall back to DefaultOptions.
func NewClient(opts Options) *Client {
	def := DefaultOptions()
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.HeaderTimeout <= 0 {
		opts.HeaderTimeout = def.HeaderTimeout
	}
	if opts.MaxIdleConnsPerHost <= 0 {
		opts.MaxIdleConnsPerHost = def.MaxIdleConnsPerHost
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = opts.MaxIdleConnsPerHost
	transport.ResponseHeaderTimeout = opts.HeaderTimeout

	return &Client{
		httpClient: &http.Client{Transport: transport},
		userAgent:  opts.UserAgent,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Open performs a GET request and returns the response with an unread body.
//
// The caller must close the response body. A non-2xx status is returned as
// *StatusError and the body is closed.
func (c *Client) Open(ctx context.Context, url string) (*http.Response, error) {
	return c.open(ctx, url, "")
}

func (c *Client) open(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}

	return resp, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 2xx (*StatusError)
//   - Reading the body fails
//
// Example:
//
//	md5, err := client.Get(ctx, "https://example.com/server-4.12.zip.md5")
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.GetWithAccept(ctx, url, "")
}

// GetWithAccept is Get with an explicit Accept header.
func (c *Client) GetWithAccept(ctx context.Context, url, accept string) ([]byte, error) {
	resp, err := c.open(ctx, url, accept)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// DownloadFile downloads a file to the specified path with optional progress callback.
//
// The request is issued first; the destination is only created (or
// truncated) once the server answered with a 2xx status. The body is then
// read in chunkSize pieces and every piece is written before the next one is
// read.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - chunkSize: Read size in bytes; DefaultChunkSize when <= 0
//   - onProgress: Optional callback called with (bytesWritten, contentLength).
//     contentLength is -1 when the server did not send one.
//
// Returns the number of bytes written.
//
// Example:
//
//	n, err := client.DownloadFile(ctx, assetURL, "/srv/patches/server-4.12.zip", 0, func(written, total int64) {
//	    if total > 0 {
//	        fmt.Printf("%.1f%%\r", float64(written)/float64(total)*100)
//	    }
//	})
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, chunkSize int, onProgress func(written, total int64)) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	resp, err := c.Open(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	file, err := ioutils.CreateFile(destPath)
	if err != nil {
		return 0, err
	}

	pw := &ProgressWriter{
		Writer:   file,
		Total:    resp.ContentLength,
		OnUpdate: onProgress,
	}

	// ProgressWriter hides io.ReaderFrom, so CopyBuffer reads at most
	// chunkSize bytes per Write.
	n, err := io.CopyBuffer(pw, resp.Body, make([]byte, chunkSize))
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return n, err
}
