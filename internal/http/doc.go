// Package http provides the HTTP client used for the releases API and for
// release asset downloads.
//
// The Client in this package handles:
//   - User-Agent and Accept headers
//   - Response header timeouts that leave long body streams alone
//   - Non-2xx statuses as *StatusError
//   - File downloads with chunked writes and progress tracking
//
// # Basic Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	// Fetch a small file
//	body, err := client.Get(ctx, checksumURL)
//
//	// Download file with progress callback
//	n, err := client.DownloadFile(ctx, assetURL, "/srv/patches/server-4.12.zip", 0, func(written, total int64) {
//	    fmt.Printf("%d of %d bytes\n", written, total)
//	})
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
