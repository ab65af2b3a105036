// Package progress prints download progress as plain log-friendly lines.
//
// It is the fallback display when stderr is not a terminal or when bars are
// disabled. Every download owns a position; lines carry that position so
// concurrent downloads can be told apart.
//
// # Usage
//
//	reporter := progress.NewReporter(progress.Options{Output: os.Stderr})
//	manager := download.NewManager(client, download.WithProgress(reporter))
//
// # Output Format
//
//	[2] server-4.12.1.zip: started (3.50 MiB)
//	[2] server-4.12.1.zip: 50% (1.75 MiB / 3.50 MiB)
//	[2] server-4.12.1.zip: done (3.50 MiB)
//	[3] server-4.12.1.exe: failed: GET https://...: HTTP 404 Not Found
package progress
