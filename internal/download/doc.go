// Package download turns selected releases into download tasks and runs
// them concurrently.
//
// # Manager
//
// The Manager coordinates the download phase:
//
//  1. Build one DownloadSpec per release and enabled artifact kind
//  2. Start one task per spec, optionally capped
//  3. Wait for every task to reach a terminal state
//  4. Report every outcome, successes and failures alike
//
// # Basic Usage
//
//	manager := download.NewManager(client,
//	    download.WithLogger(logger),
//	    download.WithProgress(display),
//	)
//
//	specs := manager.BuildSpecs(selected.Releases(), true, true, "/srv/patches")
//	result := manager.Run(ctx, specs)
//	if err := result.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Failure isolation
//
// A failing task never cancels its siblings. Run always waits for all of
// them and Result.Err returns a *RunError that unwraps to every individual
// *DownloadError.
//
// # Progress Tracking
//
// Progress is reported through a ProgressSink keyed by the spec's position
// in the list handed to Run:
//
//	type ProgressSink interface {
//	    Start(position int, name string, total int64)
//	    Advance(position int, written, total int64)
//	    Finish(position int, err error)
//	}
//
// Sinks are called from many goroutines and must serialise their own output.
package download
