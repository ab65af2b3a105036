package download

// ProgressSink receives progress of running downloads.
//
// Calls for one position arrive in order Start, Advance..., Finish. Calls for
// different positions interleave freely and come from different goroutines.
type ProgressSink interface {
	// Start announces a task. total is the expected size of the artifact in
	// bytes, or 0 when unknown.
	Start(position int, name string, total int64)

	// Advance reports the cumulative number of bytes written. total may be
	// refined once the server reported a Content-Length.
	Advance(position int, written, total int64)

	// Finish marks the task terminal. err is nil on success.
	Finish(position int, err error)
}

// NopSink discards all progress.
type NopSink struct{}

func (NopSink) Start(int, string, int64)  {}
func (NopSink) Advance(int, int64, int64) {}
func (NopSink) Finish(int, error)         {}
