package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Options configures the progress reporter.
type Options struct {
	// Output is where to write progress lines.
	// Default: os.Stderr
	Output io.Writer

	// Step is the percentage between two progress lines of one download.
	// Default: 25
	Step int
}

type row struct {
	name     string
	total    int64
	written  int64
	reported int
}

// Reporter writes one line per progress milestone of each download.
//
// Reporter is safe for concurrent use; lines are never interleaved.
type Reporter struct {
	opts Options

	mu   sync.Mutex
	rows map[int]*row
}

// NewReporter creates a new progress reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Step <= 0 || opts.Step > 100 {
		opts.Step = 25
	}

	return &Reporter{
		opts: opts,
		rows: make(map[int]*row),
	}
}

// Start prints the announcement of a download.
func (r *Reporter) Start(position int, name string, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[position] = &row{name: name, total: total}
	if total > 0 {
		r.printf(position, name, "started (%s)", FormatBytes(total))
	} else {
		r.printf(position, name, "started")
	}
}

// Advance prints a line whenever the download crosses the next Step.
// Downloads of unknown size print nothing until they finish.
func (r *Reporter) Advance(position int, written, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rw, ok := r.rows[position]
	if !ok {
		return
	}
	rw.written = written
	if total > 0 {
		rw.total = total
	}
	if rw.total <= 0 || written >= rw.total {
		return
	}

	percent := int(written * 100 / rw.total)
	milestone := percent - percent%r.opts.Step
	if milestone <= rw.reported {
		return
	}
	rw.reported = milestone
	r.printf(position, rw.name, "%d%% (%s / %s)", milestone, FormatBytes(written), FormatBytes(rw.total))
}

// Finish prints the terminal state of a download.
func (r *Reporter) Finish(position int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rw, ok := r.rows[position]
	if !ok {
		rw = &row{name: fmt.Sprintf("#%d", position)}
	}
	delete(r.rows, position)

	if err != nil {
		r.printf(position, rw.name, "failed: %v", err)
		return
	}
	r.printf(position, rw.name, "done (%s)", FormatBytes(rw.written))
}

// printf must be called with r.mu held.
func (r *Reporter) printf(position int, name, format string, args ...any) {
	fmt.Fprintf(r.opts.Output, "[%d] %s: %s\n", position, name, fmt.Sprintf(format, args...))
}

// FormatBytes formats bytes with binary units, e.g. "3.50 MiB".
func FormatBytes(b int64) string {
	const (
		KiB = 1024
		MiB = KiB * 1024
		GiB = MiB * 1024
	)

	switch {
	case b >= GiB:
		return fmt.Sprintf("%.2f GiB", float64(b)/float64(GiB))
	case b >= MiB:
		return fmt.Sprintf("%.2f MiB", float64(b)/float64(MiB))
	case b >= KiB:
		return fmt.Sprintf("%.2f KiB", float64(b)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
