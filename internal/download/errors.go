package download

import (
	"errors"
	"fmt"
)

// DownloadError is a failure of a single download task.
type DownloadError struct {
	// Position is the index of the spec in the list passed to Run.
	Position int

	// URL and Path identify the file that failed.
	URL  string
	Path string

	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s to %s: %v", e.URL, e.Path, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// RunError aggregates every failed task of a Run.
type RunError struct {
	Failures []*DownloadError
}

func (e *RunError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("1 download failed: %v", e.Failures[0])
	}
	return fmt.Sprintf("%d downloads failed: %v", len(e.Failures), errors.Join(e.Unwrap()...))
}

// Unwrap exposes every task error to errors.Is and errors.As.
func (e *RunError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
