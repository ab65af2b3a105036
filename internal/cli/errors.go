package cli

import (
	"context"
	"errors"

	"github.com/handiism/ds-patches-downloader/internal/config"
	"github.com/handiism/ds-patches-downloader/internal/download"
	"github.com/handiism/ds-patches-downloader/internal/releases"
	"github.com/handiism/ds-patches-downloader/internal/version"
)

// Exit codes for standardized error reporting.
const (
	// ExitSuccess indicates every selected file was downloaded.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitInvalidArgs indicates invalid flags, configuration or version
	// expressions.
	ExitInvalidArgs = 2

	// ExitCatalogError indicates the releases could not be listed.
	ExitCatalogError = 3

	// ExitNoMatch indicates no release matches the version expressions.
	ExitNoMatch = 4

	// ExitDownloadFailed indicates at least one download failed.
	ExitDownloadFailed = 5

	// ExitInterrupted indicates the run was cancelled by a signal.
	ExitInterrupted = 130
)

// UsageError is returned for invalid flags or settings.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by the command to an exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		usageErr      *UsageError
		constraintErr *version.InvalidConstraintError
		fetchErr      *releases.CatalogFetchError
		noMatchErr    *releases.NoMatchError
		runErr        *download.RunError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &usageErr),
		errors.As(err, &constraintErr),
		errors.Is(err, config.ErrNoArtifactKinds):
		return ExitInvalidArgs
	case errors.As(err, &fetchErr):
		return ExitCatalogError
	case errors.As(err, &noMatchErr):
		return ExitNoMatch
	case errors.As(err, &runErr):
		return ExitDownloadFailed
	default:
		return ExitGeneralError
	}
}
