// Command ds-patches-dl downloads IL-2 FB dedicated server patches from
// their GitHub releases.
//
// Usage:
//
//	ds-patches-dl [-v <expr>...] [--no-zip] [--no-exe] [-o <dir>]
//
// Run with --help for every flag. Exit codes:
//
//	0    all files downloaded
//	1    unexpected error
//	2    invalid flags, configuration or version expressions
//	3    releases could not be listed
//	4    no release matches the version expressions
//	5    one or more downloads failed
//	130  interrupted
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/ds-patches-downloader/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
