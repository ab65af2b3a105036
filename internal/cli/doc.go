// Package cli implements the ds-patches-dl command.
//
// The command lists the releases of the dedicated server patches repository,
// keeps the versions matching the requested range expressions and downloads
// the ZIP and/or EXE artifacts together with their ".md5" files:
//
//	ds-patches-dl -v ">=4.12,<4.13" --no-exe -o /srv/il2/patches
//	ds-patches-dl -v 4.11 4.13 --dry-run
//
// Settings come from, in increasing precedence: built-in defaults, the file
// given with --config, DSPATCHES_* environment variables, and flags.
//
// ExitCode maps the errors returned by the command to process exit codes.
package cli
