// Package config provides configuration management for ds-patches-downloader.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from YAML (or JSON) files
//   - DSPATCHES_* environment overrides
//   - Validation before any network activity
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// All versions ("*"), both ZIP and EXE, saved to ./patches
//	// One goroutine per file, 64KiB chunks
//
// # Loading from File
//
//	settings, err := config.Load("/etc/ds-patches.yaml")
//	if err != nil {
//	    return err
//	}
//
// A file only needs the keys it overrides:
//
//	versions: [">=4.12,<4.13", "==4.11.1"]
//	download_exe: false
//	output_dir: /srv/il2/patches
//	chunk_size: 1MiB
//
// # Precedence
//
// Defaults, then the file, then the environment, then command-line flags.
// Validate must pass before the releases API is contacted; it reports
// ErrNoArtifactKinds when both artifact kinds are disabled.
package config
