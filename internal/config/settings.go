package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the releases repository of the dedicated server patches.
const DefaultAPIURL = "https://api.github.com/repos/IL2HorusTeam/il2fb-ds-patches"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DSPATCHES_"

// EnvKeys lists every variable LoadFromEnv reads, without EnvPrefix.
var EnvKeys = []string{
	"API_URL", "USER_AGENT", "VERSIONS", "ZIP", "EXE", "OUTPUT_DIR",
	"CONCURRENCY", "CHUNK_SIZE", "HEADER_TIMEOUT", "PROGRESS", "LOG_LEVEL", "LOG_FORMAT",
}

// Progress display modes.
const (
	ProgressAuto  = "auto"
	ProgressBars  = "bars"
	ProgressLines = "lines"
	ProgressNone  = "none"
)

// MaxChunkSize bounds the copy buffer each running download allocates.
const MaxChunkSize = 16 * MiB

// ErrNoArtifactKinds is returned by Validate when both ZIP and EXE downloads are disabled.
var ErrNoArtifactKinds = errors.New("config: both EXE and ZIP are disabled: at least one of them must be enabled")

// Settings holds all configuration options.
type Settings struct {
	// Source
	APIURL    string `yaml:"api_url"`
	PerPage   int    `yaml:"per_page"`
	UserAgent string `yaml:"user_agent"`

	// Selection
	Versions    []string `yaml:"versions"`
	DownloadZip bool     `yaml:"download_zip"`
	DownloadExe bool     `yaml:"download_exe"`

	// Download settings
	OutputDir     string        `yaml:"output_dir"`
	Concurrency   int           `yaml:"concurrency"` // 0 = one goroutine per file
	ChunkSize     ByteSize      `yaml:"chunk_size"`
	HeaderTimeout time.Duration `yaml:"header_timeout"`

	// Output
	Progress  string `yaml:"progress"` // auto, bars, lines, none
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		APIURL:  DefaultAPIURL,
		PerPage: 100,

		Versions:    []string{"*"},
		DownloadZip: true,
		DownloadExe: true,

		OutputDir:     "./patches",
		Concurrency:   0,
		ChunkSize:     64 * KiB,
		HeaderTimeout: 30 * time.Second,

		Progress:  ProgressAuto,
		LogLevel:  "debug",
		LogFormat: "text",
	}
}

// Load reads settings from a YAML (or JSON) file on top of the defaults.
//
// Keys missing from the file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return settings, nil
}

// LoadFromEnv applies DSPATCHES_* environment variables.
//
// DSPATCHES_VERSIONS holds several expressions separated by ";" because a
// single expression may itself contain commas.
func (s *Settings) LoadFromEnv() error {
	if v := os.Getenv(EnvPrefix + "API_URL"); v != "" {
		s.APIURL = v
	}
	if v := os.Getenv(EnvPrefix + "USER_AGENT"); v != "" {
		s.UserAgent = v
	}
	if v := os.Getenv(EnvPrefix + "VERSIONS"); v != "" {
		var versions []string
		for _, part := range strings.Split(v, ";") {
			if part = strings.TrimSpace(part); part != "" {
				versions = append(versions, part)
			}
		}
		s.Versions = versions
	}
	if v := os.Getenv(EnvPrefix + "ZIP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %sZIP: %w", EnvPrefix, err)
		}
		s.DownloadZip = b
	}
	if v := os.Getenv(EnvPrefix + "EXE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %sEXE: %w", EnvPrefix, err)
		}
		s.DownloadExe = b
	}
	if v := os.Getenv(EnvPrefix + "OUTPUT_DIR"); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv(EnvPrefix + "CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %sCONCURRENCY: %w", EnvPrefix, err)
		}
		s.Concurrency = n
	}
	if v := os.Getenv(EnvPrefix + "CHUNK_SIZE"); v != "" {
		size, err := ParseByteSize(v)
		if err != nil {
			return fmt.Errorf("parse %sCHUNK_SIZE: %w", EnvPrefix, err)
		}
		s.ChunkSize = size
	}
	if v := os.Getenv(EnvPrefix + "HEADER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %sHEADER_TIMEOUT: %w", EnvPrefix, err)
		}
		s.HeaderTimeout = d
	}
	if v := os.Getenv(EnvPrefix + "PROGRESS"); v != "" {
		s.Progress = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		s.LogFormat = v
	}

	return nil
}

// Validate checks the settings before any network activity.
func (s *Settings) Validate() error {
	if !s.DownloadZip && !s.DownloadExe {
		return ErrNoArtifactKinds
	}
	if len(s.Versions) == 0 {
		return errors.New("config: at least one version expression is required")
	}
	if u, err := url.Parse(s.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid api_url %q", s.APIURL)
	}
	if s.PerPage <= 0 {
		return errors.New("config: per_page must be positive")
	}
	if s.Concurrency < 0 {
		return errors.New("config: concurrency must not be negative")
	}
	if s.ChunkSize <= 0 {
		return errors.New("config: chunk_size must be positive")
	}
	if s.ChunkSize > MaxChunkSize {
		return fmt.Errorf("config: chunk_size %s exceeds %s", s.ChunkSize, MaxChunkSize)
	}
	if strings.TrimSpace(s.OutputDir) == "" {
		return errors.New("config: output_dir is required")
	}
	switch s.Progress {
	case ProgressAuto, ProgressBars, ProgressLines, ProgressNone:
	default:
		return fmt.Errorf("config: unknown progress mode %q", s.Progress)
	}
	return nil
}
