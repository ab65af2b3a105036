package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/handiism/ds-patches-downloader/internal/config"
	"github.com/handiism/ds-patches-downloader/internal/download"
	"github.com/handiism/ds-patches-downloader/internal/http"
	ioutils "github.com/handiism/ds-patches-downloader/internal/io"
	"github.com/handiism/ds-patches-downloader/internal/logging"
	"github.com/handiism/ds-patches-downloader/internal/model"
	"github.com/handiism/ds-patches-downloader/internal/progress"
	"github.com/handiism/ds-patches-downloader/internal/releases"
	"github.com/handiism/ds-patches-downloader/internal/tui"
	"github.com/handiism/ds-patches-downloader/internal/version"
)

type flagValues struct {
	configPath  string
	versions    []string
	zip         bool
	zipChanged  bool
	exe         bool
	exeChanged  bool
	outputDir   string
	apiURL      string
	concurrency int
	chunkSize   config.ByteSize
	progress    string
	logLevel    string
	logFormat   string
	dryRun      bool
}

// NewCommand creates the ds-patches-dl root command.
//
// Positional arguments are extra version expressions, so
// "-v 4.11 4.13" selects both versions.
func NewCommand() *cobra.Command {
	return newCommand(&app{})
}

// app carries state shared between the command and Execute.
type app struct {
	// logger is set once the settings are known.
	logger *log.Logger
}

// Execute runs the command with args and returns the process exit code.
//
// A failing run is logged once, at error level, with the logger built from
// the run's settings. Failures before the settings are known, such as an
// unknown flag, are logged in the default text format.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	cmd := newCommand(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	code := ExitCode(err)
	if ctx.Err() != nil {
		code = ExitInterrupted
	}

	logger := a.logger
	if logger == nil {
		logger, _ = logging.New(stderr, logging.Options{Level: "error"})
	}
	if code == ExitInterrupted {
		logger.Error("interrupted", "err", err)
	} else {
		logger.Error(err)
	}
	return code
}

func newCommand(a *app) *cobra.Command {
	f := &flagValues{zip: true, exe: true}

	cmd := &cobra.Command{
		Use:   "ds-patches-dl [flags] [version-expr...]",
		Short: "Download IL-2 FB dedicated server patches",
		Long: "Download release artifacts of the IL-2 FB dedicated server patches " +
			"whose versions match the given range expressions, together with their MD5 files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := f.settings(cmd, args)
			if err != nil {
				return err
			}

			logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: settings.LogLevel, Format: settings.LogFormat})
			if err != nil {
				return &UsageError{Err: err}
			}
			a.logger = logger

			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger, settings, f.dryRun)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.StringArrayVarP(&f.versions, "version", "v", nil, "Version range expression, e.g. \">=4.12,<4.13\" (repeatable; default \"*\")")
	addSwitch(fs, "zip", "ZIP archives", &f.zip, &f.zipChanged)
	addSwitch(fs, "exe", "EXE installers", &f.exe, &f.exeChanged)
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "Directory to save files to (default \"./patches\")")
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML or JSON config file")
	fs.StringVar(&f.apiURL, "api-url", "", "Releases API base URL of the repository")
	fs.IntVar(&f.concurrency, "concurrency", 0, "Maximum parallel downloads (0 = all at once)")
	fs.Var(&f.chunkSize, "chunk-size", "Read size while streaming artifacts, e.g. 64KiB")
	fs.StringVar(&f.progress, "progress", "", "Progress display: auto, bars, lines, none")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format: text, json, logfmt")
	fs.BoolVar(&f.dryRun, "dry-run", false, "List the files that would be downloaded and exit")

	return cmd
}

// settings merges defaults, the config file, the environment and flags.
func (f *flagValues) settings(cmd *cobra.Command, args []string) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if f.configPath != "" {
		var err error
		if settings, err = config.Load(f.configPath); err != nil {
			return nil, &UsageError{Err: err}
		}
	}
	if err := settings.LoadFromEnv(); err != nil {
		return nil, &UsageError{Err: err}
	}

	fs := cmd.Flags()
	if versions := splitExpressions(append(f.versions, args...)); len(versions) > 0 {
		settings.Versions = versions
	}
	if f.zipChanged {
		settings.DownloadZip = f.zip
	}
	if f.exeChanged {
		settings.DownloadExe = f.exe
	}
	if fs.Changed("output-dir") {
		settings.OutputDir = f.outputDir
	}
	if fs.Changed("api-url") {
		settings.APIURL = f.apiURL
	}
	if fs.Changed("concurrency") {
		settings.Concurrency = f.concurrency
	}
	if fs.Changed("chunk-size") {
		settings.ChunkSize = f.chunkSize
	}
	if fs.Changed("progress") {
		settings.Progress = f.progress
	}
	if fs.Changed("log-level") {
		settings.LogLevel = f.logLevel
	}
	if fs.Changed("log-format") {
		settings.LogFormat = f.logFormat
	}

	if err := settings.Validate(); err != nil {
		return nil, &UsageError{Err: err}
	}
	return settings, nil
}

// splitExpressions trims the expressions and drops empty ones.
func splitExpressions(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func run(ctx context.Context, stdout, stderr io.Writer, logger *log.Logger, settings *config.Settings, dryRun bool) error {
	constraints, err := version.ParseAll(settings.Versions)
	if err != nil {
		return err
	}
	logger.Debug("arguments",
		"versions", version.Strings(constraints),
		"zip", settings.DownloadZip,
		"exe", settings.DownloadExe,
		"output_dir", settings.OutputDir,
	)

	outputDir, err := filepath.Abs(settings.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	if !dryRun {
		if err := ioutils.EnsureDir(outputDir); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	client := http.NewClient(http.Options{
		UserAgent:     settings.UserAgent,
		HeaderTimeout: settings.HeaderTimeout,
	})

	fetcher := releases.NewFetcher(client, settings.APIURL,
		releases.WithPerPage(settings.PerPage),
		releases.WithLogger(logger),
	)
	logger.Debug("fetching releases", "url", settings.APIURL)
	catalog, err := fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	logger.Debugf("available versions: %s", quoteTags(catalog))

	selected, err := releases.Select(catalog, constraints)
	if err != nil {
		return err
	}
	logger.Infof("selected versions: %s", quoteTags(selected))

	opts := []download.Option{
		download.WithLogger(logger),
		download.WithConcurrency(settings.Concurrency),
		download.WithChunkSize(int(settings.ChunkSize)),
	}
	specs := download.NewManager(client, opts...).
		BuildSpecs(selected.Releases(), settings.DownloadZip, settings.DownloadExe, outputDir)

	if dryRun {
		return printSpecs(stdout, specs)
	}
	if len(specs) == 0 {
		logger.Warn("nothing to download")
		return nil
	}

	result := runDownloads(ctx, stderr, logger, client, settings, specs, opts)
	return report(logger, result)
}

// runDownloads runs the specs behind the configured progress display.
func runDownloads(ctx context.Context, stderr io.Writer, logger *log.Logger, client *http.Client, settings *config.Settings, specs []model.DownloadSpec, opts []download.Option) *download.Result {
	mode := settings.Progress
	if mode == config.ProgressAuto {
		mode = config.ProgressLines
		if isTerminal(stderr) {
			mode = config.ProgressBars
		}
	}

	switch mode {
	case config.ProgressBars:
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		display := tui.NewDisplay(stderr, fmt.Sprintf("Downloading %d file set(s)", len(specs)), cancel)
		display.Show()

		// Per-task log lines would tear the bars; outcomes are logged by report.
		opts = append(opts, download.WithLogger(logging.Discard()), download.WithProgress(display))
		result := download.NewManager(client, opts...).Run(ctx, specs)

		if err := display.Close(); err != nil {
			logger.Debug("progress display stopped", "err", err)
		}
		return result

	case config.ProgressLines:
		opts = append(opts, download.WithProgress(progress.NewReporter(progress.Options{Output: stderr})))
	}

	return download.NewManager(client, opts...).Run(ctx, specs)
}

func report(logger *log.Logger, result *download.Result) error {
	failed := result.Failed()
	for _, o := range failed {
		logger.Error("download failed", "file", o.Spec.Name(), "err", o.Err)
	}
	logger.Info("finished",
		"downloaded", len(result.Outcomes)-len(failed),
		"failed", len(failed),
	)
	return result.Err()
}

func printSpecs(w io.Writer, specs []model.DownloadSpec) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tKIND\tFILE\tSIZE\tURL")
	for _, spec := range specs {
		for _, fs := range []*model.FileSpec{spec.Target, spec.Checksum} {
			if fs == nil {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				spec.Version, spec.Kind, fs.Path, progress.FormatBytes(fs.Size), fs.URL)
		}
	}
	return tw.Flush()
}

func quoteTags(c model.Catalog) string {
	rels := c.Releases()
	quoted := make([]string, len(rels))
	for i, rel := range rels {
		quoted[i] = "'" + rel.TagName + "'"
	}
	return strings.Join(quoted, ", ")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
