package download

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/ds-patches-downloader/internal/http"
	"github.com/handiism/ds-patches-downloader/internal/logging"
	"github.com/handiism/ds-patches-downloader/internal/model"
	"github.com/handiism/ds-patches-downloader/internal/releases"
)

// Manager builds download specs and runs them.
type Manager struct {
	client      *http.Client
	logger      *log.Logger
	sink        ProgressSink
	concurrency int
	chunkSize   int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for warnings and per-task results.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithProgress sets the sink that receives per-task progress.
func WithProgress(sink ProgressSink) Option {
	return func(m *Manager) {
		m.sink = sink
	}
}

// WithConcurrency caps the number of tasks running at once.
// 0 starts every task immediately.
func WithConcurrency(n int) Option {
	return func(m *Manager) {
		m.concurrency = n
	}
}

// WithChunkSize sets the read size used while streaming artifacts.
func WithChunkSize(n int) Option {
	return func(m *Manager) {
		m.chunkSize = n
	}
}

// NewManager creates a new download Manager.
func NewManager(client *http.Client, opts ...Option) *Manager {
	m := &Manager{
		client:    client,
		chunkSize: http.DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.OrDiscard(m.logger)
	if m.sink == nil {
		m.sink = NopSink{}
	}
	return m
}

// BuildSpecs resolves the files to download for every release and enabled
// artifact kind, zip before exe.
//
// Pairs with neither the artifact nor its checksum in the release's assets
// are logged as warnings and left out.
func (m *Manager) BuildSpecs(rels []*model.Release, includeZip, includeExe bool, outputDir string) []model.DownloadSpec {
	kinds := model.Kinds(includeZip, includeExe)

	var specs []model.DownloadSpec
	for _, rel := range rels {
		for _, kind := range kinds {
			name := kind.FileName(rel.TagName)

			spec, ok := releases.Resolve(rel.Assets, name, kind.ChecksumFileName(rel.TagName), outputDir)
			if !ok {
				m.logger.Warnf("no info about '%s'", name)
				continue
			}
			if spec.Target == nil {
				m.logger.Warnf("no artifact '%s', fetching checksum only", name)
			} else if spec.Checksum == nil {
				m.logger.Warnf("no checksum for '%s'", name)
			}

			spec.Version = rel.TagName
			spec.Kind = kind
			specs = append(specs, *spec)
		}
	}
	return specs
}

// Outcome is the terminal state of one task.
type Outcome struct {
	Position int
	Spec     model.DownloadSpec

	// Err is nil on success, otherwise a *DownloadError.
	Err error
}

// Result holds one Outcome per spec, in position order.
type Result struct {
	Outcomes []Outcome
}

// Failed returns the outcomes with an error.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err returns nil when every task succeeded, otherwise a *RunError.
func (r *Result) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	runErr := &RunError{Failures: make([]*DownloadError, 0, len(failed))}
	for _, o := range failed {
		var dlErr *DownloadError
		if !errors.As(o.Err, &dlErr) {
			dlErr = &DownloadError{Position: o.Position, Err: o.Err}
		}
		runErr.Failures = append(runErr.Failures, dlErr)
	}
	return runErr
}

// Run downloads every spec concurrently and waits for all of them.
//
// The position of a task is its index in specs. A failing task does not
// cancel the others; cancelling ctx aborts the in-flight requests, which
// then show up as failed outcomes.
func (m *Manager) Run(ctx context.Context, specs []model.DownloadSpec) *Result {
	result := &Result{Outcomes: make([]Outcome, len(specs))}
	dl := NewDownloader(m.client, m.chunkSize, m.sink)

	// Tasks report through outcomes and always return nil, so one failure
	// never short-circuits Wait.
	var g errgroup.Group
	if m.concurrency > 0 {
		g.SetLimit(m.concurrency)
	}

	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			err := dl.Download(ctx, spec, i)
			result.Outcomes[i] = Outcome{Position: i, Spec: spec, Err: err}

			if err != nil {
				m.logger.Error("download failed", "file", spec.Name(), "err", err)
			} else {
				m.logger.Info("downloaded", "file", spec.Name())
			}
			return nil
		})
	}

	_ = g.Wait()
	return result
}
