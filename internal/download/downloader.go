package download

import (
	"context"

	"github.com/handiism/ds-patches-downloader/internal/http"
	ioutils "github.com/handiism/ds-patches-downloader/internal/io"
	"github.com/handiism/ds-patches-downloader/internal/model"
)

// Downloader fetches the files of one DownloadSpec.
//
// The artifact is streamed to disk in chunkSize pieces with progress
// reported to the sink. The checksum file is small, so it is read whole and
// written atomically.
type Downloader struct {
	client    *http.Client
	chunkSize int
	sink      ProgressSink
}

// NewDownloader creates a Downloader. A nil sink discards progress and
// chunkSize <= 0 selects http.DefaultChunkSize.
func NewDownloader(client *http.Client, chunkSize int, sink ProgressSink) *Downloader {
	if sink == nil {
		sink = NopSink{}
	}
	if chunkSize <= 0 {
		chunkSize = http.DefaultChunkSize
	}
	return &Downloader{
		client:    client,
		chunkSize: chunkSize,
		sink:      sink,
	}
}

// Download fetches the artifact and then its checksum file.
//
// The checksum is not fetched when the artifact failed. Every failure is
// returned as *DownloadError.
func (d *Downloader) Download(ctx context.Context, spec model.DownloadSpec, position int) error {
	var total int64
	if spec.Target != nil {
		total = spec.Target.Size
	}
	d.sink.Start(position, spec.Name(), total)

	err := d.download(ctx, spec, position)
	d.sink.Finish(position, err)
	return err
}

func (d *Downloader) download(ctx context.Context, spec model.DownloadSpec, position int) error {
	if spec.Target != nil {
		if err := d.downloadTarget(ctx, spec.Target, position); err != nil {
			return &DownloadError{Position: position, URL: spec.Target.URL, Path: spec.Target.Path, Err: err}
		}
	}

	if spec.Checksum != nil {
		if err := d.downloadChecksum(ctx, spec.Checksum); err != nil {
			return &DownloadError{Position: position, URL: spec.Checksum.URL, Path: spec.Checksum.Path, Err: err}
		}
	}

	return nil
}

func (d *Downloader) downloadTarget(ctx context.Context, fs *model.FileSpec, position int) error {
	declared := fs.Size

	_, err := d.client.DownloadFile(ctx, fs.URL, fs.Path, d.chunkSize, func(written, contentLength int64) {
		total := declared
		if total <= 0 && contentLength > 0 {
			total = contentLength
		}
		d.sink.Advance(position, written, total)
	})
	return err
}

func (d *Downloader) downloadChecksum(ctx context.Context, fs *model.FileSpec) error {
	body, err := d.client.Get(ctx, fs.URL)
	if err != nil {
		return err
	}
	return ioutils.WriteFileAtomic(fs.Path, body)
}
