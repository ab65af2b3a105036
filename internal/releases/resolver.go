package releases

import (
	ioutils "github.com/handiism/ds-patches-downloader/internal/io"
	"github.com/handiism/ds-patches-downloader/internal/model"
)

// Resolve scans a release's assets for an artifact and its checksum file.
//
// Names are compared case-sensitively against the URL-derived asset name.
// The scan stops as soon as both files are found; until then a later asset
// with the same name replaces an earlier one. Destination paths are placed
// directly inside outputDir.
//
// Returns (nil, false) when neither file is present. A spec with only one
// side set is returned when the other file is missing.
//
// Example:
//
//	spec, ok := Resolve(rel.Assets, "server-4.12.zip", "server-4.12.zip.md5", "/srv/patches")
//	if !ok {
//	    logger.Warn("no info about 'server-4.12.zip'")
//	}
func Resolve(assets []model.Asset, wantedName, wantedChecksumName, outputDir string) (*model.DownloadSpec, bool) {
	var spec model.DownloadSpec

	for _, asset := range assets {
		switch asset.Name {
		case wantedName:
			if fs, ok := fileSpec(asset, outputDir); ok {
				spec.Target = fs
			}
		case wantedChecksumName:
			if fs, ok := fileSpec(asset, outputDir); ok {
				spec.Checksum = fs
			}
		}

		if spec.Target != nil && spec.Checksum != nil {
			break
		}
	}

	if spec.Target == nil && spec.Checksum == nil {
		return nil, false
	}
	return &spec, true
}

func fileSpec(asset model.Asset, outputDir string) (*model.FileSpec, bool) {
	path, err := ioutils.JoinWithin(outputDir, asset.Name)
	if err != nil {
		return nil, false
	}
	return &model.FileSpec{
		URL:  asset.URL,
		Path: path,
		Size: asset.Size,
	}, true
}
