package dto

import "github.com/handiism/ds-patches-downloader/internal/model"

// JSONRelease is the subset of a GitHub release object the downloader reads.
type JSONRelease struct {
	TagName string      `json:"tag_name"`
	Assets  []JSONAsset `json:"assets"`
}

// JSONAsset is the subset of a GitHub release asset object the downloader reads.
type JSONAsset struct {
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// ToRelease converts the DTO to a Release model.
func (r *JSONRelease) ToRelease() *model.Release {
	assets := make([]model.Asset, 0, len(r.Assets))
	for _, a := range r.Assets {
		assets = append(assets, model.NewAsset(a.BrowserDownloadURL, a.Size))
	}
	return &model.Release{
		TagName: r.TagName,
		Assets:  assets,
	}
}
