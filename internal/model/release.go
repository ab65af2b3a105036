package model

import (
	"net/url"
	"path"
	"sort"

	"github.com/handiism/ds-patches-downloader/internal/version"
)

// Release is one tagged publication in the remote catalog.
//
// A Release is created by the catalog fetcher and is read-only afterwards.
// TagName is the catalog key; Assets keeps the order the API returned them in.
//
// Example:
//
//	rel := &Release{
//	    TagName: "4.12.1",
//	    Assets: []Asset{
//	        NewAsset("https://example.com/download/4.12.1/server-4.12.1.zip", 1000),
//	    },
//	}
type Release struct {
	// TagName is the release tag, e.g. "4.12.1".
	TagName string

	// Assets are the downloadable files attached to the release.
	Assets []Asset
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	// URL is the browser download URL of the file.
	URL string

	// Name is the file name derived from the last segment of the URL path.
	Name string

	// Size is the byte size declared by the API.
	Size int64
}

// NewAsset creates an Asset and derives its Name from the URL path.
func NewAsset(rawURL string, size int64) Asset {
	return Asset{
		URL:  rawURL,
		Name: AssetName(rawURL),
		Size: size,
	}
}

// AssetName returns the percent-decoded last path segment of rawURL.
//
// Query strings and fragments are ignored. An empty string is returned when
// the URL cannot be parsed or has no path.
//
// Example:
//
//	AssetName("https://example.com/dl/4.12/server-4.12.zip?x=1") // "server-4.12.zip"
func AssetName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if u.Path == "" || u.Path == "/" {
		return ""
	}
	return path.Base(u.Path)
}

// Catalog maps tag names to releases.
type Catalog map[string]*Release

// Tags returns the catalog keys in lexical order.
func (c Catalog) Tags() []string {
	tags := make([]string, 0, len(c))
	for tag := range c {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Releases returns the catalog entries ordered by version.
//
// Tags are compared by their coerced semantic version. Tags that cannot be
// coerced sort after all versioned tags, and ties fall back to the tag name,
// so the order is stable across runs.
func (c Catalog) Releases() []*Release {
	type entry struct {
		rel *Release
		ver *version.Version
	}

	entries := make([]entry, 0, len(c))
	for _, rel := range c {
		v, err := version.Coerce(rel.TagName)
		if err != nil {
			v = nil
		}
		entries = append(entries, entry{rel: rel, ver: v})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.ver != nil && b.ver != nil:
			if cmp := a.ver.Compare(b.ver); cmp != 0 {
				return cmp < 0
			}
		case a.ver != nil:
			return true
		case b.ver != nil:
			return false
		}
		return a.rel.TagName < b.rel.TagName
	})

	out := make([]*Release, len(entries))
	for i, e := range entries {
		out[i] = e.rel
	}
	return out
}
