package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ArtifactKind is one of the supported packaging formats of a patch.
type ArtifactKind string

const (
	// KindZip is the repacked ZIP archive of a patch.
	KindZip ArtifactKind = "zip"

	// KindExe is the original installer of a patch.
	KindExe ArtifactKind = "exe"
)

// Kinds returns the enabled artifact kinds in download order (zip before exe).
func Kinds(includeZip, includeExe bool) []ArtifactKind {
	var kinds []ArtifactKind
	if includeZip {
		kinds = append(kinds, KindZip)
	}
	if includeExe {
		kinds = append(kinds, KindExe)
	}
	return kinds
}

// FileName returns the artifact file name for a version, e.g. "server-4.12.1.zip".
func (k ArtifactKind) FileName(version string) string {
	return fmt.Sprintf("server-%s.%s", version, k)
}

// ChecksumFileName returns the checksum file name for a version,
// e.g. "server-4.12.1.zip.md5".
func (k ArtifactKind) ChecksumFileName(version string) string {
	return k.FileName(version) + ".md5"
}

// String returns the upper-cased kind for log output.
func (k ArtifactKind) String() string {
	return strings.ToUpper(string(k))
}

// FileSpec describes one fetchable object.
type FileSpec struct {
	// URL is where the file is downloaded from.
	URL string

	// Path is the local destination, always inside the output directory.
	Path string

	// Size is the byte size declared by the releases API.
	Size int64
}

// DownloadSpec pairs an artifact with its checksum file.
//
// Either side may be nil when the release does not carry that file, but a
// DownloadSpec is only built when at least one side was found.
type DownloadSpec struct {
	// Version is the release tag the files belong to.
	Version string

	// Kind is the artifact kind the files were resolved for.
	Kind ArtifactKind

	// Target is the artifact itself.
	Target *FileSpec

	// Checksum is the companion .md5 file.
	Checksum *FileSpec
}

// Name returns a short label for the spec, used in logs and progress rows.
func (s DownloadSpec) Name() string {
	switch {
	case s.Target != nil:
		return filepath.Base(s.Target.Path)
	case s.Checksum != nil:
		return filepath.Base(s.Checksum.Path)
	default:
		return s.Kind.FileName(s.Version)
	}
}

// Paths returns the destination paths of the sides that are present.
func (s DownloadSpec) Paths() []string {
	var paths []string
	if s.Target != nil {
		paths = append(paths, s.Target.Path)
	}
	if s.Checksum != nil {
		paths = append(paths, s.Checksum.Path)
	}
	return paths
}
