package model

import (
	"path/filepath"
	"testing"
)

func TestAssetName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://github.com/o/r/releases/download/4.12/server-4.12.zip", "server-4.12.zip"},
		{"https://github.com/o/r/releases/download/4.12/server-4.12.zip.md5", "server-4.12.zip.md5"},
		{"https://example.com/dl/server-4.12.exe?token=abc#frag", "server-4.12.exe"},
		{"https://example.com/dl/server%204.12.exe", "server 4.12.exe"},
		{"https://example.com/", ""},
		{"https://example.com", ""},
		{"::not a url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := AssetName(tt.input)
			if got != tt.want {
				t.Errorf("AssetName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestArtifactKind_FileNames(t *testing.T) {
	tests := []struct {
		kind     ArtifactKind
		version  string
		file     string
		checksum string
	}{
		{KindZip, "4.12.0", "server-4.12.0.zip", "server-4.12.0.zip.md5"},
		{KindExe, "4.12.0", "server-4.12.0.exe", "server-4.12.0.exe.md5"},
		{KindZip, "4.10.1", "server-4.10.1.zip", "server-4.10.1.zip.md5"},
	}

	for _, tt := range tests {
		if got := tt.kind.FileName(tt.version); got != tt.file {
			t.Errorf("%s.FileName(%q) = %q, want %q", tt.kind, tt.version, got, tt.file)
		}
		if got := tt.kind.ChecksumFileName(tt.version); got != tt.checksum {
			t.Errorf("%s.ChecksumFileName(%q) = %q, want %q", tt.kind, tt.version, got, tt.checksum)
		}
	}
}

func TestArtifactKind_NamesAreUnique(t *testing.T) {
	versions := []string{"4.10", "4.10.1", "4.11", "4.11.1", "4.12", "4.12.1", "4.12.2"}
	seen := make(map[string]string)

	for _, v := range versions {
		for _, k := range Kinds(true, true) {
			for _, name := range []string{k.FileName(v), k.ChecksumFileName(v)} {
				key := v + "/" + string(k)
				if prev, ok := seen[name]; ok {
					t.Fatalf("name %q produced by both %s and %s", name, prev, key)
				}
				seen[name] = key
			}
		}
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		zip, exe bool
		want     []ArtifactKind
	}{
		{true, true, []ArtifactKind{KindZip, KindExe}},
		{true, false, []ArtifactKind{KindZip}},
		{false, true, []ArtifactKind{KindExe}},
		{false, false, nil},
	}

	for _, tt := range tests {
		got := Kinds(tt.zip, tt.exe)
		if len(got) != len(tt.want) {
			t.Fatalf("Kinds(%v, %v) = %v, want %v", tt.zip, tt.exe, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Kinds(%v, %v)[%d] = %v, want %v", tt.zip, tt.exe, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCatalog_Releases(t *testing.T) {
	catalog := Catalog{
		"4.12.1":  {TagName: "4.12.1"},
		"nightly": {TagName: "nightly"},
		"4.2":     {TagName: "4.2"},
		"4.12":    {TagName: "4.12"},
		"4.10.1":  {TagName: "4.10.1"},
	}

	got := catalog.Releases()
	want := []string{"4.2", "4.10.1", "4.12", "4.12.1", "nightly"}

	if len(got) != len(want) {
		t.Fatalf("got %d releases, want %d", len(got), len(want))
	}
	for i, rel := range got {
		if rel.TagName != want[i] {
			t.Errorf("Releases()[%d] = %q, want %q", i, rel.TagName, want[i])
		}
	}
}

func TestCatalog_Tags(t *testing.T) {
	catalog := Catalog{"b": {TagName: "b"}, "a": {TagName: "a"}}
	tags := catalog.Tags()
	if len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Errorf("Tags() = %v, want [a b]", tags)
	}
}

func TestDownloadSpec_Name(t *testing.T) {
	dir := t.TempDir()

	full := DownloadSpec{
		Version:  "4.12",
		Kind:     KindZip,
		Target:   &FileSpec{Path: filepath.Join(dir, "server-4.12.zip")},
		Checksum: &FileSpec{Path: filepath.Join(dir, "server-4.12.zip.md5")},
	}
	if got := full.Name(); got != "server-4.12.zip" {
		t.Errorf("Name() = %q, want %q", got, "server-4.12.zip")
	}
	if got := len(full.Paths()); got != 2 {
		t.Errorf("len(Paths()) = %d, want 2", got)
	}

	checksumOnly := DownloadSpec{
		Version:  "4.12",
		Kind:     KindExe,
		Checksum: &FileSpec{Path: filepath.Join(dir, "server-4.12.exe.md5")},
	}
	if got := checksumOnly.Name(); got != "server-4.12.exe.md5" {
		t.Errorf("Name() = %q, want %q", got, "server-4.12.exe.md5")
	}
}
