package ioutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideDir is returned by JoinWithin when a name would resolve outside
// the directory it is joined to.
var ErrOutsideDir = errors.New("ioutils: path escapes output directory")

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/srv/il2/patches")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// JoinWithin joins a single file name to dir and guarantees the result is a
// direct child of dir.
//
// Names containing path separators, "." or ".." are rejected with
// ErrOutsideDir. Download destinations always go through JoinWithin, so a
// hostile asset URL cannot place files outside the output directory.
//
// Example:
//
//	p, err := JoinWithin("/srv/patches", "server-4.12.zip") // "/srv/patches/server-4.12.zip"
//	_, err = JoinWithin("/srv/patches", "../etc/passwd")     // ErrOutsideDir
func JoinWithin(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrOutsideDir, name)
	}

	p := filepath.Join(dir, name)
	if filepath.Dir(p) != filepath.Clean(dir) {
		return "", fmt.Errorf("%w: %q", ErrOutsideDir, name)
	}
	return p, nil
}

// CreateFile opens path for writing, creating it or truncating an existing file.
//
// The file is created with mode 0644. The caller owns the returned file and
// must close it.
func CreateFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

// WriteFileAtomic writes data to path so that readers never observe a
// partially written file.
//
// The data is written to a temporary file in the same directory, synced and
// then renamed over path. On failure the temporary file is removed.
//
// Example:
//
//	err := WriteFileAtomic("/srv/patches/server-4.12.zip.md5", body)
func WriteFileAtomic(path string, data []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
