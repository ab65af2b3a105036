// Package ioutils provides file system utilities for the downloader.
//
// This package contains functions for:
//   - Output directory creation
//   - Confining destination paths to the output directory
//   - Creating download destinations
//   - Atomic writes of small files such as checksums
//
// # Destination Paths
//
//	dir, _ := filepath.Abs("./patches")
//	err := ioutils.EnsureDir(dir)
//
//	// Join a file name, refusing anything that would escape dir
//	path, err := ioutils.JoinWithin(dir, "server-4.12.zip")
//
// # Writing Files
//
//	// Stream a large artifact
//	f, err := ioutils.CreateFile(path)
//	defer f.Close()
//
//	// Write a checksum file in one step
//	err := ioutils.WriteFileAtomic(path+".md5", body)
package ioutils
