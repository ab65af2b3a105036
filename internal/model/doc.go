// Package model defines the core data structures shared by the catalog,
// resolver and download packages.
//
// # Releases
//
// Release and Asset mirror the subset of the releases API payload the tool
// needs. Asset names are always derived from the download URL:
//
//	asset := model.NewAsset("https://host/dl/4.12/server-4.12.zip", 1000)
//	fmt.Println(asset.Name) // "server-4.12.zip"
//
// A Catalog indexes releases by tag name:
//
//	catalog := model.Catalog{"4.12": rel}
//	for _, rel := range catalog.Releases() { // ordered by version
//	    fmt.Println(rel.TagName)
//	}
//
// # Download Specs
//
// ArtifactKind computes the expected file names for a version:
//
//	model.KindZip.FileName("4.12")         // "server-4.12.zip"
//	model.KindZip.ChecksumFileName("4.12") // "server-4.12.zip.md5"
//
// DownloadSpec pairs the artifact FileSpec with its checksum FileSpec. Each
// side is optional.
package model
