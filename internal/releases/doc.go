// Package releases lists a repository's releases and picks the files to
// download from them.
//
// # Catalog
//
// Fetcher pages through a GitHub-style "list releases" endpoint and indexes
// every release by tag name:
//
//	fetcher := releases.NewFetcher(client, "https://api.github.com/repos/IL2HorusTeam/il2fb-ds-patches")
//	catalog, err := fetcher.Fetch(ctx)
//
// Every page is checked against an embedded JSON Schema before it is decoded,
// so a proxy error page or a changed API shape fails loudly as
// *CatalogFetchError instead of producing an empty catalog.
//
// # Selection
//
// Filter keeps the releases whose tag satisfies at least one version
// constraint. Select does the same and reports an empty result as
// *NoMatchError:
//
//	constraints, _ := version.ParseAll([]string{">=4.12,<4.13"})
//	selected, err := releases.Select(catalog, constraints)
//
// # Asset resolution
//
// Resolve looks for an artifact and its ".md5" companion in a release's
// asset list and returns the destination paths inside the output directory.
package releases
