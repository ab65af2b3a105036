package releases

import (
	"fmt"
	"strings"
)

// CatalogFetchError is returned when listing releases fails. The whole fetch
// is aborted; no partial catalog is returned.
type CatalogFetchError struct {
	// Page is the 1-based page number that failed.
	Page int
	Err  error
}

func (e *CatalogFetchError) Error() string {
	return fmt.Sprintf("fetch releases page %d: %v", e.Page, e.Err)
}

func (e *CatalogFetchError) Unwrap() error {
	return e.Err
}

// NoMatchError is returned when no release satisfies the version constraints.
// It is distinct from CatalogFetchError so an empty selection is never
// mistaken for an unreachable API.
type NoMatchError struct {
	Constraints []string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no versions match the query %s", strings.Join(quoteAll(e.Constraints), " "))
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
