package releases

import (
	"github.com/handiism/ds-patches-downloader/internal/model"
	"github.com/handiism/ds-patches-downloader/internal/version"
)

// Filter returns the catalog entries whose tag satisfies at least one
// constraint. The input catalog is not modified.
//
// Filter is idempotent: filtering its own result with the same constraints
// yields the same set.
func Filter(catalog model.Catalog, constraints []*version.Constraint) model.Catalog {
	out := make(model.Catalog)
	for tag, rel := range catalog {
		if version.MatchesAny(constraints, tag) {
			out[tag] = rel
		}
	}
	return out
}

// Select is Filter with the empty result reported as *NoMatchError.
func Select(catalog model.Catalog, constraints []*version.Constraint) (model.Catalog, error) {
	out := Filter(catalog, constraints)
	if len(out) == 0 {
		return nil, &NoMatchError{Constraints: version.Strings(constraints)}
	}
	return out, nil
}
