package catalog

import (
	"sort"
	"strings"
)

// Facet dimension names as they appear in the payload's facets table.
const (
	FacetPlatforms            = "platforms"
	FacetGenders              = "genders"
	FacetRuntimes             = "runtimes"
	FacetProviders            = "providers"
	FacetEngineFamilies       = "engine_families"
	FacetDistributionChannels = "distribution_channels"
	FacetEngines              = "engines"
)

// Options turns one per-dimension count table into the option list for a
// selection control: the "all" sentinel followed by the facet values in
// case-insensitive lexicographic order. A missing or empty table yields
// just the sentinel.
func Options(counts map[string]int) []string {
	opts := make([]string, 0, len(counts)+1)
	opts = append(opts, AllFacets)
	for value := range counts {
		opts = append(opts, value)
	}
	sort.Slice(opts[1:], func(i, j int) bool {
		a, b := strings.ToLower(opts[1+i]), strings.ToLower(opts[1+j])
		if a == b {
			return opts[1+i] < opts[1+j]
		}
		return a < b
	})
	return opts
}

// FacetOptions builds the option list for the named dimension of this
// catalog's payload.
func (c *Catalog) FacetOptions(dimension string) []string {
	return Options(c.doc.Facets[dimension])
}
