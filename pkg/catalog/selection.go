package catalog

import "strings"

// AllFacets is the "no restriction" sentinel used by single-value
// selections and prefixed onto every facet option list.
const AllFacets = "all"

// Selection is the full set of filter inputs for the primary voice list.
// Each slice is a set of allowed values for one dimension; an empty set
// leaves that dimension unrestricted. ExcludedEngines is inverted: a voice
// whose engine appears there is rejected.
type Selection struct {
	Modes                []string
	Genders              []string
	Platforms            []string
	Runtimes             []string
	Providers            []string
	EngineFamilies       []string
	DistributionChannels []string
	ExcludedEngines      []string

	// Query is the free-text search term. Whitespace-only means no search.
	Query string
}

// ActiveFilters counts the restrictions currently in effect: every
// non-empty selection set plus a non-empty query.
func (s Selection) ActiveFilters() int {
	n := 0
	for _, set := range [][]string{
		s.Modes, s.Genders, s.Platforms, s.Runtimes,
		s.Providers, s.EngineFamilies, s.DistributionChannels,
		s.ExcludedEngines,
	} {
		if len(set) > 0 {
			n++
		}
	}
	if strings.TrimSpace(s.Query) != "" {
		n++
	}
	return n
}

// PoolSelection narrows the voice pool for the assistive-technology view.
type PoolSelection struct {
	Mode     string // "", "all", "online" or "offline"
	Platform string // "" or "all" passes everything, see PlatformCompatible
	Query    string // searched over language/script fields only
}

// SolutionFilter gates which solutions the compatibility joiner emits.
// Empty or "all" values leave that gate open.
type SolutionFilter struct {
	Category    string // "aac" or "screenreader"
	Platform    string
	VoiceOrigin string // e.g. "banked", "cloned", "hybrid", "imported"
}

// setAllows reports whether value is allowed by the selection set. An empty
// set allows everything. Membership is case-insensitive: facet values are
// free strings (the gender label explicitly so) and the payload's casing
// must not affect filtering.
func setAllows(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	return setContains(set, value)
}

func setContains(set []string, value string) bool {
	for _, v := range set {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// unrestricted reports whether a single-value selection means "all".
func unrestricted(v string) bool {
	return v == "" || strings.EqualFold(v, AllFacets)
}
