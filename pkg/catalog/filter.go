package catalog

import "strings"

// Matches decides whether v passes the full facet selection and free-text
// query. Dimension checks are ANDed and evaluated before the text query so
// a facet rejection never pays for search-string assembly.
func Matches(v *Voice, sel Selection) bool {
	if !setAllows(sel.Modes, v.Mode) {
		return false
	}
	if !setAllows(sel.Genders, v.Gender) {
		return false
	}
	if !setAllows(sel.Platforms, v.Platform) {
		return false
	}
	if !setAllows(sel.Runtimes, v.Runtime) {
		return false
	}
	if !setAllows(sel.Providers, v.Provider) {
		return false
	}
	if !setAllows(sel.EngineFamilies, v.EngineFamily) {
		return false
	}
	if !setAllows(sel.DistributionChannels, v.DistributionChannel) {
		return false
	}
	if setContains(sel.ExcludedEngines, v.Engine) {
		return false
	}
	return queryMatches(v, sel.Query, searchText(v))
}

// MatchesPool decides whether v belongs to the assistive-technology voice
// pool: an operating-mode gate, the platform-compatibility predicate, and
// the same text-query semantics searched over language/script fields only.
func MatchesPool(v *Voice, sel PoolSelection) bool {
	if !unrestricted(sel.Mode) && !strings.EqualFold(v.Mode, sel.Mode) {
		return false
	}
	if !PlatformCompatible(v, sel.Platform) {
		return false
	}
	return queryMatches(v, sel.Query, languageText(v))
}

// PlatformCompatible reports whether v can serve the selected target
// platform. Cloud voices (platform "online") and universally available
// local engines (platform "local", or a display label containing
// "cross-platform") are compatible with every target platform.
func PlatformCompatible(v *Voice, selected string) bool {
	if unrestricted(selected) {
		return true
	}
	if strings.EqualFold(v.Platform, selected) {
		return true
	}
	if strings.EqualFold(v.Platform, "online") || strings.EqualFold(v.Platform, "local") {
		return true
	}
	return strings.Contains(strings.ToLower(v.PlatformDisplay), "cross-platform")
}

// queryMatches applies the free-text query to the given haystack. An empty
// (after trimming) query passes. A query containing "arab" additionally
// matches voices tagged by writing system: a script equal to "arab" or a
// written-script containing "arab", recovering voices whose textual fields
// never contain the word (e.g. transliterated language names).
func queryMatches(v *Voice, query, haystack string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(haystack, q) {
		return true
	}
	if strings.Contains(q, "arab") {
		if strings.EqualFold(v.Script, "arab") {
			return true
		}
		if strings.Contains(strings.ToLower(v.WrittenScript), "arab") {
			return true
		}
	}
	return false
}

// searchText builds the lower-cased haystack for the primary voice list,
// space-joining every searchable field and omitting empty ones.
func searchText(v *Voice) string {
	fields := make([]string, 0, 12+len(v.LanguageCodes))
	for _, f := range []string{
		v.ID, v.Name,
		v.CountryCode, v.CountryName,
		v.LanguageName, v.LanguageDisplay,
		v.Runtime, v.Provider,
		v.EngineFamily, v.DistributionChannel,
		v.Script, v.WrittenScript,
	} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	for _, code := range v.LanguageCodes {
		if code != "" {
			fields = append(fields, code)
		}
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// languageText is the pool-mode haystack: language and script fields only.
func languageText(v *Voice) string {
	fields := make([]string, 0, 4+len(v.LanguageCodes))
	for _, f := range []string{
		v.LanguageName, v.LanguageDisplay,
		v.Script, v.WrittenScript,
	} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	for _, code := range v.LanguageCodes {
		if code != "" {
			fields = append(fields, code)
		}
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// Stats summarises a filtered voice list together with the selection that
// produced it.
func Stats(voices []*Voice, sel Selection) FilteredStats {
	st := FilteredStats{Voices: len(voices), ActiveFilters: sel.ActiveFilters()}
	for _, v := range voices {
		if strings.EqualFold(v.Mode, "online") {
			st.Online++
		} else {
			st.Offline++
		}
	}
	return st
}
