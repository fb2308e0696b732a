package catalog

import (
	"sort"
	"strings"
)

// bankingOrigins is the fixed origin set the provider roll-up uses when no
// single voice origin is selected.
var bankingOrigins = []string{"banked", "cloned", "hybrid", "imported"}

// supportScore maps a rule's support level to its rank. Unknown levels
// score zero and never produce a match.
func supportScore(level string) int {
	switch strings.ToLower(level) {
	case SupportNative:
		return 3
	case SupportCompatible:
		return 2
	case SupportPossible:
		return 1
	default:
		return 0
	}
}

func tierForScore(score int) string {
	switch score {
	case 3:
		return SupportNative
	case 2:
		return SupportCompatible
	default:
		return SupportPossible
	}
}

// ScoreSolutions joins the given voice pool against every solution's
// runtime and provider rule sets. Solutions rejected by the filter are
// omitted; the rest are emitted even with zero matches. Each voice counts
// once, at the strongest tier any matching rule grants it. Results are
// ordered by matched total descending, ties by solution name ascending.
func (c *Catalog) ScoreSolutions(pool []*Voice, f SolutionFilter) []ScoredSolution {
	var out []ScoredSolution
	for i := range c.doc.Solutions {
		sol := &c.doc.Solutions[i]
		scored, ok := c.scoreSolution(sol, pool, f)
		if !ok {
			continue
		}
		out = append(out, scored)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchedTotal != out[j].MatchedTotal {
			return out[i].MatchedTotal > out[j].MatchedTotal
		}
		return out[i].Solution.Name < out[j].Solution.Name
	})
	return out
}

// ScoreSolution joins one solution by ID against the pool, applying the
// same filter gates as ScoreSolutions. The second return is false when the
// solution does not exist or is rejected by the filter.
func (c *Catalog) ScoreSolution(id string, pool []*Voice, f SolutionFilter) (ScoredSolution, bool) {
	sol := c.Solution(id)
	if sol == nil {
		return ScoredSolution{}, false
	}
	return c.scoreSolution(sol, pool, f)
}

func (c *Catalog) scoreSolution(sol *Solution, pool []*Voice, f SolutionFilter) (ScoredSolution, bool) {
	if !solutionPasses(sol, c.runtimeRules[sol.ID], c.providerRules[sol.ID], f) {
		return ScoredSolution{}, false
	}

	runtimeRules := c.runtimeRules[sol.ID]
	providerRules := c.providerRules[sol.ID]

	scored := ScoredSolution{
		Solution:     sol,
		VoiceOrigins: originTags(runtimeRules, providerRules),
	}
	for _, r := range runtimeRules {
		scored.RequiresEnrollment = scored.RequiresEnrollment || r.RequiresEnrollment
		scored.RequiresUserAsset = scored.RequiresUserAsset || r.RequiresUserAsset
	}
	for _, r := range providerRules {
		scored.RequiresEnrollment = scored.RequiresEnrollment || r.RequiresEnrollment
		scored.RequiresUserAsset = scored.RequiresUserAsset || r.RequiresUserAsset
	}

	for _, v := range pool {
		runtimeKey := Normalize(v.Runtime)
		providerKey := Normalize(v.Provider)

		runtimeBest := 0
		for _, r := range runtimeRules {
			if runtimeKey != "" && Normalize(r.Runtime) == runtimeKey {
				if s := supportScore(r.SupportLevel); s > runtimeBest {
					runtimeBest = s
				}
			}
		}
		providerBest := 0
		for _, r := range providerRules {
			if providerKey != "" && Normalize(r.Provider) == providerKey {
				if s := supportScore(r.SupportLevel); s > providerBest {
					providerBest = s
				}
			}
		}

		best := runtimeBest
		if providerBest > best {
			best = providerBest
		}
		if best == 0 {
			continue
		}

		switch best {
		case 3:
			scored.NativeCount++
		case 2:
			scored.CompatibleCount++
		default:
			scored.PossibleCount++
		}
		scored.MatchedTotal++

		reason := "runtime"
		switch {
		case runtimeBest > 0 && providerBest > 0:
			reason = "runtime + provider"
		case providerBest > 0:
			reason = "provider"
		}
		scored.Matches = append(scored.Matches, VoiceMatch{
			Voice:  v,
			Tier:   tierForScore(best),
			Reason: reason,
		})
	}

	return scored, true
}

// solutionPasses applies the category, platform, and voice-origin gates.
func solutionPasses(sol *Solution, runtimeRules, providerRules []SupportRule, f SolutionFilter) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, sol.Category) {
		return false
	}
	if !unrestricted(f.Platform) && !setContains(sol.Platforms, f.Platform) {
		return false
	}
	if !unrestricted(f.VoiceOrigin) {
		if !setContains(originTags(runtimeRules, providerRules), f.VoiceOrigin) {
			return false
		}
	}
	return true
}

// originTags collects the distinct non-empty voice-origin tags across both
// rule families, sorted. An empty tag means "untagged" and is never a
// selectable origin.
func originTags(ruleSets ...[]SupportRule) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, rules := range ruleSets {
		for _, r := range rules {
			if r.VoiceOrigin == "" {
				continue
			}
			if _, ok := seen[r.VoiceOrigin]; ok {
				continue
			}
			seen[r.VoiceOrigin] = struct{}{}
			tags = append(tags, r.VoiceOrigin)
		}
	}
	sort.Strings(tags)
	return tags
}

// ProviderRollup re-groups the provider rules of every solution that
// survives the filter gates into one row per voice-banking provider: the
// origin tags it participates in and the solutions that reference it.
// When no single origin is selected the fixed banking origin set applies.
// Rows are ordered by solution count descending, ties by provider name.
func (c *Catalog) ProviderRollup(f SolutionFilter) []ProviderSupport {
	allowed := bankingOrigins
	if !unrestricted(f.VoiceOrigin) {
		allowed = []string{f.VoiceOrigin}
	}

	type accum struct {
		name      string
		origins   map[string]struct{}
		solutions map[string]struct{}
	}
	byProvider := make(map[string]*accum)
	var order []string

	for i := range c.doc.Solutions {
		sol := &c.doc.Solutions[i]
		if !solutionPasses(sol, c.runtimeRules[sol.ID], c.providerRules[sol.ID], f) {
			continue
		}
		for _, r := range c.providerRules[sol.ID] {
			if !setContains(allowed, r.VoiceOrigin) {
				continue
			}
			key := Normalize(r.Provider)
			a, ok := byProvider[key]
			if !ok {
				a = &accum{
					name:      r.Provider,
					origins:   make(map[string]struct{}),
					solutions: make(map[string]struct{}),
				}
				byProvider[key] = a
				order = append(order, key)
			}
			a.origins[r.VoiceOrigin] = struct{}{}
			a.solutions[r.SolutionID] = struct{}{}
		}
	}

	rows := make([]ProviderSupport, 0, len(order))
	for _, key := range order {
		a := byProvider[key]
		row := ProviderSupport{
			Provider:      a.name,
			VoiceOrigins:  sortedKeys(a.origins),
			SolutionIDs:   sortedKeys(a.solutions),
			SolutionCount: len(a.solutions),
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SolutionCount != rows[j].SolutionCount {
			return rows[i].SolutionCount > rows[j].SolutionCount
		}
		return rows[i].Provider < rows[j].Provider
	})
	return rows
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
