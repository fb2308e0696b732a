package catalog

import (
	"sort"
	"strings"
)

// topLanguageCount limits how many languages a geo cluster reports.
const topLanguageCount = 5

// AggregateGeo groups a filtered voice list into one cluster per country
// for map rendering. Only voices carrying both coordinates contribute; a
// country with no contributing voices is never emitted. The centroid is
// the arithmetic mean of the contributing points. Clusters are ordered by
// total count descending, ties keeping discovery order.
func AggregateGeo(voices []*Voice) []GeoCluster {
	type accum struct {
		cluster   GeoCluster
		latSum    float64
		lonSum    float64
		langCount map[string]int
		langOrder []string
	}

	byCountry := make(map[string]*accum)
	var order []string

	for _, v := range voices {
		if v.Latitude == nil || v.Longitude == nil {
			continue
		}
		code := v.CountryCode
		a, ok := byCountry[code]
		if !ok {
			a = &accum{
				cluster: GeoCluster{
					CountryCode: code,
					CountryName: v.CountryName,
				},
				langCount: make(map[string]int),
			}
			byCountry[code] = a
			order = append(order, code)
		}

		a.cluster.Count++
		if strings.EqualFold(v.Mode, "online") {
			a.cluster.OnlineCount++
		} else {
			a.cluster.OfflineCount++
		}
		a.latSum += *v.Latitude
		a.lonSum += *v.Longitude

		lang := v.LanguageDisplay
		if lang == "" {
			lang = v.LanguageName
		}
		if lang != "" {
			if _, seen := a.langCount[lang]; !seen {
				a.langOrder = append(a.langOrder, lang)
			}
			a.langCount[lang]++
		}
	}

	clusters := make([]GeoCluster, 0, len(order))
	for _, code := range order {
		a := byCountry[code]
		a.cluster.Latitude = a.latSum / float64(a.cluster.Count)
		a.cluster.Longitude = a.lonSum / float64(a.cluster.Count)
		a.cluster.TopLanguages = topLanguages(a.langCount, a.langOrder)
		clusters = append(clusters, a.cluster)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Count > clusters[j].Count
	})
	return clusters
}

// topLanguages ranks languages by occurrence count, ties broken by
// first-seen order, and keeps the top entries.
func topLanguages(counts map[string]int, firstSeen []string) []string {
	ranked := make([]string, len(firstSeen))
	copy(ranked, firstSeen)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	if len(ranked) > topLanguageCount {
		ranked = ranked[:topLanguageCount]
	}
	return ranked
}
