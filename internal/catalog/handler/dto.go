package handler

import (
	"encoding/json"

	"github.com/voiceatlas/voiceatlas/pkg/catalog"
)

// VoiceListResponse is the response for GET /api/v1/voices.
type VoiceListResponse struct {
	Stats     catalog.FilteredStats `json:"stats"`
	Page      int                   `json:"page"`
	PageCount int                   `json:"page_count"`
	PageSize  int                   `json:"page_size"`
	Voices    []*catalog.Voice      `json:"voices"`
}

// MapResponse is the response for GET /api/v1/voices/map.
type MapResponse struct {
	Stats    catalog.FilteredStats `json:"stats"`
	Clusters []catalog.GeoCluster  `json:"clusters"`
}

// FacetsResponse lists the selectable options per dimension, each prefixed
// with the "all" sentinel.
type FacetsResponse struct {
	Platforms            []string `json:"platforms"`
	Genders              []string `json:"genders"`
	Runtimes             []string `json:"runtimes"`
	Providers            []string `json:"providers"`
	EngineFamilies       []string `json:"engine_families"`
	DistributionChannels []string `json:"distribution_channels"`
	Engines              []string `json:"engines"`
}

// SummaryResponse passes the payload's display-only coverage counters
// through untouched.
type SummaryResponse struct {
	GeneratedAt string          `json:"generated_at"`
	Summary     json.RawMessage `json:"summary"`
}

// SolutionResponse is one scored solution. Matches are only populated on
// the detail endpoint.
type SolutionResponse struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Vendor             string               `json:"vendor"`
	Category           string               `json:"category"`
	Platforms          []string             `json:"platforms"`
	Links              []string             `json:"links,omitempty"`
	MatchedTotal       int                  `json:"matched_total"`
	NativeCount        int                  `json:"native_count"`
	CompatibleCount    int                  `json:"compatible_count"`
	PossibleCount      int                  `json:"possible_count"`
	VoiceOrigins       []string             `json:"voice_origins"`
	RequiresEnrollment bool                 `json:"requires_enrollment"`
	RequiresUserAsset  bool                 `json:"requires_user_asset"`
	Matches            []VoiceMatchResponse `json:"matches,omitempty"`
}

// VoiceMatchResponse is one matched voice inside a solution detail.
type VoiceMatchResponse struct {
	Voice  *catalog.Voice `json:"voice"`
	Tier   string         `json:"tier"`
	Reason string         `json:"reason"`
}

// SolutionListResponse is the response for GET /api/v1/solutions.
type SolutionListResponse struct {
	PoolSize  int                `json:"pool_size"`
	Page      int                `json:"page"`
	PageCount int                `json:"page_count"`
	PageSize  int                `json:"page_size"`
	Solutions []SolutionResponse `json:"solutions"`
}

// SolutionDetailResponse is the response for GET /api/v1/solutions/{id},
// with the matched voices paged.
type SolutionDetailResponse struct {
	Solution  SolutionResponse `json:"solution"`
	Page      int              `json:"page"`
	PageCount int              `json:"page_count"`
	PageSize  int              `json:"page_size"`
}

// ProvidersResponse is the response for GET /api/v1/providers.
type ProvidersResponse struct {
	Providers []catalog.ProviderSupport `json:"providers"`
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toSolutionResponse(s catalog.ScoredSolution, withMatches bool) SolutionResponse {
	resp := SolutionResponse{
		ID:                 s.Solution.ID,
		Name:               s.Solution.Name,
		Vendor:             s.Solution.Vendor,
		Category:           s.Solution.Category,
		Platforms:          s.Solution.Platforms,
		Links:              s.Solution.Links,
		MatchedTotal:       s.MatchedTotal,
		NativeCount:        s.NativeCount,
		CompatibleCount:    s.CompatibleCount,
		PossibleCount:      s.PossibleCount,
		VoiceOrigins:       s.VoiceOrigins,
		RequiresEnrollment: s.RequiresEnrollment,
		RequiresUserAsset:  s.RequiresUserAsset,
	}
	if withMatches {
		resp.Matches = toMatchResponses(s.Matches)
	}
	return resp
}

func toMatchResponses(matches []catalog.VoiceMatch) []VoiceMatchResponse {
	out := make([]VoiceMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, VoiceMatchResponse{Voice: m.Voice, Tier: m.Tier, Reason: m.Reason})
	}
	return out
}
