// Package catalog implements the read-only query engine over a voice-catalog
// payload: facet filtering, free-text search, geographic aggregation, and
// cross-referencing of voices against assistive-technology solutions.
//
// The package is pure computation: a Catalog is an immutable snapshot built
// once from a Document, and every query derives a fresh result set from it.
// Snapshots are safe for concurrent readers.
package catalog

import "encoding/json"

// Voice is one text-to-speech voice offering in the catalog.
type Voice struct {
	ID                  string   `json:"id"`
	VoiceKey            string   `json:"voice_key"`
	Name                string   `json:"name"`
	Mode                string   `json:"mode"`
	Gender              string   `json:"gender"`
	Platform            string   `json:"platform"`
	PlatformDisplay     string   `json:"platform_display"`
	Runtime             string   `json:"runtime"`
	Provider            string   `json:"provider"`
	Engine              string   `json:"engine"`
	EngineFamily        string   `json:"engine_family"`
	DistributionChannel string   `json:"distribution_channel"`
	LanguageCodes       []string `json:"language_codes"`
	LanguageName        string   `json:"language_name"`
	LanguageDisplay     string   `json:"language_display"`
	Script              string   `json:"script"`
	WrittenScript       string   `json:"written_script"`
	CountryCode         string   `json:"country_code"`
	CountryName         string   `json:"country_name"`
	GeoRegion           string   `json:"geo_region,omitempty"`

	// Latitude/Longitude may be absent; a voice without both coordinates
	// is excluded from geo aggregation but not from list results.
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Quality string   `json:"quality,omitempty"`
	Styles  []string `json:"styles,omitempty"`

	// PreviewAudio is the legacy single-URL form; PreviewAudios supersedes it.
	PreviewAudio  string         `json:"preview_audio,omitempty"`
	PreviewAudios []PreviewAudio `json:"preview_audios,omitempty"`
}

// PreviewAudio is one preview clip for a voice.
type PreviewAudio struct {
	URL          string `json:"url"`
	LanguageCode string `json:"language_code,omitempty"`
	Source       string `json:"source,omitempty"`
}

// Solution is an assistive-technology product (an AAC app or screen reader)
// that may be able to use voices from the catalog.
type Solution struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Vendor    string   `json:"vendor"`
	Category  string   `json:"category"` // "aac" or "screenreader"
	Platforms []string `json:"platforms"`
	Links     []string `json:"links,omitempty"`
}

// Support levels understood by the compatibility joiner. Any other value
// scores zero and is treated as unsupported.
const (
	SupportNative     = "native"
	SupportCompatible = "compatible"
	SupportPossible   = "possible"
)

// SupportRule binds one solution to one runtime or provider name with a
// support level. Matching is done on the normalized name (see Normalize),
// never the raw string.
type SupportRule struct {
	SolutionID         string `json:"solution_id"`
	Runtime            string `json:"runtime,omitempty"`
	Provider           string `json:"provider,omitempty"`
	SupportLevel       string `json:"support_level"`
	VoiceOrigin        string `json:"voice_origin,omitempty"`
	RequiresEnrollment bool   `json:"requires_enrollment"`
	RequiresUserAsset  bool   `json:"requires_user_asset"`
}

// Document is the payload consumed by the engine: one read-only JSON
// document produced by the upstream export pipeline.
type Document struct {
	GeneratedAt     string                    `json:"generated_at"`
	Summary         json.RawMessage           `json:"summary"`
	Facets          map[string]map[string]int `json:"facets"`
	Voices          []Voice                   `json:"voices"`
	Solutions       []Solution                `json:"solutions"`
	RuntimeSupport  []SupportRule             `json:"solution_runtime_support"`
	ProviderSupport []SupportRule             `json:"solution_provider_support"`
}

// GeoCluster aggregates the filtered voices of one country for map display.
type GeoCluster struct {
	CountryCode  string   `json:"country_code"`
	CountryName  string   `json:"country_name"`
	Count        int      `json:"count"`
	OnlineCount  int      `json:"online_count"`
	OfflineCount int      `json:"offline_count"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	TopLanguages []string `json:"top_languages"`
}

// VoiceMatch records one voice a solution can use and why it matched.
type VoiceMatch struct {
	Voice  *Voice `json:"voice"`
	Tier   string `json:"tier"`   // native, compatible or possible
	Reason string `json:"reason"` // "runtime", "provider" or "runtime + provider"
}

// ScoredSolution is one solution joined against the current voice pool.
type ScoredSolution struct {
	Solution           *Solution    `json:"solution"`
	MatchedTotal       int          `json:"matched_total"`
	NativeCount        int          `json:"native_count"`
	CompatibleCount    int          `json:"compatible_count"`
	PossibleCount      int          `json:"possible_count"`
	VoiceOrigins       []string     `json:"voice_origins"`
	RequiresEnrollment bool         `json:"requires_enrollment"`
	RequiresUserAsset  bool         `json:"requires_user_asset"`
	Matches            []VoiceMatch `json:"matches"`
}

// ProviderSupport is one row of the voice-banking provider roll-up.
type ProviderSupport struct {
	Provider      string   `json:"provider"`
	VoiceOrigins  []string `json:"voice_origins"`
	SolutionIDs   []string `json:"solution_ids"`
	SolutionCount int      `json:"solution_count"`
}

// FilteredStats summarises a filtered voice list.
type FilteredStats struct {
	Voices        int `json:"voices"`
	Online        int `json:"online"`
	Offline       int `json:"offline"`
	ActiveFilters int `json:"active_filters"`
}
