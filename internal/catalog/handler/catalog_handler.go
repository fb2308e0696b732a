// Package handler exposes the catalog query engine as a read-only JSON API.
// Selection state travels as query parameters on every request; each request
// reads the current catalog snapshot exactly once, so every derived view in
// one response is computed from the same immutable data.
package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/voiceatlas/voiceatlas/pkg/catalog"
	"github.com/voiceatlas/voiceatlas/pkg/events"
)

// Snapshots hands out the current catalog snapshot.
type Snapshots interface {
	Catalog() *catalog.Catalog
}

// PageSizes carries the default page size per paged view.
type PageSizes struct {
	Voices    int
	Solutions int
	Matches   int
}

// maxPageSize bounds client-chosen page sizes.
const maxPageSize = 100

// CatalogHandler provides the REST endpoints of the voice catalog.
type CatalogHandler struct {
	snapshots Snapshots
	pub       *events.Publisher
	pages     PageSizes
}

// NewCatalogHandler creates a catalog API handler. pub may be nil; the
// event stream endpoint then reports unavailability.
func NewCatalogHandler(snapshots Snapshots, pub *events.Publisher, pages PageSizes) *CatalogHandler {
	if pages.Voices <= 0 {
		pages.Voices = 24
	}
	if pages.Solutions <= 0 {
		pages.Solutions = 12
	}
	if pages.Matches <= 0 {
		pages.Matches = 10
	}
	return &CatalogHandler{snapshots: snapshots, pub: pub, pages: pages}
}

// RegisterRoutes registers all catalog API routes on the given mux.
func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/voices", h.Voices)
	mux.HandleFunc("GET /api/v1/voices/map", h.Map)
	mux.HandleFunc("GET /api/v1/facets", h.Facets)
	mux.HandleFunc("GET /api/v1/summary", h.Summary)
	mux.HandleFunc("GET /api/v1/solutions", h.Solutions)
	mux.HandleFunc("GET /api/v1/solutions/{id}", h.SolutionDetail)
	mux.HandleFunc("GET /api/v1/providers", h.Providers)
	mux.HandleFunc("GET /api/v1/events", h.Events)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// snapshot fetches the current catalog or answers 503 when the payload
// never loaded.
func (h *CatalogHandler) snapshot(w http.ResponseWriter) *catalog.Catalog {
	c := h.snapshots.Catalog()
	if c == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
	}
	return c
}

// Voices handles GET /api/v1/voices.
func (h *CatalogHandler) Voices(w http.ResponseWriter, r *http.Request) {
	c := h.snapshot(w)
	if c == nil {
		return
	}

	sel := parseSelection(r.URL.Query())
	filtered := c.FilterVoices(sel)

	pageSize := parsePageSize(r.URL.Query(), h.pages.Voices)
	page := parsePage(r.URL.Query())
	items, pageCount := catalog.Paginate(filtered, pageSize, page)

	writeJSON(w, http.StatusOK, VoiceListResponse{
		Stats:     catalog.Stats(filtered, sel),
		Page:      clampPage(page, pageCount),
		PageCount: pageCount,
		PageSize:  pageSize,
		Voices:    items,
	})
}

// Map handles GET /api/v1/voices/map: geo clusters over the same filtered
// set the list endpoint would return for identical parameters.
func (h *CatalogHandler) Map(w http.ResponseWriter, r *http.Request) {
	c := h.snapshot(w)
	if c == nil {
		return
	}

	sel := parseSelection(r.URL.Query())
	filtered := c.FilterVoices(sel)

	writeJSON(w, http.StatusOK, MapResponse{
		Stats:    catalog.Stats(filtered, sel),
		Clusters: catalog.AggregateGeo(filtered),
	})
}

// Facets handles GET /api/v1/facets.
func (h *CatalogHandler) Facets(w http.ResponseWriter, r *http.Request) {
	c := h.snapshot(w)
	if c == nil {
		return
	}

	writeJSON(w, http.StatusOK, FacetsResponse{
		Platforms:            c.FacetOptions(catalog.FacetPlatforms),
		Genders:              c.FacetOptions(catalog.FacetGenders),
		Runtimes:             c.FacetOptions(catalog.FacetRuntimes),
		Providers:            c.FacetOptions(catalog.FacetProviders),
		EngineFamilies:       c.FacetOptions(catalog.FacetEngineFamilies),
		DistributionChannels: c.FacetOptions(catalog.FacetDistributionChannels),
		Engines:              c.FacetOptions(catalog.FacetEngines),
	})
}

// Summary handles GET /api/v1/summary.
func (h *CatalogHandler) Summary(w http.ResponseWriter, r *http.Request) {
	c := h.snapshot(w)
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{
		GeneratedAt: c.GeneratedAt(),
		Summary:     c.Document().Summary,
	})
}

// Solutions handles GET /api/v1/solutions: the assistive-technology view.
func (h *CatalogHandler) Solutions(w http.ResponseWriter, r *http.Request) {
	c := h.snapshot(w)
	if c == nil {
		return
	}

	q := r.URL.Query()
	pool := c.FilterPool(parsePoolSelection(q))
	scored := c.ScoreSolutions(pool, parseSolutionFilter(q))

	pageSize := parsePageSize(q, h.pages.Solutions)
	page := parsePage(q)
	items, pageCount := catalog.Paginate(scored, pageSize, page)

	solutions := make([]SolutionResponse, 0, len(items))
	for _, s := range items {
		solutions = append(solutions, toSolutionResponse(s, false))
	}

	writeJSON(w, http.StatusOK, SolutionListResponse{
		PoolSize:  len(pool),
		Page:      clampPage(page, pageCount),
		PageCount: pageCount,
		PageSize:  pageSize,
		Solutions: solutions,
	})
}

// SolutionDetail handles GET /api/v1/solutions/{id}, paging the matched
// voice list.
func (h *CatalogHandler) SolutionDetail(w http.ResponseWriter, r *http.Request) {
	c := h.snapshot(w)
	if c == nil {
		return
	}

	q := r.URL.Query()
	pool := c.FilterPool(parsePoolSelection(q))
	scored, ok := c.ScoreSolution(r.PathValue("id"), pool, parseSolutionFilter(q))
	if !ok {
		writeError(w, http.StatusNotFound, "solution not found")
		return
	}

	pageSize := parsePageSize(q, h.pages.Matches)
	page := parsePage(q)
	matches, pageCount := catalog.Paginate(scored.Matches, pageSize, page)

	resp := toSolutionResponse(scored, false)
	resp.Matches = toMatchResponses(matches)
	writeJSON(w, http.StatusOK, SolutionDetailResponse{
		Solution:  resp,
		Page:      clampPage(page, pageCount),
		PageCount: pageCount,
		PageSize:  pageSize,
	})
}

// Providers handles GET /api/v1/providers: the voice-banking roll-up.
func (h *CatalogHandler) Providers(w http.ResponseWriter, r *http.Request) {
	c := h.snapshot(w)
	if c == nil {
		return
	}
	rows := c.ProviderRollup(parseSolutionFilter(r.URL.Query()))
	if rows == nil {
		rows = []catalog.ProviderSupport{}
	}
	writeJSON(w, http.StatusOK, ProvidersResponse{Providers: rows})
}

// --- query parameter parsing ---

func parseSelection(q url.Values) catalog.Selection {
	return catalog.Selection{
		Modes:                q["mode"],
		Genders:              q["gender"],
		Platforms:            q["platform"],
		Runtimes:             q["runtime"],
		Providers:            q["provider"],
		EngineFamilies:       q["engine_family"],
		DistributionChannels: q["distribution_channel"],
		ExcludedEngines:      q["exclude_engine"],
		Query:                q.Get("q"),
	}
}

func parsePoolSelection(q url.Values) catalog.PoolSelection {
	return catalog.PoolSelection{
		Mode:     q.Get("mode"),
		Platform: q.Get("platform"),
		Query:    q.Get("q"),
	}
}

func parseSolutionFilter(q url.Values) catalog.SolutionFilter {
	f := catalog.SolutionFilter{
		Platform:    q.Get("platform"),
		VoiceOrigin: q.Get("origin"),
	}
	if cat := q.Get("category"); cat != "" && cat != catalog.AllFacets {
		f.Category = cat
	}
	return f
}

func parsePage(q url.Values) int {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parsePageSize(q url.Values, fallback int) int {
	size, err := strconv.Atoi(q.Get("page_size"))
	if err != nil || size < 1 {
		return fallback
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

func clampPage(page, pageCount int) int {
	if page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}
