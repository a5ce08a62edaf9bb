package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/pseudology/internal/archive"
	"github.com/desertthunder/pseudology/internal/models"
	"github.com/desertthunder/pseudology/internal/navigation"
	"github.com/desertthunder/pseudology/internal/shared"
)

// Page is one page of a disclosed list.
type Page struct {
	Items   []models.Review `json:"items"`
	Page    int             `json:"page"`
	Total   int             `json:"total"`
	HasMore bool            `json:"has_more"`
}

// SearchResult is the response of the search endpoint.
type SearchResult struct {
	Query string          `json:"query"`
	Mode  archive.Mode    `json:"mode"`
	Count int             `json:"count"`
	Items []models.Review `json:"items"`
}

// BestResult is a ranking plus the years that can be requested.
type BestResult struct {
	archive.Ranking
	Years []string `json:"years"`
}

// API serves the archive as JSON.
type API struct {
	archive atomic.Pointer[navigation.Archive]
	logger  *log.Logger
}

// NewAPI creates an API over a (possibly nil, meaning empty) archive snapshot.
func NewAPI(a *navigation.Archive, logger *log.Logger) *API {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	api := &API{logger: logger}
	api.Store(a)
	return api
}

// Store swaps in a new snapshot.
func (api *API) Store(a *navigation.Archive) {
	if a == nil {
		a = navigation.EmptyArchive()
	}
	api.archive.Store(a)
}

// Archive returns the current snapshot.
func (api *API) Archive() *navigation.Archive {
	return api.archive.Load()
}

// Register adds the API routes to r.
func (api *API) Register(r Router) {
	r.Handle(http.MethodGet, "/reviews/recent", http.HandlerFunc(api.recent))
	r.Handle(http.MethodGet, "/reviews/pickups", http.HandlerFunc(api.pickups))
	r.Handle(http.MethodGet, "/reviews/search", http.HandlerFunc(api.search))
	r.Handle(http.MethodGet, "/reviews/{id}", http.HandlerFunc(api.review))
	r.Handle(http.MethodGet, "/reviews/{id}/related", http.HandlerFunc(api.related))
	r.Handle(http.MethodGet, "/library", http.HandlerFunc(api.library))
	r.Handle(http.MethodGet, "/best", http.HandlerFunc(api.best))
	r.Handle(http.MethodGet, "/about", http.HandlerFunc(api.about))
}

func (api *API) recent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.Archive().Recent())
}

func (api *API) pickups(w http.ResponseWriter, r *http.Request) {
	a := api.Archive()

	page, err := pageParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items := a.Pickups()
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: seed must be an unsigned integer", shared.ErrInvalidInput))
			return
		}
		items = archive.Pickups(a.Reviews(), navigation.RecentCount, seed)
	}

	writeJSON(w, http.StatusOK, Paginate(items, page))
}

func (api *API) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	mode, err := archive.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items := api.Archive().Search(query, mode)
	writeJSON(w, http.StatusOK, SearchResult{Query: query, Mode: mode, Count: len(items), Items: items})
}

func (api *API) review(w http.ResponseWriter, r *http.Request) {
	review, ok := api.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (api *API) related(w http.ResponseWriter, r *http.Request) {
	review, ok := api.lookup(w, r)
	if !ok {
		return
	}

	page, err := pageParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, Paginate(api.Archive().Related(review), page))
}

func (api *API) library(w http.ResponseWriter, r *http.Request) {
	sections := api.Archive().Sections()

	letter := r.URL.Query().Get("letter")
	if letter == "" {
		writeJSON(w, http.StatusOK, sections)
		return
	}

	section, ok := archive.FindSection(sections, letter)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no artists under %q", letter))
		return
	}
	writeJSON(w, http.StatusOK, []archive.Section{section})
}

func (api *API) best(w http.ResponseWriter, r *http.Request) {
	a := api.Archive()
	years := a.Years()

	year := r.URL.Query().Get("year")
	if year != "" && !slices.Contains(years, year) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%v: %s", shared.ErrYearNotFound, year))
		return
	}

	writeJSON(w, http.StatusOK, BestResult{Ranking: a.Ranking(year), Years: years})
}

func (api *API) about(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.Archive().About())
}

func (api *API) lookup(w http.ResponseWriter, r *http.Request) (models.Review, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: review id must be an integer", shared.ErrInvalidInput))
		return models.Review{}, false
	}

	review, ok := api.Archive().Review(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%v: %d", shared.ErrReviewNotFound, id))
		return models.Review{}, false
	}
	return review, true
}

// HealthHandler reports liveness and the size of the loaded archive.
type HealthHandler struct {
	api *API
}

// NewHealthHandler creates a health handler for api.
func NewHealthHandler(api *API) *HealthHandler {
	return &HealthHandler{api: api}
}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a := h.api.Archive()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"reviews": a.Len(),
		"years":   len(a.Years()),
	})
}

// Paginate returns the page-th run of [navigation.PageSize] items, counting from 1.
// Pages past the end are empty.
func Paginate(items []models.Review, page int) Page {
	last := len(items)/navigation.PageSize + 1
	pager := navigation.Pager{Revealed: min(max(page, 1), last) * navigation.PageSize}
	revealed := navigation.Window(pager, items)
	start := len(revealed)
	if page <= last {
		start = min(pager.Revealed-navigation.PageSize, len(revealed))
	}

	return Page{
		Items:   slices.Clone(revealed[start:]),
		Page:    page,
		Total:   len(items),
		HasMore: pager.HasMore(len(items)),
	}
}

func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("%w: page must be a positive integer", shared.ErrInvalidInput)
	}
	return page, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
	w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
