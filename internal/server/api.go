// Package server exposes the prospecting operations as a local JSON API for
// the browser UI. Provider outages surface as 502 with an error body instead
// of being folded into "no results": the UI can tell an outage from an empty
// search.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/leadforge/prospector-cli/internal/analyze"
	"github.com/leadforge/prospector-cli/internal/enrich"
	"github.com/leadforge/prospector-cli/internal/export"
	"github.com/leadforge/prospector-cli/internal/filter"
	"github.com/leadforge/prospector-cli/internal/model"
	"github.com/leadforge/prospector-cli/internal/search"
	"github.com/leadforge/prospector-cli/internal/session"
	"github.com/leadforge/prospector-cli/internal/store"
)

// Capabilities reports what the configured providers can do, so the UI can
// fall back to the simplified visualization without a maps key.
type Capabilities struct {
	Maps      bool `json:"maps"`
	Grounding bool `json:"grounding"`
}

// API wires the adapters behind HTTP handlers.
type API struct {
	search   *search.Service
	analyzer *analyze.Analyzer
	finder   *enrich.Finder
	store    store.Store
	session  *session.Manager
	caps     Capabilities
}

// New creates the API.
func New(searchSvc *search.Service, analyzer *analyze.Analyzer, finder *enrich.Finder, st store.Store, caps Capabilities) *API {
	return &API{
		search:   searchSvc,
		analyzer: analyzer,
		finder:   finder,
		store:    st,
		session:  session.NewManager(),
		caps:     caps,
	}
}

// Router builds the chi router with CORS configured for the browser UI.
func (a *API) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", a.handleHealth)
	r.Get("/api/capabilities", a.handleCapabilities)
	r.Post("/api/search", a.handleSearch)
	r.Post("/api/enrich", a.handleEnrich)
	r.Post("/api/analyze", a.handleAnalyze)
	r.Get("/api/export.csv", a.handleExportCSV)

	r.Route("/api/prospects", func(r chi.Router) {
		r.Get("/", a.handleListProspects)
		r.Post("/", a.handleSaveProspect)
		r.Patch("/{id}/status", a.handleUpdateStatus)
		r.Delete("/{id}", a.handleRemoveProspect)
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleCapabilities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.caps)
}

// scoredResult is a SearchResult with its transient heuristic score, which
// travels alongside the canonical shape rather than inside it.
type scoredResult struct {
	model.SearchResult
	Score float64 `json:"local_score"`
}

type searchRequest struct {
	Query   string            `json:"query"`
	City    string            `json:"city"`
	Filters filter.Predicates `json:"filters"`
}

type searchResponse struct {
	Generation uint64         `json:"generation"`
	Results    []scoredResult `json:"results"`
}

func (a *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	gen := a.session.Begin(req.Query, req.City)
	results, scores := a.search.Search(r.Context(), req.Query, req.City)
	if !a.session.Publish(gen, results, scores) {
		// A newer search superseded this one while it ran.
		writeError(w, http.StatusConflict, "search superseded by a newer query")
		return
	}

	filtered := filter.Apply(results, scores, req.Filters)
	writeJSON(w, http.StatusOK, searchResponse{
		Generation: gen,
		Results:    scored(filtered, scores),
	})
}

type enrichRequest struct {
	SourceID string `json:"source_id"`
}

func (a *API) handleEnrich(w http.ResponseWriter, r *http.Request) {
	var req enrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SourceID == "" {
		writeError(w, http.StatusBadRequest, "source_id is required")
		return
	}

	result, ok := a.session.Get(req.SourceID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown source_id")
		return
	}
	if !a.session.StartEnrich(req.SourceID) {
		writeError(w, http.StatusConflict, "enrichment already in progress")
		return
	}
	defer a.session.EndEnrich(req.SourceID)

	email, found, err := a.finder.FindEmail(r.Context(), result.Business)
	if err != nil {
		zap.L().Warn("server: enrichment failed",
			zap.String("source_id", req.SourceID),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "provider error")
		return
	}
	if found {
		a.session.SetEmail(req.SourceID, email)
	}
	writeJSON(w, http.StatusOK, map[string]any{"found": found, "email": email})
}

type analyzeRequest struct {
	SourceID string `json:"source_id"`
}

func (a *API) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SourceID == "" {
		writeError(w, http.StatusBadRequest, "source_id is required")
		return
	}

	result, ok := a.session.Get(req.SourceID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown source_id")
		return
	}

	insight, err := a.analyzer.Analyze(r.Context(), result.Business)
	if err != nil {
		zap.L().Warn("server: analysis failed",
			zap.String("source_id", req.SourceID),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, insight)
}

func (a *API) handleListProspects(w http.ResponseWriter, r *http.Request) {
	prospects, err := a.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, prospects)
}

type saveProspectRequest struct {
	SourceID string         `json:"source_id"`
	Insight  *model.Insight `json:"insight,omitempty"`
}

func (a *API) handleSaveProspect(w http.ResponseWriter, r *http.Request) {
	var req saveProspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SourceID == "" {
		writeError(w, http.StatusBadRequest, "source_id is required")
		return
	}

	result, ok := a.session.Get(req.SourceID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown source_id")
		return
	}

	p := model.NewProspect(result, req.Insight)
	if err := a.store.Upsert(r.Context(), p); err != nil {
		zap.L().Error("server: save prospect failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type statusRequest struct {
	Status model.Status `json:"status"`
}

func (a *API) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	if err := a.store.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleRemoveProspect(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportCSV streams the current session's filtered results. Filters
// come as query parameters so the link works as a plain download.
func (a *API) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	query, city, results, scores := a.session.Current()

	preds, err := predicatesFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	filtered := filter.Apply(results, scores, preds)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+export.Filename(query, city, "csv", time.Now())+`"`)
	if err := export.WriteCSV(w, export.ResultRows(filtered, scores)); err != nil {
		zap.L().Error("server: csv export failed", zap.Error(err))
	}
}

func predicatesFromQuery(r *http.Request) (filter.Predicates, error) {
	var preds filter.Predicates
	q := r.URL.Query()

	if v := q.Get("max_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return preds, errInvalidParam("max_rating")
		}
		preds.MaxRating = &f
	}
	if v := q.Get("min_score"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return preds, errInvalidParam("min_score")
		}
		preds.MinScore = &f
	}
	preds.NoWebsiteOnly = q.Get("no_website") == "true"
	return preds, nil
}

type paramError string

func errInvalidParam(name string) paramError { return paramError("invalid " + name) }

func (e paramError) Error() string { return string(e) }

func scored(results []model.SearchResult, scores map[string]float64) []scoredResult {
	out := make([]scoredResult, 0, len(results))
	for _, r := range results {
		out = append(out, scoredResult{SearchResult: r, Score: scores[r.SourceID]})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
