package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/siderealab/orrery/pkg/aspect"
	"github.com/siderealab/orrery/pkg/chart"
	"github.com/siderealab/orrery/pkg/errors"
	"github.com/siderealab/orrery/pkg/layout"
	"github.com/siderealab/orrery/pkg/pipeline"
	"github.com/siderealab/orrery/pkg/store"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// chartRequest is the body of POST /api/v1/chart.
type chartRequest struct {
	Subject chart.Subject `json:"subject"`
	Refresh bool          `json:"refresh,omitempty"`
}

// chartResponse carries the chart plus run metadata.
type chartResponse struct {
	Chart     *chart.Chart    `json:"chart"`
	ChartHash string          `json:"chart_hash"`
	Aspects   []aspect.Record `json:"aspects"`
	Layout    []layout.Entry  `json:"layout"`
	Cached    bool            `json:"cached"`
}

// synastryRequest is the body of POST /api/v1/synastry.
type synastryRequest struct {
	SubjectA chart.Subject `json:"subject_a"`
	SubjectB chart.Subject `json:"subject_b"`
	Refresh  bool          `json:"refresh,omitempty"`
}

// synastryResponse carries both charts and the cross-chart aspects.
type synastryResponse struct {
	Charts      []*chart.Chart  `json:"charts"`
	ChartHashes []string        `json:"chart_hashes"`
	Aspects     []aspect.Record `json:"aspects"`
	Layout      []layout.Entry  `json:"layout"`
}

// layoutRequest is the body of POST /api/v1/layout: raw entities to
// place, bypassing chart computation.
type layoutRequest struct {
	Entities      []layout.Entity `json:"entities"`
	MinSeparation float64         `json:"min_separation,omitempty"`
}

// layoutResponse carries the resolved entries.
type layoutResponse struct {
	Entries []layout.Entry `json:"entries"`
}

// reportRequest is the body of POST /api/v1/reports.
type reportRequest struct {
	Subjects []chart.Subject `json:"subjects"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.runner.Execute(r.Context(), s.options(req.Refresh, req.Subject))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chartResponse{
		Chart:     result.Charts[0],
		ChartHash: result.ChartHashes[0],
		Aspects:   result.Aspects,
		Layout:    result.Layout,
		Cached:    result.CacheInfo.ChartHits[0],
	})
}

func (s *Server) handleSynastry(w http.ResponseWriter, r *http.Request) {
	var req synastryRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.runner.Execute(r.Context(), s.options(req.Refresh, req.SubjectA, req.SubjectB))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, synastryResponse{
		Charts:      result.Charts,
		ChartHashes: result.ChartHashes,
		Aspects:     result.Aspects,
		Layout:      result.Layout,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Entities) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "entities are required"))
		return
	}

	resolver := layout.Resolver{MinSeparation: req.MinSeparation}
	writeJSON(w, http.StatusOK, layoutResponse{Entries: resolver.Resolve(req.Entities)})
}

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "report storage is not configured"))
		return
	}

	var req reportRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.runner.Execute(r.Context(), s.options(false, req.Subjects...))
	if err != nil {
		s.writeError(w, err)
		return
	}

	report := store.NewReport(store.NewID(), result)
	if err := s.store.Put(r.Context(), report); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "report storage is not configured"))
		return
	}

	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "report storage is not configured"))
		return
	}

	report, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "report storage is not configured"))
		return
	}

	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

// options builds pipeline options with the server's providers attached.
func (s *Server) options(refresh bool, subjects ...chart.Subject) pipeline.Options {
	return pipeline.Options{
		Subjects:     subjects,
		ProviderName: s.cfg.ProviderName,
		Refresh:      refresh,
		Ephemeris:    s.eph,
		Sidereal:     s.sid,
		Logger:       s.logger,
	}
}

// decode parses a JSON request body, responding with INVALID_FORMAT on
// failure. Returns false when a response has already been written.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidBody,
		errors.ErrCodeInvalidInstant, errors.ErrCodePolarLatitude,
		errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeReportNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	case errors.ErrCodeProvider:
		status = http.StatusBadGateway
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}
