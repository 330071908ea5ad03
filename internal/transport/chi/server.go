// Package chi exposes the catalog over HTTP. Routing, validation, and span
// serialization live here; all matching semantics stay in the usecases.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shelfdex/shelfdex/internal/domain"
	"github.com/shelfdex/shelfdex/internal/domain/search/mode"
	"github.com/shelfdex/shelfdex/internal/domain/search/query"
	"github.com/shelfdex/shelfdex/internal/metrics"
	healthuc "github.com/shelfdex/shelfdex/internal/usecase/health"
	recorduc "github.com/shelfdex/shelfdex/internal/usecase/record"
	searchuc "github.com/shelfdex/shelfdex/internal/usecase/search"
	suggestuc "github.com/shelfdex/shelfdex/internal/usecase/suggest"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the HTTP handlers to the use case services.
type Server struct {
	records         *recorduc.Service
	search          *searchuc.Service
	suggest         *suggestuc.Service
	health          *healthuc.Service
	logger          *zap.Logger
	errorHandlers   []errorHandler
	defaultPageSize int
	maxPageSize     int
}

// NewServer creates an HTTP API server.
func NewServer(
	records *recorduc.Service,
	search *searchuc.Service,
	suggest *suggestuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		records:         records,
		search:          search,
		suggest:         suggest,
		health:          health,
		logger:          logger,
		defaultPageSize: 10,
		maxPageSize:     100,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidConfiguration, http.StatusBadRequest, "invalid_request"),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, "validation_failed"),
		sentinelHandler(domain.ErrRecordNotFound, http.StatusNotFound, "record_not_found"),
	}
	return s
}

// WithPagination overrides the default and maximum page sizes.
func (s *Server) WithPagination(defaultPageSize, maxPageSize int) *Server {
	s.defaultPageSize = defaultPageSize
	s.maxPageSize = maxPageSize
	return s
}

// Register mounts all routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/records", s.CreateRecord)
	r.Get("/records", s.ListRecords)
	r.Get("/records/{id}", s.GetRecord)
	r.Get("/search", s.Search)
	r.Get("/suggest", s.Suggest)
}

// CreateRecord handles POST /records.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed",
			"date must be formatted as "+dateLayout)
		return
	}

	rec, err := s.records.Create(r.Context(), req.Title, req.Description, req.Tags, date)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, recordToDTO(rec))
}

// ListRecords handles GET /records.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]recordDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, recordToDTO(rec))
	}
	writeJSON(w, http.StatusOK, items)
}

// GetRecord handles GET /records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "record id must be an integer")
		return
	}

	rec, err := s.records.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToDTO(rec))
}

// Search handles GET /search. Optional configuration fields are defaulted
// here, before the core is invoked: limit falls back to the configured page
// size and is clamped to the maximum presentation option.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	limit := s.defaultPageSize
	if raw := params.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be an integer")
			return
		}
		limit = parsed
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	sortMode := mode.Mode(params.Get("sort"))
	q, err := query.New(params.Get("q"), params.Get("tag"), sortMode, limit)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(sortMode), "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	start := time.Now()
	page, err := s.search.Search(r.Context(), q)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(q.SortMode()), "error").Inc()
		s.handleDomainError(w, err)
		return
	}
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.SearchResults.Observe(float64(page.Total()))
	metrics.SearchRequestsTotal.WithLabelValues(string(q.SortMode()), "ok").Inc()

	writeJSON(w, http.StatusOK, pageToDTO(page))
}

// Suggest handles GET /suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.suggest.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		metrics.SuggestRequestsTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, err)
		return
	}
	metrics.SuggestRequestsTotal.WithLabelValues("ok").Inc()

	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// handleDomainError maps domain sentinels to HTTP responses.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err, err.Error()) {
			return
		}
	}
	s.logger.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

// sentinelHandler builds an errorHandler matching one sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
