// Package chi exposes the HTTP API: query generation, health, metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/healthsearch/internal/domain"
	"github.com/kailas-cloud/healthsearch/internal/domain/product"
	logpkg "github.com/kailas-cloud/healthsearch/internal/logger"
	healthuc "github.com/kailas-cloud/healthsearch/internal/usecase/health"
	translateuc "github.com/kailas-cloud/healthsearch/internal/usecase/translate"
)

// Translator resolves natural-language queries.
type Translator interface {
	Translate(ctx context.Context, naturalQuery string) (translateuc.Result, error)
}

// HealthChecker assembles liveness reports.
type HealthChecker interface {
	Check(ctx context.Context) (healthuc.Status, error)
}

// Server handles the HTTP API.
type Server struct {
	translator Translator
	health     HealthChecker
	logger     *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(translator Translator, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{
		translator: translator,
		health:     health,
		logger:     logger,
	}
}

// Routes mounts the API endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/generate_query", s.handleGenerateQuery)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
}

type generateQueryRequest struct {
	Text string `json:"text"`
}

type generateQueryResponse struct {
	Query   string           `json:"query"`
	Results []product.Record `json:"results"`
	Summary string           `json:"generative_summary"`
}

type healthResponse struct {
	Message      string   `json:"message"`
	Requests     int64    `json:"requests"`
	CacheCount   int      `json:"cache_count"`
	CacheQueries []string `json:"cache_queries"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleGenerateQuery handles POST /generate_query. Generation exhaustion
// and model outages are reported as a friendly 200 payload so the caller
// always has something to render.
func (s *Server) handleGenerateQuery(w http.ResponseWriter, r *http.Request) {
	var req generateQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "Query text is required")
		return
	}

	logger := s.requestLogger(r)

	result, err := s.translator.Translate(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrGenerationExhausted) || errors.Is(err, domain.ErrLLMUnavailable) {
			logger.Warn("Translation failed", zap.String("text", req.Text), zap.Error(err))
			writeJSON(w, http.StatusOK, generateQueryResponse{
				Query:   "",
				Results: product.Fallback(),
				Summary: "Something went wrong, please try again! (" + err.Error() + ")",
			})
			return
		}
		logger.Error("Translation error", zap.String("text", req.Text), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, generateQueryResponse{
		Query:   result.Query,
		Results: result.Products,
		Summary: result.Summary,
	})
}

// handleHealth handles GET /health. An unreachable store is a 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, err := s.health.Check(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnreachable) {
			writeError(w, http.StatusServiceUnavailable, "store_unreachable", err.Error())
			return
		}
		s.requestLogger(r).Error("Health check error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Message:      status.Message,
		Requests:     status.Requests,
		CacheCount:   len(status.CacheQueries),
		CacheQueries: status.CacheQueries,
	})
}

// requestLogger prefers the per-request logger the wide-event middleware
// placed in the context (it carries the request id); the constructor
// logger is the fallback.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
