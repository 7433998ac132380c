// Package chi is the HTTP API of the catalog: content CRUD, ranked search,
// catalog browsing and admin autofill.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	domcatalog "github.com/kailas-cloud/cinedex/internal/domain/catalog"
	"github.com/kailas-cloud/cinedex/internal/domain/content"
	domusage "github.com/kailas-cloud/cinedex/internal/domain/usage"
	logpkg "github.com/kailas-cloud/cinedex/internal/logger"
	autofilluc "github.com/kailas-cloud/cinedex/internal/usecase/autofill"
	cataloguc "github.com/kailas-cloud/cinedex/internal/usecase/catalog"
	contentuc "github.com/kailas-cloud/cinedex/internal/usecase/content"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
	usageuc "github.com/kailas-cloud/cinedex/internal/usecase/usage"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers.
type Server struct {
	contents      *contentuc.Service
	search        *searchuc.Service
	catalog       *cataloguc.Service
	autofill      *autofilluc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	errorHandlers []errorHandler

	autofillPerMinute int
	autofillBurst     int
}

// NewServer creates an HTTP API server.
func NewServer(
	contents *contentuc.Service,
	search *searchuc.Service,
	catalog *cataloguc.Service,
	autofill *autofilluc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
) *Server {
	s := &Server{
		contents: contents,
		search:   search,
		catalog:  catalog,
		autofill: autofill,
		usage:    usage,
		health:   health,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrContentNotFound, http.StatusNotFound, ErrorCodeContentNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		detailHandler(domain.ErrInvalidContent, http.StatusBadRequest, ErrorCodeValidationFailed),
		detailHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeInvalidQuery),
		detailHandler(domain.ErrInvalidSort, http.StatusBadRequest, ErrorCodeInvalidSort),
		sentinelHandler(domain.ErrAutofillUnavailable, http.StatusServiceUnavailable, ErrorCodeAutofillUnavailable),
		detailHandler(domain.ErrAutofillQuotaExceeded, http.StatusPaymentRequired, ErrorCodeAutofillQuotaExceeded),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrAutofillProviderError, http.StatusBadGateway, ErrorCodeAutofillProviderError),
	}
	return s
}

// WithAutofillRateLimit caps POST /api/autofill per client IP. perMinute <= 0 disables the cap.
func (s *Server) WithAutofillRateLimit(perMinute, burst int) *Server {
	s.autofillPerMinute = perMinute
	s.autofillBurst = burst
	return s
}

// Routes mounts the API on r. Mutations and autofill require a bearer key
// from apiKeys; an empty list disables auth.
func (s *Server) Routes(r chi.Router, apiKeys []string) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/contents", s.ListContents)
		r.Get("/contents/{id}", s.GetContent)
		r.Post("/contents/{id}/view", s.RecordView)
		r.Get("/contents/{id}/recommendations", s.Recommendations)
		r.Get("/search", s.Search)
		r.Get("/search/intent", s.ParseIntent)
		r.Get("/catalog", s.Catalog)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(apiKeys))
			r.Post("/contents", s.CreateContent)
			r.Put("/contents/{id}", s.UpdateContent)
			r.Delete("/contents/{id}", s.DeleteContent)
			r.With(RateLimitMiddleware(s.autofillPerMinute, s.autofillBurst)).Post("/autofill", s.Autofill)
			r.Get("/autofill/usage", s.AutofillUsage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
}

// ListContents handles GET /api/contents.
func (s *Server) ListContents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typ, err := parseTypeParam(q.Get("type"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items, err := s.contents.List(r.Context(), contentuc.ListFilter{
		Type:     typ,
		Language: q.Get("language"),
		Industry: q.Get("industry"),
		Search:   q.Get("search"),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contentsToDTO(items))
}

// GetContent handles GET /api/contents/{id}.
func (s *Server) GetContent(w http.ResponseWriter, r *http.Request) {
	it, err := s.contents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contentToDTO(&it))
}

// CreateContent handles POST /api/contents.
func (s *Server) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	it, err := s.contents.Create(r.Context(), contentFromRequest(&req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/contents/"+it.ID)
	writeJSON(w, http.StatusCreated, contentToDTO(&it))
}

// UpdateContent handles PUT /api/contents/{id}.
func (s *Server) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	it, err := s.contents.Update(r.Context(), chi.URLParam(r, "id"), contentFromRequest(&req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contentToDTO(&it))
}

// DeleteContent handles DELETE /api/contents/{id}.
func (s *Server) DeleteContent(w http.ResponseWriter, r *http.Request) {
	if err := s.contents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordView handles POST /api/contents/{id}/view.
func (s *Server) RecordView(w http.ResponseWriter, r *http.Request) {
	views, err := s.contents.IncrementView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewResponse{Views: views})
}

// Recommendations handles GET /api/contents/{id}/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.Recommendations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contentsToDTO(items))
}

// Search handles GET /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.handleDomainError(w, r, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidQuery))
			return
		}
		limit = n
	}

	r = r.WithContext(logpkg.With(r.Context(), zap.String("query", q.Get("q")), zap.Int("limit", limit)))
	resp, err := s.search.Search(r.Context(), q.Get("q"), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SearchHit, len(resp.Results))
	for i := range resp.Results {
		items[i] = searchHitToDTO(&resp.Results[i])
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Items:  items,
		Intent: intentToDTO(&resp.Intent),
		Limit:  len(items),
		Total:  resp.Total,
	})
}

// ParseIntent handles GET /api/search/intent.
func (s *Server) ParseIntent(w http.ResponseWriter, r *http.Request) {
	in := s.search.Parse(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, intentToDTO(&in))
}

// Catalog handles GET /api/catalog.
func (s *Server) Catalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typ, err := parseTypeParam(q.Get("type"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.catalog.Browse(r.Context(), domcatalog.Filter{
		Type:     typ,
		Category: q.Get("category"),
		Tag:      q.Get("filter"),
		Query:    q.Get("q"),
		Sort:     domcatalog.Sort(q.Get("sort")),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CatalogResponse{
		Title: page.Title,
		Items: contentsToDTO(page.Items),
		Total: len(page.Items),
	})
}

// Autofill handles POST /api/autofill.
func (s *Server) Autofill(w http.ResponseWriter, r *http.Request) {
	var req AutofillRequest
	if !decodeBody(w, r, &req) {
		return
	}

	r = r.WithContext(logpkg.With(r.Context(), zap.String("title", req.Title), zap.String("type", req.Type)))
	draft, err := s.autofill.Autofill(r.Context(), req.Title, content.Type(req.Type))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, autofillToDTO(&draft))
}

// AutofillUsage handles GET /api/autofill/usage.
func (s *Server) AutofillUsage(w http.ResponseWriter, r *http.Request) {
	period, err := domusage.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	report := s.usage.Report(r.Context(), period)
	writeJSON(w, http.StatusOK, usageToDTO(&report))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func parseTypeParam(raw string) (content.Type, error) {
	if raw == "" {
		return "", nil
	}
	t, err := content.ParseType(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	return t, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error and replies with the sentinel's own message.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// detailHandler is sentinelHandler for errors whose detail is safe to show
// (client input, the exhausted budget period); the full message is returned.
func detailHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
