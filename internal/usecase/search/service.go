package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/cinedex/internal/domain/search/intent"
	"github.com/kailas-cloud/cinedex/internal/domain/search/rank"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

// Default result limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Response is a ranked search outcome.
type Response struct {
	Results []result.Result
	Intent  intent.Intent
	// Total counts matches before the limit was applied.
	Total int
}

// Service runs ranked catalog search.
type Service struct {
	catalog      Catalog
	defaultLimit int
	maxLimit     int
}

// New creates a search service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog, defaultLimit: DefaultLimit, maxLimit: MaxLimit}
}

// WithLimits configures result limits. Non-positive values keep the defaults.
func (s *Service) WithLimits(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Search ranks the whole catalog against query. limit <= 0 selects the
// default, larger values are capped at the maximum.
func (s *Service) Search(ctx context.Context, query string, limit int) (Response, error) {
	start := time.Now()

	if strings.TrimSpace(query) == "" {
		observe(nil, nil, time.Since(start))
		return Response{Results: []result.Result{}}, nil
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load catalog: %w", err)
	}
	metrics.SearchCatalogSize.Set(float64(len(items)))

	in := intent.Parse(query)
	results := rank.Rank(items, &in)

	total := len(results)
	if n := s.limit(limit); len(results) > n {
		results = results[:n]
	}

	observe(&in, results, time.Since(start))
	return Response{Results: results, Intent: in, Total: total}, nil
}

// Parse returns the structured intent of query, for filter chips.
func (s *Service) Parse(query string) intent.Intent {
	return intent.Parse(query)
}

func (s *Service) limit(requested int) int {
	switch {
	case requested <= 0:
		return s.defaultLimit
	case requested > s.maxLimit:
		return s.maxLimit
	}
	return requested
}

// observe records one search. in is nil for a blank query.
func observe(in *intent.Intent, results []result.Result, d time.Duration) {
	metrics.SearchDuration.Observe(d.Seconds())

	if in != nil {
		for _, c := range in.Categories() {
			metrics.SearchIntentTotal.WithLabelValues(c).Inc()
		}
	}

	if len(results) == 0 {
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
		return
	}
	metrics.SearchRequestsTotal.WithLabelValues("hit").Inc()
	metrics.SearchMatchTotal.WithLabelValues(string(results[0].MatchType())).Inc()
}
