package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/cinedex/internal/domain/content"
	"github.com/kailas-cloud/cinedex/internal/domain/search/match"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockCatalog struct {
	items []content.Item
	err   error
	calls int
}

func (m *mockCatalog) List(_ context.Context) ([]content.Item, error) {
	m.calls++
	return m.items, m.err
}

func catalogFixture() *mockCatalog {
	return &mockCatalog{items: []content.Item{
		{ID: "inception", Title: "Inception", Type: content.Movie, Industry: content.Hollywood,
			Genres: []string{"Sci-Fi"}, Views: 900},
		{ID: "dk", Title: "The Dark Knight", Type: content.Movie, Industry: content.Hollywood,
			Genres: []string{"Action"}, Views: 2000},
		{ID: "dark", Title: "Dark", Type: content.Series, Industry: content.Other,
			Language: "German", Genres: []string{"Mystery"}},
		{ID: "naruto", Title: "Naruto", Type: content.Cartoon, Industry: content.Anime,
			Genres: []string{"Action"}},
	}}
}

// --- Tests ---

func TestSearch_Ranked(t *testing.T) {
	svc := New(catalogFixture())

	resp, err := svc.Search(context.Background(), "dark", 0)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || len(resp.Results) != 2 {
		t.Fatalf("got total %d, %d results", resp.Total, len(resp.Results))
	}
	if resp.Results[0].ID() != "dark" || resp.Results[0].MatchType() != match.Exact {
		t.Errorf("top = %s (%s)", resp.Results[0].ID(), resp.Results[0].MatchType())
	}
	if resp.Results[1].ID() != "dk" {
		t.Errorf("second = %s", resp.Results[1].ID())
	}
}

func TestSearch_IntentReturned(t *testing.T) {
	svc := New(catalogFixture())
	typeBefore := testutil.ToFloat64(metrics.SearchIntentTotal.WithLabelValues("type"))

	resp, err := svc.Search(context.Background(), "hollywood movie", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Intent.Types) != 1 || resp.Intent.Types[0] != content.Movie {
		t.Errorf("types = %v", resp.Intent.Types)
	}
	if len(resp.Intent.Industries) != 1 || resp.Intent.Industries[0] != content.Hollywood {
		t.Errorf("industries = %v", resp.Intent.Industries)
	}
	if got := testutil.ToFloat64(metrics.SearchIntentTotal.WithLabelValues("type")); got != typeBefore+1 {
		t.Errorf("type intent counter = %v, want %v", got, typeBefore+1)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := New(catalogFixture())
	before := testutil.ToFloat64(metrics.SearchRequestsTotal.WithLabelValues("empty"))

	resp, err := svc.Search(context.Background(), "   ", 0)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Results == nil || len(resp.Results) != 0 {
		t.Errorf("expected empty non-nil results, got %v", resp.Results)
	}
	if got := testutil.ToFloat64(metrics.SearchRequestsTotal.WithLabelValues("empty")); got != before+1 {
		t.Errorf("empty counter = %v, want %v", got, before+1)
	}
}

func TestSearch_BlankQuerySkipsCatalog(t *testing.T) {
	for _, q := range []string{"", "  \t "} {
		cat := &mockCatalog{err: errors.New("store down")}
		resp, err := New(cat).Search(context.Background(), q, 0)
		if err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
		if cat.calls != 0 {
			t.Errorf("Search(%q) loaded the catalog %d times", q, cat.calls)
		}
		if resp.Total != 0 || len(resp.Results) != 0 || resp.Intent.HasFilters() {
			t.Errorf("Search(%q) = %+v", q, resp)
		}
	}
}

func TestSearch_Limits(t *testing.T) {
	var items []content.Item
	for i := range 150 {
		items = append(items, content.Item{ID: fmt.Sprintf("m%d", i), Title: fmt.Sprintf("Movie %d", i),
			Type: content.Movie, Industry: content.Other})
	}
	svc := New(&mockCatalog{items: items})

	tests := []struct {
		limit, want int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{5, 5},
		{500, MaxLimit},
	}
	for _, tc := range tests {
		resp, err := svc.Search(context.Background(), "movie", tc.limit)
		if err != nil {
			t.Fatal(err)
		}
		if len(resp.Results) != tc.want {
			t.Errorf("limit %d: got %d results, want %d", tc.limit, len(resp.Results), tc.want)
		}
		if resp.Total != 150 {
			t.Errorf("limit %d: total = %d", tc.limit, resp.Total)
		}
	}
}

func TestSearch_WithLimits(t *testing.T) {
	var items []content.Item
	for i := range 10 {
		items = append(items, content.Item{ID: fmt.Sprintf("m%d", i), Title: "Film", Type: content.Movie})
	}
	svc := New(&mockCatalog{items: items}).WithLimits(3, 4)

	resp, _ := svc.Search(context.Background(), "film", 0)
	if len(resp.Results) != 3 {
		t.Errorf("default: got %d", len(resp.Results))
	}
	resp, _ = svc.Search(context.Background(), "film", 9)
	if len(resp.Results) != 4 {
		t.Errorf("max: got %d", len(resp.Results))
	}
}

func TestSearch_CatalogError(t *testing.T) {
	svc := New(&mockCatalog{err: errors.New("store down")})
	if _, err := svc.Search(context.Background(), "dark", 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearch_TopMatchMetric(t *testing.T) {
	svc := New(catalogFixture())
	before := testutil.ToFloat64(metrics.SearchMatchTotal.WithLabelValues(string(match.Exact)))

	if _, err := svc.Search(context.Background(), "naruto", 0); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(metrics.SearchMatchTotal.WithLabelValues(string(match.Exact))); got != before+1 {
		t.Errorf("exact counter = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(metrics.SearchCatalogSize); got != 4 {
		t.Errorf("catalog size = %v", got)
	}
}

func TestParse(t *testing.T) {
	in := New(catalogFixture()).Parse("hindi action movie")
	if len(in.Languages) != 1 || in.Languages[0] != "hindi" {
		t.Errorf("languages = %v", in.Languages)
	}
	if len(in.Genres) != 1 || in.Genres[0] != "Action" {
		t.Errorf("genres = %v", in.Genres)
	}
}
