package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/cinedex/internal/domain"
	domcatalog "github.com/kailas-cloud/cinedex/internal/domain/catalog"
	"github.com/kailas-cloud/cinedex/internal/domain/content"
)

// --- Mocks ---

type mockRepo struct {
	items   []content.Item
	listErr error
}

func (m *mockRepo) Get(_ context.Context, id string) (content.Item, error) {
	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return content.Item{}, domain.ErrContentNotFound
}

func (m *mockRepo) List(_ context.Context) ([]content.Item, error) {
	return m.items, m.listErr
}

func fixture() *mockRepo {
	return &mockRepo{items: []content.Item{
		{ID: "war", Title: "War", Type: content.Movie, Industry: content.Bollywood, Language: "Hindi",
			Genres: []string{"Action"}, CreatedAt: 3},
		{ID: "pathaan", Title: "Pathaan", Type: content.Movie, Industry: content.Bollywood, Language: "Hindi",
			Genres: []string{"Action"}, CreatedAt: 2},
		{ID: "dark", Title: "Dark", Type: content.Series, Industry: content.Other, CreatedAt: 1},
	}}
}

// --- Tests ---

func TestBrowse(t *testing.T) {
	svc := New(fixture())

	page, err := svc.Browse(context.Background(), domcatalog.Filter{
		Category: domcatalog.CategoryMovies, Tag: "Hindi (Bollywood)", Sort: domcatalog.SortTitleAsc,
	})
	if err != nil {
		t.Fatal(err)
	}
	if page.Title != "Hindi (Bollywood) Movies" {
		t.Errorf("title = %q", page.Title)
	}
	if len(page.Items) != 2 || page.Items[0].ID != "pathaan" || page.Items[1].ID != "war" {
		t.Errorf("items = %+v", page.Items)
	}
}

func TestBrowse_TypeFallbackTitle(t *testing.T) {
	tests := []struct {
		typ  content.Type
		want string
	}{
		{content.Movie, "Movies"},
		{content.Series, "Series"},
		{content.Cartoon, "Cartoons"},
		{"", "All Content"},
	}
	for _, tc := range tests {
		page, err := New(fixture()).Browse(context.Background(), domcatalog.Filter{Type: tc.typ})
		if err != nil {
			t.Fatal(err)
		}
		if page.Title != tc.want {
			t.Errorf("%q: title = %q, want %q", tc.typ, page.Title, tc.want)
		}
	}
}

func TestBrowse_InvalidSort(t *testing.T) {
	_, err := New(fixture()).Browse(context.Background(), domcatalog.Filter{Sort: "best"})
	if !errors.Is(err, domain.ErrInvalidSort) {
		t.Fatalf("expected ErrInvalidSort, got %v", err)
	}
}

func TestBrowse_ListError(t *testing.T) {
	repo := fixture()
	repo.listErr = errors.New("down")
	if _, err := New(repo).Browse(context.Background(), domcatalog.Filter{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecommendations(t *testing.T) {
	recs, err := New(fixture()).Recommendations(context.Background(), "war")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].ID != "pathaan" {
		t.Errorf("recs = %+v", recs)
	}
}

func TestRecommendations_NotFound(t *testing.T) {
	_, err := New(fixture()).Recommendations(context.Background(), "nope")
	if !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}
