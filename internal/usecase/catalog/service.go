package catalog

import (
	"context"
	"fmt"

	domcatalog "github.com/kailas-cloud/cinedex/internal/domain/catalog"
	"github.com/kailas-cloud/cinedex/internal/domain/content"
	"github.com/kailas-cloud/cinedex/internal/domain/recommend"
)

// Page is one catalog listing with its heading.
type Page struct {
	Title string
	Items []content.Item
}

// Service serves catalog browsing and recommendations.
type Service struct {
	repo Repository
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Browse lists the catalog through f.
func (s *Service) Browse(ctx context.Context, f domcatalog.Filter) (Page, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("list content: %w", err)
	}

	out, err := domcatalog.Apply(items, f)
	if err != nil {
		return Page{}, fmt.Errorf("browse: %w", err)
	}
	return Page{Title: domcatalog.Title(f, pageFallback(f.Type)), Items: out}, nil
}

// Recommendations returns items related to the item with the given ID.
func (s *Service) Recommendations(ctx context.Context, id string) ([]content.Item, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return recommend.For(&current, items), nil
}

func pageFallback(t content.Type) string {
	switch t {
	case content.Movie:
		return "Movies"
	case content.Series:
		return "Series"
	case content.Cartoon:
		return "Cartoons"
	}
	return "All Content"
}
