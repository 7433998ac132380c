package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/cinedex/internal/domain"
	domcontent "github.com/kailas-cloud/cinedex/internal/domain/content"
)

// ListFilter narrows the admin content list. Zero fields are inactive;
// Language and Industry compare case-insensitively, Search is a title substring.
type ListFilter struct {
	Type     domcontent.Type
	Language string
	Industry string
	Search   string
}

// Service handles catalog item CRUD.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// New creates a content service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Create validates and stores a new item. ID, CreatedAt and Views are assigned here.
func (s *Service) Create(ctx context.Context, it domcontent.Item) (domcontent.Item, error) {
	normalize(&it)
	if err := it.Validate(); err != nil {
		return domcontent.Item{}, fmt.Errorf("validate content: %w: %w", domain.ErrInvalidContent, err)
	}

	s.assignLinkIDs(&it)
	it.ID = s.newID()
	it.CreatedAt = s.now().UnixMilli()
	it.Views = 0

	if err := s.repo.Save(ctx, &it); err != nil {
		return domcontent.Item{}, fmt.Errorf("create content: %w", err)
	}
	return it, nil
}

// Get retrieves an item by ID.
func (s *Service) Get(ctx context.Context, id string) (domcontent.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcontent.Item{}, fmt.Errorf("get content: %w", err)
	}
	return it, nil
}

// Update replaces the editable fields of an existing item, keeping its
// ID, CreatedAt and Views.
func (s *Service) Update(ctx context.Context, id string, it domcontent.Item) (domcontent.Item, error) {
	normalize(&it)
	if err := it.Validate(); err != nil {
		return domcontent.Item{}, fmt.Errorf("validate content: %w: %w", domain.ErrInvalidContent, err)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcontent.Item{}, fmt.Errorf("get content: %w", err)
	}

	s.assignLinkIDs(&it)
	it.ID = existing.ID
	it.CreatedAt = existing.CreatedAt
	it.Views = existing.Views

	if err := s.repo.Save(ctx, &it); err != nil {
		return domcontent.Item{}, fmt.Errorf("update content: %w", err)
	}
	return it, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// List returns the items matching f, newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domcontent.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domcontent.Item, 0, len(items))
	for i := range items {
		it := &items[i]
		if f.Type != "" && it.Type != f.Type {
			continue
		}
		if f.Language != "" && !strings.EqualFold(it.Language, f.Language) {
			continue
		}
		if f.Industry != "" && !strings.EqualFold(string(it.Industry), f.Industry) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Title), search) {
			continue
		}
		out = append(out, *it)
	}
	return out, nil
}

// All returns the whole catalog, newest first.
func (s *Service) All(ctx context.Context) ([]domcontent.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

// IncrementView bumps the view counter and returns the new value.
func (s *Service) IncrementView(ctx context.Context, id string) (int64, error) {
	views, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return views, nil
}

func (s *Service) assignLinkIDs(it *domcontent.Item) {
	for i := range it.DownloadLinks {
		if it.DownloadLinks[i].ID == "" {
			it.DownloadLinks[i].ID = s.newID()
		}
	}
}

func normalize(it *domcontent.Item) {
	it.Title = strings.TrimSpace(it.Title)
	it.Language = strings.TrimSpace(it.Language)
	it.Genres = domcontent.NormalizeGenres(it.Genres)
}
