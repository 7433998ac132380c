package content

import (
	"context"
	"sort"
	"time"

	"github.com/kailas-cloud/cinedex/internal/domain"
	domcontent "github.com/kailas-cloud/cinedex/internal/domain/content"
)

// fakeRepo is a map-backed Repository.
type fakeRepo struct {
	items   map[string]domcontent.Item
	saveErr error
	listErr error
}

func newFakeRepo(items ...domcontent.Item) *fakeRepo {
	r := &fakeRepo{items: map[string]domcontent.Item{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeRepo) Save(_ context.Context, it *domcontent.Item) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.items[it.ID] = it.Clone()
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id string) (domcontent.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return domcontent.Item{}, domain.ErrContentNotFound
	}
	return it, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context) ([]domcontent.Item, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domcontent.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (r *fakeRepo) IncrementViews(_ context.Context, id string) (int64, error) {
	it, ok := r.items[id]
	if !ok {
		return 0, domain.ErrContentNotFound
	}
	it.Views++
	r.items[id] = it
	return it.Views, nil
}

func newTestService(repo Repository) *Service {
	s := New(repo)
	s.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	s.newID = func() string { return "fixed-id" }
	return s
}
