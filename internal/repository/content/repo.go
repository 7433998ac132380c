// Package content stores catalog items as JSON documents.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/domain"
	domcontent "github.com/kailas-cloud/cinedex/internal/domain/content"
)

const viewsPath = ".views"

// store is the consumer interface for content documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	JSONNumIncrBy(ctx context.Context, key, path string, n int64) (int64, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/content.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a content repository. Keys are "<prefix>content:<id>".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix + "content:"}
}

// Save writes the whole item, replacing any previous version.
func (r *Repo) Save(ctx context.Context, it *domcontent.Item) error {
	if it.ID == "" {
		return fmt.Errorf("save content: empty id")
	}
	data, err := json.Marshal(toDoc(it))
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	key := r.key(it.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Get returns an item by ID.
func (r *Repo) Get(ctx context.Context, id string) (domcontent.Item, error) {
	key := r.key(id)
	raw, err := r.store.JSONGet(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcontent.Item{}, domain.ErrContentNotFound
		}
		return domcontent.Item{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return decode(raw)
}

// Delete removes an item.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrContentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// List returns every stored item, newest first (ties by ID).
func (r *Repo) List(ctx context.Context) ([]domcontent.Item, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan content: %w", err)
	}
	if len(keys) == 0 {
		return []domcontent.Item{}, nil
	}

	docs, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	items := make([]domcontent.Item, 0, len(docs))
	for i, raw := range docs {
		if raw == nil {
			continue // deleted between SCAN and GET
		}
		it, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		items = append(items, it)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt > items[j].CreatedAt
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// IncrementViews bumps the view counter and returns the new value.
func (r *Repo) IncrementViews(ctx context.Context, id string) (int64, error) {
	key := r.key(id)
	n, err := r.store.JSONNumIncrBy(ctx, key, viewsPath, 1)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, domain.ErrContentNotFound
		}
		return 0, fmt.Errorf("json.numincrby %s: %w", key, err)
	}
	return n, nil
}

func (r *Repo) key(id string) string {
	return r.prefix + id
}

// decode accepts both a bare document and the one-element array returned
// for a "$" path.
func decode(raw []byte) (domcontent.Item, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var docs []itemDoc
		if err := json.Unmarshal(raw, &docs); err != nil {
			return domcontent.Item{}, fmt.Errorf("unmarshal content: %w", err)
		}
		if len(docs) == 0 {
			return domcontent.Item{}, domain.ErrContentNotFound
		}
		return fromDoc(&docs[0]), nil
	}
	var d itemDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return domcontent.Item{}, fmt.Errorf("unmarshal content: %w", err)
	}
	return fromDoc(&d), nil
}
