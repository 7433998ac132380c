package content

import (
	"context"

	domcontent "github.com/kailas-cloud/cinedex/internal/domain/content"
)

// Repository defines the storage contract for catalog items.
type Repository interface {
	Save(ctx context.Context, it *domcontent.Item) error
	Get(ctx context.Context, id string) (domcontent.Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domcontent.Item, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
}
