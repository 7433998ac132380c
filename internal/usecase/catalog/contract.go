package catalog

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain/content"
)

// Repository reads catalog items.
type Repository interface {
	Get(ctx context.Context, id string) (content.Item, error)
	List(ctx context.Context) ([]content.Item, error)
}
