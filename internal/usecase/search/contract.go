package search

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain/content"
)

// Catalog loads the items a search runs over.
type Catalog interface {
	List(ctx context.Context) ([]content.Item, error)
}
