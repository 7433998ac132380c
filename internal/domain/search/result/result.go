package result

import (
	"github.com/kailas-cloud/cinedex/internal/domain/content"
	"github.com/kailas-cloud/cinedex/internal/domain/search/match"
)

// Result is a single ranked search hit.
type Result struct {
	item      content.Item
	score     float64
	matchType match.Type
}

// New creates a search result.
func New(item content.Item, score float64, matchType match.Type) Result {
	return Result{item: item, score: score, matchType: matchType}
}

// Item returns the matched catalog item.
func (r *Result) Item() content.Item { return r.item }

// ID returns the matched item identifier.
func (r *Result) ID() string { return r.item.ID }

// Score returns the ranking score (higher is better).
func (r *Result) Score() float64 { return r.score }

// MatchType returns how the item matched.
func (r *Result) MatchType() match.Type { return r.matchType }
