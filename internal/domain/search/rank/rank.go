// Package rank filters catalog items by parsed query intent and orders the
// survivors by tiered title-match quality.
package rank

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain/content"
	"github.com/kailas-cloud/cinedex/internal/domain/search/intent"
	"github.com/kailas-cloud/cinedex/internal/domain/search/match"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/domain/search/textdist"
)

// Score contributions.
const (
	IntentScore    = 200
	ExactScore     = 3000
	PrefixScore    = 2000
	WordStartScore = 1500
	PartialScore   = 500
	FuzzyWeight    = 200

	// FuzzyThreshold is the minimum similarity (exclusive) for a fuzzy title match.
	FuzzyThreshold = 0.7

	popularityViewsDivisor = 1000
	popularityBaseYear     = 2000
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// Normalize lower-cases s, strips everything but ASCII letters, digits and
// whitespace, and trims the result.
func Normalize(s string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), ""))
}

// Search parses query and ranks items against it.
// An empty or whitespace query yields no results.
func Search(items []content.Item, query string) []result.Result {
	if strings.TrimSpace(query) == "" {
		return []result.Result{}
	}
	in := intent.Parse(query)
	return Rank(items, &in)
}

// Rank filters items by the structured intent and scores the survivors
// against the residual text. Results are sorted by score descending; ties
// keep input order. Items are read, never modified.
func Rank(items []content.Item, in *intent.Intent) []result.Result {
	queryText := Normalize(in.Text)
	hasIntent := in.HasFilters()

	results := make([]result.Result, 0)
	for i := range items {
		it := &items[i]
		if !Matches(it, in) {
			continue
		}
		score, mt := scoreItem(it, hasIntent, queryText)
		if score <= 0 {
			continue
		}
		results = append(results, result.New(*it, score, mt))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	return results
}

// Matches reports whether it satisfies every active filter of in.
func Matches(it *content.Item, in *intent.Intent) bool {
	if len(in.Types) > 0 && !in.WantsType(it.Type) {
		return false
	}
	if len(in.Genres) > 0 && !matchesGenre(it, in.Genres) {
		return false
	}
	if len(in.Languages) > 0 && !MatchesLanguage(it, in) {
		return false
	}
	if len(in.Industries) > 0 && !in.WantsIndustry(it.Industry) {
		return false
	}
	return true
}

// MatchesLanguage applies the ranked language filter. An item passes when its
// language is requested or when its industry implies a requested language.
// An item without a language passes only on the industry rule.
func MatchesLanguage(it *content.Item, in *intent.Intent) bool {
	if lang := strings.TrimSpace(it.Language); lang != "" && in.WantsLanguage(lang) {
		return true
	}
	return ImpliedLanguage(it, in)
}

// ImpliedLanguage reports whether the item's industry implies one of the
// requested languages (Anime: japanese, Hollywood: english).
func ImpliedLanguage(it *content.Item, in *intent.Intent) bool {
	switch it.Industry {
	case content.Anime:
		return in.WantsLanguage("japanese")
	case content.Hollywood:
		return in.WantsLanguage("english")
	}
	return false
}

// matchesGenre requires one item genre to equal a target (case-insensitive).
// Labels containing "sci" on both sides also match, which absorbs sci-fi
// spelling drift between queries and stored data.
func matchesGenre(it *content.Item, targets []string) bool {
	for _, target := range targets {
		t := strings.ToLower(target)
		for _, g := range it.Genres {
			ig := strings.ToLower(g)
			if ig == t || (strings.Contains(t, "sci") && strings.Contains(ig, "sci")) {
				return true
			}
		}
	}
	return false
}

// scoreItem evaluates the text tiers top-down; the first tier that applies wins.
// The match tag is that of the last branch taken, not of the largest contributor.
func scoreItem(it *content.Item, hasIntent bool, queryText string) (float64, match.Type) {
	var score float64
	mt := match.Fuzzy
	if hasIntent {
		score += IntentScore
		mt = match.Intent
	}

	if queryText == "" {
		score += float64(it.Views) / popularityViewsDivisor
		if it.ReleaseYear != 0 {
			score += float64(it.ReleaseYear - popularityBaseYear)
		}
		return score, mt
	}

	title := Normalize(it.Title)
	switch {
	case title == queryText:
		score += ExactScore
		mt = match.Exact
	case strings.HasPrefix(title, queryText):
		score += PrefixScore
		mt = match.Prefix
		if len(queryText) <= 1 {
			mt = match.Fuzzy
		}
	case strings.Contains(title, " "+queryText):
		score += WordStartScore
		mt = match.WordStart
	case strings.Contains(title, queryText):
		score += PartialScore
		mt = match.Partial
	default:
		if sim := textdist.Similarity(queryText, title); sim > FuzzyThreshold {
			score += FuzzyWeight * sim
			mt = match.Fuzzy
		}
	}
	return score, mt
}
