// Package intent turns a free-text catalog query into structured filters
// (type, industry, language, genre) plus the residual title text.
//
// Matching is whole-word and byte-oriented: input is expected to be ASCII
// Latin text. Non-ASCII characters are never matched as keywords and stay in
// the residual text.
package intent

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain/content"
)

// Intent categories, used as metric labels and in API responses.
const (
	CategoryType     = "type"
	CategoryIndustry = "industry"
	CategoryLanguage = "language"
	CategoryGenre    = "genre"
)

// Intent is the structured interpretation of a query. Every slice is an
// ordered set: detection order, no duplicates.
type Intent struct {
	Types      []content.Type
	Industries []content.Industry
	Languages  []string // lower-cased tokens
	Genres     []string // capitalized labels, "Sci-Fi" for every sci-fi spelling
	// Text is the query with every matched keyword removed and whitespace collapsed.
	Text string
	// OriginalKeywords are the matched surface keywords in detection order.
	OriginalKeywords []string
}

// HasFilters reports whether any structured intent was detected.
func (in *Intent) HasFilters() bool {
	return len(in.Types)+len(in.Industries)+len(in.Languages)+len(in.Genres) > 0
}

// Categories returns the non-empty intent categories in table order.
func (in *Intent) Categories() []string {
	var out []string
	if len(in.Types) > 0 {
		out = append(out, CategoryType)
	}
	if len(in.Industries) > 0 {
		out = append(out, CategoryIndustry)
	}
	if len(in.Languages) > 0 {
		out = append(out, CategoryLanguage)
	}
	if len(in.Genres) > 0 {
		out = append(out, CategoryGenre)
	}
	return out
}

// WantsType reports whether t is among the detected types.
func (in *Intent) WantsType(t content.Type) bool { return slices.Contains(in.Types, t) }

// WantsIndustry reports whether i is among the detected industries.
func (in *Intent) WantsIndustry(i content.Industry) bool { return slices.Contains(in.Industries, i) }

// WantsLanguage reports whether lang (any case) is among the detected languages.
func (in *Intent) WantsLanguage(lang string) bool {
	return slices.Contains(in.Languages, strings.ToLower(lang))
}

// Parse extracts structured intent from query.
//
// Tables are applied in the order type, industry, language, genre. A matched
// keyword is recorded once and all of its whole-word occurrences are removed.
// Passes repeat until nothing more matches, so parsing Text again never yields
// further intent.
func Parse(query string) Intent {
	var in Intent
	buf := strings.TrimSpace(strings.ToLower(query))

	// A single pass would test each keyword once, but removals can join words
	// into a new keyword ("science horror fiction" leaves "science fiction").
	// Repeating until stable trades that for Parse(in.Text) adding nothing.
	for buf != "" {
		next := extractAll(buf, typeRules, &in.Types, &in.OriginalKeywords)
		next = extractAll(next, industryRules, &in.Industries, &in.OriginalKeywords)
		next = extractAll(next, languageRules, &in.Languages, &in.OriginalKeywords)
		next = extractAll(next, genreRules, &in.Genres, &in.OriginalKeywords)
		if next == buf {
			break
		}
		buf = next
	}

	in.Text = buf
	return in
}

// extractAll folds one keyword table over buf and returns the remaining text.
func extractAll[T comparable](buf string, rules []rule[T], values *[]T, keywords *[]string) string {
	for _, r := range rules {
		if !r.re.MatchString(buf) {
			continue
		}
		buf = collapseSpaces(r.re.ReplaceAllString(buf, " "))
		*values = appendUnique(*values, r.value)
		*keywords = appendUnique(*keywords, r.keyword)
	}
	return buf
}

func appendUnique[T comparable](s []T, v T) []T {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
