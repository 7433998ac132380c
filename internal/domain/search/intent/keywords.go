package intent

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain/content"
)

// SciFi is the single label every sci-fi spelling normalizes to.
const SciFi = "Sci-Fi"

// rule maps one surface keyword to an intent value.
type rule[T any] struct {
	keyword string
	value   T
	re      *regexp.Regexp
}

func newRule[T any](keyword string, value T) rule[T] {
	return rule[T]{
		keyword: keyword,
		value:   value,
		re:      WholeWord(keyword),
	}
}

// WholeWord compiles a case-insensitive, word-boundary anchored matcher for keyword.
func WholeWord(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
}

// Keyword tables. Order matters: earlier keywords are consumed first.
var (
	typeRules = []rule[content.Type]{
		newRule("movie", content.Movie),
		newRule("movies", content.Movie),
		newRule("film", content.Movie),
		newRule("films", content.Movie),
		newRule("series", content.Series),
		newRule("web series", content.Series),
		newRule("show", content.Series),
		newRule("shows", content.Series),
		newRule("tv", content.Series),
		newRule("cartoon", content.Cartoon),
		newRule("cartoons", content.Cartoon),
		newRule("anime", content.Cartoon),
		newRule("animation", content.Cartoon),
	}

	industryRules = []rule[content.Industry]{
		newRule("hollywood", content.Hollywood),
		newRule("bollywood", content.Bollywood),
		newRule("tollywood", content.SouthIndian),
		newRule("kollywood", content.SouthIndian),
		newRule("south", content.SouthIndian),
		newRule("south indian", content.SouthIndian),
	}

	languageRules = selfRules(
		"hindi", "english", "tamil", "telugu", "malayalam",
		"kannada", "bengali", "bangla", "korean", "japanese",
		"chinese", "spanish", "french", "dual audio",
	)

	genreRules = labelRules(
		"action", "adventure", "sci-fi", "scifi", "science fiction",
		"horror", "thriller", "comedy", "romance", "drama",
		"fantasy", "crime", "mystery", "animation", "biography",
		"history", "war", "sports", "musical", "family",
	)
)

// selfRules builds rules whose value is the keyword itself.
func selfRules(keywords ...string) []rule[string] {
	out := make([]rule[string], len(keywords))
	for i, k := range keywords {
		out[i] = newRule(k, k)
	}
	return out
}

// labelRules builds genre rules whose value is the stored label.
func labelRules(keywords ...string) []rule[string] {
	out := make([]rule[string], len(keywords))
	for i, k := range keywords {
		out[i] = newRule(k, GenreLabel(k))
	}
	return out
}

// GenreLabel returns the stored label for a genre keyword:
// sci-fi spellings become "Sci-Fi", everything else is capitalized.
func GenreLabel(keyword string) string {
	switch keyword {
	case "sci-fi", "scifi", "science fiction":
		return SciFi
	}
	if keyword == "" {
		return ""
	}
	return strings.ToUpper(keyword[:1]) + keyword[1:]
}
