// Package recommend picks related titles for a catalog item.
package recommend

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain/content"
)

// Scoring weights.
const (
	GenreWeight     = 5
	LanguageWeight  = 4
	IndustryWeight  = 3
	TitleWordWeight = 2
)

const (
	// MinScored is the number of scored matches below which candidates are
	// padded with the newest remaining titles.
	MinScored = 4
	// Max caps the number of recommendations returned.
	Max = 8

	minTitleWordLen = 4
)

var titleStrip = regexp.MustCompile(`[^a-z0-9 ]`)

type scored struct {
	item  *content.Item
	score int
}

// For returns up to Max items related to current, drawn from all.
// Candidates share current's type and never include current itself.
func For(current *content.Item, all []content.Item) []content.Item {
	currentWords := titleWords(current.Title)

	candidates := make([]scored, 0, len(all))
	for i := range all {
		it := &all[i]
		if it.Type != current.Type || it.ID == current.ID {
			continue
		}
		candidates = append(candidates, scored{item: it, score: score(current, it, currentWords)})
	}

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.score > 0 {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]content.Item, 0, Max)
	for _, c := range ranked {
		out = append(out, *c.item)
	}

	if len(out) < MinScored {
		taken := make(map[string]bool, len(out))
		for i := range out {
			taken[out[i].ID] = true
		}
		rest := make([]*content.Item, 0, len(candidates))
		for _, c := range candidates {
			if !taken[c.item.ID] {
				rest = append(rest, c.item)
			}
		}
		sort.SliceStable(rest, func(i, j int) bool { return rest[i].ReleaseYear > rest[j].ReleaseYear })
		for _, it := range rest {
			out = append(out, *it)
		}
	}

	if len(out) > Max {
		out = out[:Max]
	}
	return out
}

func score(current, it *content.Item, currentWords []string) int {
	s := 0
	for _, g := range current.Genres {
		if slices.Contains(it.Genres, g) {
			s += GenreWeight
		}
	}
	if current.Language != "" && it.Language != "" && current.Language == it.Language {
		s += LanguageWeight
	}
	if current.Industry == it.Industry {
		s += IndustryWeight
	}
	words := titleWords(it.Title)
	for _, w := range currentWords {
		if slices.Contains(words, w) {
			s += TitleWordWeight
		}
	}
	return s
}

// titleWords returns the lower-cased alphanumeric title words of at least
// minTitleWordLen characters.
func titleWords(title string) []string {
	var out []string
	for _, w := range strings.Split(titleStrip.ReplaceAllString(strings.ToLower(title), ""), " ") {
		if len(w) >= minTitleWordLen {
			out = append(out, w)
		}
	}
	return out
}
