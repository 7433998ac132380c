// Package catalog implements filtered, sorted browsing of the content catalog:
// category and tag navigation plus a query box that applies parsed intent as
// plain filters.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/content"
	"github.com/kailas-cloud/cinedex/internal/domain/search/intent"
	"github.com/kailas-cloud/cinedex/internal/domain/search/rank"
)

// Navigation categories.
const (
	CategoryMovies    = "Movies"
	CategoryWebSeries = "Web Series"
	CategoryTVShows   = "TV Shows"
	CategoryAnime     = "Anime / Cartoon"
)

const (
	tagHindiBollywood = "hindi (bollywood)"
	tagDualAudio      = "dual audio"
)

// Filter selects and orders catalog items. Zero fields are inactive.
type Filter struct {
	Type     content.Type
	Category string
	Tag      string
	Query    string
	Sort     Sort
}

// Apply returns the items matching f in f.Sort order.
// The input slice is not reordered.
func Apply(items []content.Item, f Filter) ([]content.Item, error) {
	order, err := ParseSort(string(f.Sort))
	if err != nil {
		return nil, err
	}

	var in intent.Intent
	if f.Query != "" {
		in = intent.Parse(f.Query)
	}
	tag := strings.ToLower(strings.TrimSpace(f.Tag))

	out := make([]content.Item, 0, len(items))
	for i := range items {
		it := &items[i]
		if f.Type != "" && it.Type != f.Type {
			continue
		}
		if f.Category != "" && !matchesCategory(it, f.Category) {
			continue
		}
		if tag != "" && !matchesTag(it, tag) {
			continue
		}
		if f.Query != "" && !matchesQuery(it, &in) {
			continue
		}
		out = append(out, *it)
	}

	order.sort(out)
	return out, nil
}

// Title builds the page heading for f, falling back to fallback.
func Title(f Filter, fallback string) string {
	switch {
	case f.Category != "" && f.Tag != "":
		return f.Tag + " " + f.Category
	case f.Category != "":
		return f.Category
	case f.Query != "":
		return fmt.Sprintf("Results for %q", f.Query)
	}
	return fallback
}

// RemoveKeyword drops every whole-word occurrence of keyword from query,
// case-insensitively, and collapses whitespace.
func RemoveKeyword(query, keyword string) string {
	if strings.TrimSpace(keyword) == "" {
		return strings.Join(strings.Fields(query), " ")
	}
	return strings.Join(strings.Fields(intent.WholeWord(keyword).ReplaceAllString(query, "")), " ")
}

func matchesCategory(it *content.Item, category string) bool {
	switch category {
	case CategoryMovies:
		return it.Type == content.Movie
	case CategoryWebSeries, CategoryTVShows:
		return it.Type == content.Series
	case CategoryAnime:
		return it.Type == content.Cartoon
	}
	return false
}

// matchesTag expects tag lower-cased.
func matchesTag(it *content.Item, tag string) bool {
	lang := strings.ToLower(it.Language)
	switch {
	case strings.ToLower(string(it.Industry)) == tag:
		return true
	case lang != "" && lang == tag:
		return true
	case tag == tagHindiBollywood && it.Industry == content.Bollywood:
		return true
	case it.HasGenre(tag):
		return true
	case tag == tagDualAudio && strings.Contains(lang, "dual"):
		return true
	}
	return false
}

// matchesQuery applies parsed intent as filters. Genres match by substring
// here, unlike ranked search, and residual text must appear in the title.
func matchesQuery(it *content.Item, in *intent.Intent) bool {
	if len(in.Types) > 0 && !in.WantsType(it.Type) {
		return false
	}
	if len(in.Industries) > 0 && !in.WantsIndustry(it.Industry) {
		return false
	}
	if len(in.Languages) > 0 && !matchesLanguage(it, in) {
		return false
	}
	if len(in.Genres) > 0 && !containsGenre(it, in.Genres) {
		return false
	}
	if in.Text != "" && !strings.Contains(strings.ToLower(it.Title), in.Text) {
		return false
	}
	return true
}

// matchesLanguage is stricter than ranked search: a set language must be
// requested, and only an item without one falls back to its industry.
func matchesLanguage(it *content.Item, in *intent.Intent) bool {
	if lang := strings.TrimSpace(it.Language); lang != "" {
		return in.WantsLanguage(lang)
	}
	return rank.ImpliedLanguage(it, in)
}

func containsGenre(it *content.Item, targets []string) bool {
	for _, target := range targets {
		t := strings.ToLower(target)
		for _, g := range it.Genres {
			if strings.Contains(strings.ToLower(g), t) {
				return true
			}
		}
	}
	return false
}

// Sort is a catalog ordering.
type Sort string

// Supported orderings.
const (
	SortLatest    Sort = "latest"
	SortOldest    Sort = "oldest"
	SortYearDesc  Sort = "year-desc"
	SortYearAsc   Sort = "year-asc"
	SortPopular   Sort = "popular"
	SortTitleAsc  Sort = "title-asc"
	SortTitleDesc Sort = "title-desc"
)

// Sorts lists every supported ordering.
var Sorts = []Sort{SortLatest, SortOldest, SortPopular, SortYearDesc, SortYearAsc, SortTitleAsc, SortTitleDesc}

// ParseSort parses s; empty means SortLatest.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		return SortLatest, nil
	}
	for _, v := range Sorts {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidSort, s)
}

func (s Sort) sort(items []content.Item) {
	var less func(a, b *content.Item) bool
	switch s {
	case SortOldest:
		less = func(a, b *content.Item) bool { return a.CreatedAt < b.CreatedAt }
	case SortYearDesc:
		less = func(a, b *content.Item) bool { return a.ReleaseYear > b.ReleaseYear }
	case SortYearAsc:
		less = func(a, b *content.Item) bool { return a.ReleaseYear < b.ReleaseYear }
	case SortPopular:
		less = func(a, b *content.Item) bool { return a.Views > b.Views }
	case SortTitleAsc:
		less = func(a, b *content.Item) bool { return compareTitles(a.Title, b.Title) < 0 }
	case SortTitleDesc:
		less = func(a, b *content.Item) bool { return compareTitles(a.Title, b.Title) > 0 }
	default:
		less = func(a, b *content.Item) bool { return a.CreatedAt > b.CreatedAt }
	}
	sort.SliceStable(items, func(i, j int) bool { return less(&items[i], &items[j]) })
}

// compareTitles orders case-insensitively, breaking ties on the raw string.
func compareTitles(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
