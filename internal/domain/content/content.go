// Package content defines the catalog item aggregate.
package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Limits for admin-supplied fields.
const (
	MaxTitleLength       = 512
	MaxDescriptionLength = 8192
	MaxGenres            = 32
)

// DownloadLink is a single downloadable rendition of an item.
type DownloadLink struct {
	ID      string
	Quality Quality
	URL     string
	Size    string
}

// Item is a catalog entry (movie, series or cartoon).
// Zero numeric fields mean "not set".
type Item struct {
	ID            string
	Title         string
	Type          Type
	Industry      Industry
	Genres        []string
	Language      string
	Description   string
	ThumbnailURL  string
	DownloadLinks []DownloadLink
	Season        int
	Episode       int
	ReleaseYear   int
	Views         int64
	CreatedAt     int64 // unix milliseconds
}

// Validate checks the admin-editable fields.
func (it *Item) Validate() error {
	var errs []error
	title := strings.TrimSpace(it.Title)
	switch {
	case title == "":
		errs = append(errs, errors.New("title is required"))
	case len(title) > MaxTitleLength:
		errs = append(errs, fmt.Errorf("title too long (max %d)", MaxTitleLength))
	}
	if !it.Type.IsValid() {
		errs = append(errs, fmt.Errorf("invalid content type: %q", it.Type))
	}
	if !it.Industry.IsValid() {
		errs = append(errs, fmt.Errorf("invalid industry: %q", it.Industry))
	}
	if len(it.Description) > MaxDescriptionLength {
		errs = append(errs, fmt.Errorf("description too long (max %d)", MaxDescriptionLength))
	}
	if len(it.Genres) > MaxGenres {
		errs = append(errs, fmt.Errorf("too many genres (max %d)", MaxGenres))
	}
	if it.Season < 0 || it.Episode < 0 {
		errs = append(errs, errors.New("season and episode must not be negative"))
	}
	if it.ReleaseYear < 0 {
		errs = append(errs, errors.New("release year must not be negative"))
	}
	for i, l := range it.DownloadLinks {
		if !l.Quality.IsValid() {
			errs = append(errs, fmt.Errorf("downloadLinks[%d]: invalid quality %q", i, l.Quality))
		}
		if strings.TrimSpace(l.URL) == "" {
			errs = append(errs, fmt.Errorf("downloadLinks[%d]: url is required", i))
		}
	}
	return errors.Join(errs...)
}

// HasGenre reports whether the item carries the genre (case-insensitive).
func (it *Item) HasGenre(genre string) bool {
	for _, g := range it.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (it *Item) Clone() Item {
	c := *it
	c.Genres = slices.Clone(it.Genres)
	c.DownloadLinks = slices.Clone(it.DownloadLinks)
	return c
}

// NormalizeGenres trims labels and drops empty ones, keeping order.
func NormalizeGenres(genres []string) []string {
	if genres == nil {
		return nil
	}
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
