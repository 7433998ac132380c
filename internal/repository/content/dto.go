package content

import (
	domcontent "github.com/kailas-cloud/cinedex/internal/domain/content"
)

// itemDoc is the stored JSON shape. Field names follow the public API so
// documents can be inspected and seeded by hand.
type itemDoc struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Industry      string    `json:"industry"`
	Genres        []string  `json:"genres,omitempty"`
	Language      string    `json:"language,omitempty"`
	Description   string    `json:"description,omitempty"`
	ThumbnailURL  string    `json:"thumbnailUrl,omitempty"`
	DownloadLinks []linkDoc `json:"downloadLinks,omitempty"`
	Season        int       `json:"season,omitempty"`
	Episode       int       `json:"episode,omitempty"`
	ReleaseYear   int       `json:"releaseYear,omitempty"`
	// Views is always present so JSON.NUMINCRBY has a target. Decoded as a
	// float because the server may rewrite it in float notation.
	Views     float64 `json:"views"`
	CreatedAt int64   `json:"createdAt"`
}

type linkDoc struct {
	ID      string `json:"id"`
	Quality string `json:"quality"`
	URL     string `json:"url"`
	Size    string `json:"size,omitempty"`
}

func toDoc(it *domcontent.Item) itemDoc {
	d := itemDoc{
		ID:           it.ID,
		Title:        it.Title,
		Type:         string(it.Type),
		Industry:     string(it.Industry),
		Genres:       it.Genres,
		Language:     it.Language,
		Description:  it.Description,
		ThumbnailURL: it.ThumbnailURL,
		Season:       it.Season,
		Episode:      it.Episode,
		ReleaseYear:  it.ReleaseYear,
		Views:        float64(it.Views),
		CreatedAt:    it.CreatedAt,
	}
	for _, l := range it.DownloadLinks {
		d.DownloadLinks = append(d.DownloadLinks, linkDoc{
			ID:      l.ID,
			Quality: string(l.Quality),
			URL:     l.URL,
			Size:    l.Size,
		})
	}
	return d
}

func fromDoc(d *itemDoc) domcontent.Item {
	it := domcontent.Item{
		ID:           d.ID,
		Title:        d.Title,
		Type:         domcontent.Type(d.Type),
		Industry:     domcontent.Industry(d.Industry),
		Genres:       d.Genres,
		Language:     d.Language,
		Description:  d.Description,
		ThumbnailURL: d.ThumbnailURL,
		Season:       d.Season,
		Episode:      d.Episode,
		ReleaseYear:  d.ReleaseYear,
		Views:        int64(d.Views),
		CreatedAt:    d.CreatedAt,
	}
	for _, l := range d.DownloadLinks {
		it.DownloadLinks = append(it.DownloadLinks, domcontent.DownloadLink{
			ID:      l.ID,
			Quality: domcontent.Quality(l.Quality),
			URL:     l.URL,
			Size:    l.Size,
		})
	}
	return it
}
