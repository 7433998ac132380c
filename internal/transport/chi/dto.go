package chi

import (
	"time"

	"github.com/kailas-cloud/cinedex/internal/domain/content"
	"github.com/kailas-cloud/cinedex/internal/domain/search/intent"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/domain/usage"
	autofilluc "github.com/kailas-cloud/cinedex/internal/usecase/autofill"
)

// ErrorCode is the machine-readable error code in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest            ErrorCode = "bad_request"
	ErrorCodeValidationFailed      ErrorCode = "validation_failed"
	ErrorCodeUnauthorized          ErrorCode = "unauthorized"
	ErrorCodeNotFound              ErrorCode = "not_found"
	ErrorCodeContentNotFound       ErrorCode = "content_not_found"
	ErrorCodeInvalidQuery          ErrorCode = "invalid_query"
	ErrorCodeInvalidSort           ErrorCode = "invalid_sort"
	ErrorCodeAutofillUnavailable   ErrorCode = "autofill_unavailable"
	ErrorCodeAutofillQuotaExceeded ErrorCode = "autofill_quota_exceeded"
	ErrorCodeAutofillProviderError ErrorCode = "autofill_provider_error"
	ErrorCodeRateLimited           ErrorCode = "rate_limited"
	ErrorCodeInternalError         ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DownloadLink is a download rendition on the wire.
type DownloadLink struct {
	ID      string `json:"id,omitempty"`
	Quality string `json:"quality"`
	URL     string `json:"url"`
	Size    string `json:"size,omitempty"`
}

// ContentRequest is the create/update body. Server-owned fields are not accepted.
type ContentRequest struct {
	Title         string         `json:"title"`
	Type          string         `json:"type"`
	Industry      string         `json:"industry"`
	Genres        []string       `json:"genres"`
	Language      string         `json:"language,omitempty"`
	Description   string         `json:"description,omitempty"`
	ThumbnailURL  string         `json:"thumbnailUrl,omitempty"`
	DownloadLinks []DownloadLink `json:"downloadLinks"`
	Season        int            `json:"season,omitempty"`
	Episode       int            `json:"episode,omitempty"`
	ReleaseYear   int            `json:"releaseYear,omitempty"`
}

// Content is a catalog item on the wire.
type Content struct {
	ID string `json:"id"`
	ContentRequest
	Views     int64 `json:"views"`
	CreatedAt int64 `json:"createdAt"`
}

// SearchHit is one ranked search result.
type SearchHit struct {
	Content
	Score     float64 `json:"score"`
	MatchType string  `json:"matchType"`
}

// Intent is the parsed structure of a query.
type Intent struct {
	Types            []string `json:"types"`
	Industries       []string `json:"industries"`
	Languages        []string `json:"languages"`
	Genres           []string `json:"genres"`
	Text             string   `json:"text"`
	OriginalKeywords []string `json:"originalKeywords"`
}

// SearchResponse is the GET /api/search body.
type SearchResponse struct {
	Items  []SearchHit `json:"items"`
	Intent Intent      `json:"intent"`
	Limit  int         `json:"limit"`
	Total  int         `json:"total"`
}

// CatalogResponse is the GET /api/catalog body.
type CatalogResponse struct {
	Title string    `json:"title"`
	Items []Content `json:"items"`
	Total int       `json:"total"`
}

// ViewResponse is the POST /api/contents/{id}/view body.
type ViewResponse struct {
	Views int64 `json:"views"`
}

// AutofillRequest is the POST /api/autofill body.
type AutofillRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// AutofillResponse is a metadata draft for the admin form.
type AutofillResponse struct {
	Description       string  `json:"description"`
	Industry          string  `json:"industry"`
	ReleaseYear       int     `json:"releaseYear"`
	SuggestedLanguage *string `json:"suggestedLanguage"`
}

// UsageResponse is the GET /api/autofill/usage body.
// TokensLimit 0 and a null tokensRemaining mean unlimited.
type UsageResponse struct {
	Period          string `json:"period"`
	Provider        string `json:"provider"`
	PeriodStart     string `json:"periodStart"`
	PeriodEnd       string `json:"periodEnd"`
	TokensUsed      int64  `json:"tokensUsed"`
	TokensLimit     int64  `json:"tokensLimit"`
	TokensRemaining *int64 `json:"tokensRemaining"`
	Exhausted       bool   `json:"exhausted"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func contentFromRequest(req *ContentRequest) content.Item {
	links := make([]content.DownloadLink, len(req.DownloadLinks))
	for i, l := range req.DownloadLinks {
		links[i] = content.DownloadLink{
			ID:      l.ID,
			Quality: content.Quality(l.Quality),
			URL:     l.URL,
			Size:    l.Size,
		}
	}
	return content.Item{
		Title:         req.Title,
		Type:          content.Type(req.Type),
		Industry:      content.Industry(req.Industry),
		Genres:        req.Genres,
		Language:      req.Language,
		Description:   req.Description,
		ThumbnailURL:  req.ThumbnailURL,
		DownloadLinks: links,
		Season:        req.Season,
		Episode:       req.Episode,
		ReleaseYear:   req.ReleaseYear,
	}
}

func contentToDTO(it *content.Item) Content {
	genres := it.Genres
	if genres == nil {
		genres = []string{}
	}
	links := make([]DownloadLink, len(it.DownloadLinks))
	for i, l := range it.DownloadLinks {
		links[i] = DownloadLink{ID: l.ID, Quality: string(l.Quality), URL: l.URL, Size: l.Size}
	}
	return Content{
		ID: it.ID,
		ContentRequest: ContentRequest{
			Title:         it.Title,
			Type:          string(it.Type),
			Industry:      string(it.Industry),
			Genres:        genres,
			Language:      it.Language,
			Description:   it.Description,
			ThumbnailURL:  it.ThumbnailURL,
			DownloadLinks: links,
			Season:        it.Season,
			Episode:       it.Episode,
			ReleaseYear:   it.ReleaseYear,
		},
		Views:     it.Views,
		CreatedAt: it.CreatedAt,
	}
}

func contentsToDTO(items []content.Item) []Content {
	out := make([]Content, len(items))
	for i := range items {
		out[i] = contentToDTO(&items[i])
	}
	return out
}

func searchHitToDTO(r *result.Result) SearchHit {
	it := r.Item()
	return SearchHit{
		Content:   contentToDTO(&it),
		Score:     r.Score(),
		MatchType: string(r.MatchType()),
	}
}

func intentToDTO(in *intent.Intent) Intent {
	out := Intent{
		Types:            make([]string, len(in.Types)),
		Industries:       make([]string, len(in.Industries)),
		Languages:        nonNil(in.Languages),
		Genres:           nonNil(in.Genres),
		Text:             in.Text,
		OriginalKeywords: nonNil(in.OriginalKeywords),
	}
	for i, t := range in.Types {
		out.Types[i] = string(t)
	}
	for i, ind := range in.Industries {
		out.Industries[i] = string(ind)
	}
	return out
}

func autofillToDTO(d *autofilluc.Draft) AutofillResponse {
	resp := AutofillResponse{
		Description: d.Description,
		Industry:    string(d.Industry),
		ReleaseYear: d.ReleaseYear,
	}
	if d.Language != "" {
		lang := d.Language
		resp.SuggestedLanguage = &lang
	}
	return resp
}

func usageToDTO(r *usage.Report) UsageResponse {
	resp := UsageResponse{
		Period:      string(r.Period),
		Provider:    r.Provider,
		PeriodStart: r.PeriodStart.Format(time.RFC3339),
		PeriodEnd:   r.PeriodEnd.Format(time.RFC3339),
		TokensUsed:  r.TokensUsed,
		TokensLimit: r.TokensLimit,
		Exhausted:   r.Exhausted(),
	}
	if r.Limited() {
		rem := r.Remaining()
		resp.TokensRemaining = &rem
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
