// Package autofill drafts catalog metadata for the admin form.
package autofill

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/content"
)

// Draft is the validated autofill suggestion. Language is set only for
// South Indian titles.
type Draft struct {
	Description string
	Industry    content.Industry
	ReleaseYear int
	Language    string
}

// Service validates autofill requests and provider output.
type Service struct {
	autofiller domain.Autofiller
}

// New creates an autofill service. autofiller may be nil when no provider is configured.
func New(autofiller domain.Autofiller) *Service {
	return &Service{autofiller: autofiller}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool { return s.autofiller != nil }

// Autofill drafts description, industry, release year and language for a title.
func (s *Service) Autofill(ctx context.Context, title string, typ content.Type) (Draft, error) {
	if s.autofiller == nil {
		return Draft{}, domain.ErrAutofillUnavailable
	}

	title = strings.TrimSpace(title)
	if err := validateRequest(title, typ); err != nil {
		return Draft{}, fmt.Errorf("%w: %w", domain.ErrInvalidContent, err)
	}

	res, err := s.autofiller.Autofill(ctx, domain.AutofillRequest{Title: title, Type: typ})
	if err != nil {
		return Draft{}, fmt.Errorf("autofill %q: %w", title, err)
	}

	industry, ok := matchIndustry(string(res.Industry))
	if !ok {
		return Draft{}, fmt.Errorf("%w: unknown industry %q", domain.ErrAutofillProviderError, res.Industry)
	}

	d := Draft{
		Description: strings.TrimSpace(res.Description),
		Industry:    industry,
		ReleaseYear: max(res.ReleaseYear, 0),
	}
	if industry == content.SouthIndian {
		d.Language = strings.TrimSpace(res.SuggestedLanguage)
	}
	return d, nil
}

func validateRequest(title string, typ content.Type) error {
	var errs []error
	switch {
	case title == "":
		errs = append(errs, errors.New("title is required"))
	case len(title) > content.MaxTitleLength:
		errs = append(errs, fmt.Errorf("title too long (max %d)", content.MaxTitleLength))
	}
	if !typ.IsValid() {
		errs = append(errs, fmt.Errorf("invalid content type: %q", typ))
	}
	return errors.Join(errs...)
}

// matchIndustry maps provider output onto a known industry, ignoring case.
func matchIndustry(s string) (content.Industry, bool) {
	s = strings.TrimSpace(s)
	for _, ind := range content.Industries {
		if strings.EqualFold(string(ind), s) {
			return ind, true
		}
	}
	return "", false
}
