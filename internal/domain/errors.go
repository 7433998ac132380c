package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrContentNotFound signals a missing catalog item.
	ErrContentNotFound = errors.New("content not found")
	// ErrInvalidContent signals a catalog item that failed validation.
	ErrInvalidContent = errors.New("invalid content")
	// ErrInvalidQuery signals malformed query parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidSort signals an unknown catalog sort order.
	ErrInvalidSort = errors.New("invalid sort")

	// ErrAutofillUnavailable signals that no autofill provider is configured.
	ErrAutofillUnavailable = errors.New("autofill unavailable")
	// ErrAutofillProviderError signals an autofill provider failure.
	ErrAutofillProviderError = errors.New("autofill provider error")
	// ErrAutofillQuotaExceeded signals an exhausted autofill token budget.
	ErrAutofillQuotaExceeded = errors.New("autofill quota exceeded")
	// ErrRateLimited signals a provider rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)
