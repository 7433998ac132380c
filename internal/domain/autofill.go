package domain

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain/content"
)

// Autofiller drafts catalog metadata for a title. Shared contract between
// the LLM transport, the cache decorator and the autofill use case.
type Autofiller interface {
	Autofill(ctx context.Context, req AutofillRequest) (AutofillResult, error)
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// AutofillRequest identifies the title to describe.
type AutofillRequest struct {
	Title string
	Type  content.Type
}

// AutofillResult carries the drafted fields and token usage through the decorator chain.
type AutofillResult struct {
	Description       string
	Industry          content.Industry
	ReleaseYear       int
	SuggestedLanguage string

	PromptTokens     int
	CompletionTokens int
}
