// Package openai drafts catalog metadata through an OpenAI-compatible chat API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/content"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

const systemPrompt = "You are a film and television catalog assistant. Reply with a single JSON object and nothing else."

const userPromptTemplate = `Provide details for the %s titled %q.
Return JSON with the keys:
  "description": a short description, at most 30 words,
  "industry": one of %s,
  "releaseYear": the release year as an integer,
  "suggestedLanguage": the spoken language, only when industry is "South Indian" (Telugu, Tamil, Malayalam, Kannada), otherwise null.`

// Autofiller is an autofill provider using the OpenAI-compatible chat API.
type Autofiller struct {
	client      *openai.Client
	model       string
	temperature float32
	user        string
	provider    string
	logger      *zap.Logger
}

// Config holds the provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	User        string
	Provider    string
	Logger      *zap.Logger
}

// NewAutofiller creates an OpenAI-compatible autofill provider.
func NewAutofiller(cfg *Config) *Autofiller {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Autofiller{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		user:        cfg.User,
		provider:    cfg.Provider,
		logger:      cfg.Logger,
	}
}

type payload struct {
	Description       string  `json:"description"`
	Industry          string  `json:"industry"`
	ReleaseYear       float64 `json:"releaseYear"`
	SuggestedLanguage *string `json:"suggestedLanguage"`
}

// Autofill implements domain.Autofiller with transport-level metrics.
func (a *Autofiller) Autofill(ctx context.Context, req domain.AutofillRequest) (domain.AutofillResult, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: a.temperature,
		User:        a.user,
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	duration := time.Since(start)

	if err != nil {
		a.fail("api_error")
		return domain.AutofillResult{}, parseAPIError(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		a.fail("empty_response")
		return domain.AutofillResult{}, fmt.Errorf("empty completion: %w", domain.ErrAutofillProviderError)
	}

	var p payload
	if err := json.Unmarshal([]byte(stripFence(resp.Choices[0].Message.Content)), &p); err != nil {
		a.fail("invalid_response")
		a.logger.Warn("Autofill response is not valid JSON",
			zap.String("provider", a.provider),
			zap.String("content", resp.Choices[0].Message.Content),
		)
		return domain.AutofillResult{}, fmt.Errorf("decode completion: %v: %w", err, domain.ErrAutofillProviderError)
	}

	metrics.AutofillRequestsTotal.WithLabelValues(a.provider, a.model, "success").Inc()
	metrics.AutofillRequestDuration.WithLabelValues(a.provider, a.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.AutofillTokensTotal.WithLabelValues(a.provider, a.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.AutofillTokensTotal.WithLabelValues(a.provider, a.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	result := domain.AutofillResult{
		Description:      strings.TrimSpace(p.Description),
		Industry:         content.Industry(strings.TrimSpace(p.Industry)),
		ReleaseYear:      int(p.ReleaseYear),
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}
	if p.SuggestedLanguage != nil {
		result.SuggestedLanguage = strings.TrimSpace(*p.SuggestedLanguage)
	}
	return result, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (a *Autofiller) HealthCheck(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func (a *Autofiller) fail(errorType string) {
	metrics.AutofillRequestsTotal.WithLabelValues(a.provider, a.model, "error").Inc()
	metrics.AutofillErrorsTotal.WithLabelValues(a.provider, a.model, errorType).Inc()
}

func buildPrompt(req domain.AutofillRequest) string {
	industries := make([]string, len(content.Industries))
	for i, ind := range content.Industries {
		industries[i] = fmt.Sprintf("%q", string(ind))
	}
	return fmt.Sprintf(userPromptTemplate, strings.ToLower(string(req.Type)), req.Title, strings.Join(industries, ", "))
}

// stripFence removes a markdown code fence some models wrap JSON in.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseAPIError extracts a human-readable error from the API response.
// Rate limits keep their own sentinel; everything else maps to ErrAutofillProviderError.
func parseAPIError(err error) error {
	wrap := domain.ErrAutofillProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == 429 {
			wrap = domain.ErrRateLimited
		}
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("autofill API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("autofill API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 429 {
			wrap = domain.ErrRateLimited
		}
		return fmt.Errorf("autofill API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("autofill request failed: %v: %w", err, wrap)
}

// extractDetail reads the "detail" field some OpenAI-compatible gateways return.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
