package autofill

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// InstrumentedAutofiller wraps an Autofiller with budget enforcement and logging.
// Request, duration and token metrics belong to transport/openai.
type InstrumentedAutofiller struct {
	inner    domain.Autofiller
	provider string
	model    string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewInstrumentedAutofiller wraps inner. budget may be nil.
func NewInstrumentedAutofiller(
	inner domain.Autofiller, provider, model string,
	budget BudgetChecker, logger *zap.Logger,
) *InstrumentedAutofiller {
	return &InstrumentedAutofiller{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   budget,
		logger:   logger,
	}
}

// Autofill checks the budget, delegates and records token usage.
func (p *InstrumentedAutofiller) Autofill(ctx context.Context, req domain.AutofillRequest) (domain.AutofillResult, error) {
	if p.budget != nil {
		if err := p.budget.Check(ctx); err != nil {
			p.logger.Error("Autofill budget exceeded",
				zap.String("provider", p.provider),
				zap.String("model", p.model),
				zap.Error(err),
			)
			return domain.AutofillResult{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()
	result, err := p.inner.Autofill(ctx, req)
	duration := time.Since(start)

	if err != nil {
		p.logger.Error("Autofill request failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.String("title", req.Title),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.AutofillResult{}, fmt.Errorf("autofill: %w", err)
	}

	tokens := result.PromptTokens + result.CompletionTokens
	if p.budget != nil && tokens > 0 {
		p.budget.Record(int64(tokens))
		remaining := metrics.AutofillBudgetTokensRemaining
		remaining.WithLabelValues(p.provider, "daily").Set(float64(p.budget.RemainingDaily()))
		remaining.WithLabelValues(p.provider, "monthly").Set(float64(p.budget.RemainingMonthly()))
	}

	p.logger.Debug("Autofill request completed",
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.String("title", req.Title),
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("completion_tokens", result.CompletionTokens),
	)
	return result, nil
}

// HealthCheck delegates to the inner provider when it supports health checks.
func (p *InstrumentedAutofiller) HealthCheck(ctx context.Context) error {
	if hc, ok := p.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}
