package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/cinedex/internal/domain/usage"
)

// Service reports autofill token usage.
type Service struct {
	br       BudgetReader
	provider string
	now      func() time.Time
}

// New creates a Service. br can be nil (unlimited mode, nothing counted).
func New(br BudgetReader, provider string) *Service {
	return &Service{br: br, provider: provider, now: time.Now}
}

// Report builds the usage report for the current period.
func (s *Service) Report(_ context.Context, period domusage.Period) domusage.Report {
	var c domusage.Counters
	if s.br != nil {
		c = s.br.Counters()
	}
	return domusage.NewReport(period, s.provider, s.now(), c)
}
