// Package usage describes autofill token consumption for a budget period.
package usage

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// Period is the aggregation granularity.
type Period string

// Aggregation period constants. Periods follow UTC calendar boundaries.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// ParsePeriod validates a period name. Empty means PeriodDay.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodDay, nil
	case PeriodDay, PeriodMonth:
		return Period(s), nil
	}
	return "", fmt.Errorf("%w: period must be %q or %q, got %q", domain.ErrInvalidQuery, PeriodDay, PeriodMonth, s)
}

// Counters is a snapshot of the token budget. A zero limit is unlimited.
type Counters struct {
	DailyLimit   int64
	DailyUsed    int64
	MonthlyLimit int64
	MonthlyUsed  int64
}

// Report is the token usage for one period.
type Report struct {
	Period      Period
	Provider    string
	PeriodStart time.Time
	PeriodEnd   time.Time // also when the budget resets
	TokensUsed  int64
	TokensLimit int64 // 0 = unlimited
}

// NewReport builds the report for the period containing now.
func NewReport(period Period, provider string, now time.Time, c Counters) Report {
	now = now.UTC()
	r := Report{Period: period, Provider: provider}
	switch period {
	case PeriodMonth:
		r.PeriodStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		r.PeriodEnd = r.PeriodStart.AddDate(0, 1, 0)
		r.TokensUsed, r.TokensLimit = c.MonthlyUsed, c.MonthlyLimit
	default:
		r.PeriodStart = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		r.PeriodEnd = r.PeriodStart.AddDate(0, 0, 1)
		r.TokensUsed, r.TokensLimit = c.DailyUsed, c.DailyLimit
	}
	return r
}

// Limited reports whether the period has a token cap.
func (r *Report) Limited() bool { return r.TokensLimit > 0 }

// Remaining returns tokens left, never negative. Unlimited reports return -1.
func (r *Report) Remaining() int64 {
	if !r.Limited() {
		return -1
	}
	return max(r.TokensLimit-r.TokensUsed, 0)
}

// Exhausted reports whether a capped period is spent.
func (r *Report) Exhausted() bool {
	return r.Limited() && r.TokensUsed >= r.TokensLimit
}
