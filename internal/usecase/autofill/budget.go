package autofill

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/usage"
)

// BudgetAction defines behavior when the token budget is exceeded.
type BudgetAction string

const (
	// BudgetActionWarn logs a warning but allows the request.
	BudgetActionWarn BudgetAction = "warn"
	// BudgetActionReject blocks the request.
	BudgetActionReject BudgetAction = "reject"
)

// BudgetStore persists budget counters. IncrBy may be called repeatedly.
type BudgetStore interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Get(ctx context.Context, key string) (int64, error)
}

// period is one UTC accounting window (a day or a month).
type period struct {
	name   string
	layout string
	trunc  func(time.Time) time.Time
	limit  int64
	used   int64
	start  time.Time
}

func (p *period) roll(now time.Time) {
	if s := p.trunc(now); s.After(p.start) {
		p.used = 0
		p.start = s
	}
}

func (p *period) exhausted() bool { return p.limit > 0 && p.used >= p.limit }

// remaining returns tokens left, -1 if unlimited.
func (p *period) remaining() int64 {
	if p.limit == 0 {
		return -1
	}
	return max(p.limit-p.used, 0)
}

// BudgetTracker counts autofill tokens per UTC day and month.
// Check is served from memory; Record writes behind to the store when one is attached.
type BudgetTracker struct {
	mu        sync.Mutex
	day       period
	month     period
	action    BudgetAction
	provider  string
	keyPrefix string
	store     BudgetStore
	now       func() time.Time
	logger    *zap.Logger
}

// NewBudgetTracker creates a tracker. Zero limits are unlimited.
func NewBudgetTracker(
	provider, keyPrefix string, dailyLimit, monthlyLimit int64,
	action BudgetAction, logger *zap.Logger,
) *BudgetTracker {
	b := &BudgetTracker{
		day:       period{name: "daily", layout: "2006-01-02", trunc: truncateToDay, limit: dailyLimit},
		month:     period{name: "monthly", layout: "2006-01", trunc: truncateToMonth, limit: monthlyLimit},
		action:    action,
		provider:  provider,
		keyPrefix: keyPrefix,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
	}
	b.setClock(b.now)
	return b
}

// setClock replaces the time source and restarts both periods from it.
func (b *BudgetTracker) setClock(now func() time.Time) {
	b.now = now
	t := now()
	b.day.start = truncateToDay(t)
	b.month.start = truncateToMonth(t)
}

func (b *BudgetTracker) periods() []*period { return []*period{&b.day, &b.month} }

func (b *BudgetTracker) key(p *period, t time.Time) string {
	return fmt.Sprintf("%sbudget:%s:%s:%s", b.keyPrefix, b.provider, p.name, t.Format(p.layout))
}

// WithStore attaches a persistence store and loads the current counters.
func (b *BudgetTracker) WithStore(ctx context.Context, store BudgetStore) *BudgetTracker {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.store = store
	now := b.now()
	for _, p := range b.periods() {
		val, err := store.Get(ctx, b.key(p, now))
		if err != nil {
			b.logger.Warn("Failed to load autofill budget", zap.String("period", p.name), zap.Error(err))
			continue
		}
		p.used = val
	}

	b.logger.Info("Autofill budget loaded",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", b.day.used),
		zap.Int64("monthly_used", b.month.used),
	)
	return b
}

// Check reports whether a new request fits the budget. A rejection names the
// exhausted period, daily first.
func (b *BudgetTracker) Check(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.roll()
	for _, p := range b.periods() {
		if !p.exhausted() {
			continue
		}
		if b.action == BudgetActionReject {
			return fmt.Errorf("%w: %s limit of %d tokens reached", domain.ErrAutofillQuotaExceeded, p.name, p.limit)
		}
		b.logger.Warn("Autofill token budget exceeded",
			zap.String("provider", b.provider),
			zap.String("period", p.name),
			zap.Int64("used", p.used),
			zap.Int64("limit", p.limit),
		)
		return nil
	}
	return nil
}

// Record adds consumed tokens, then persists them if a store is attached.
func (b *BudgetTracker) Record(tokens int64) {
	b.mu.Lock()
	b.roll()
	now := b.now()
	keys := make([]string, 0, 2)
	for _, p := range b.periods() {
		p.used += tokens
		keys = append(keys, b.key(p, now))
	}
	store := b.store
	b.mu.Unlock()

	if store == nil {
		return
	}

	// Detached from the request context so a cancelled request still persists usage.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for _, k := range keys {
		if err := store.IncrBy(ctx, k, tokens); err != nil {
			b.logger.Warn("Failed to persist autofill budget", zap.String("key", k), zap.Error(err))
		}
	}
}

// RemainingDaily returns tokens left today, -1 if unlimited.
func (b *BudgetTracker) RemainingDaily() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roll()
	return b.day.remaining()
}

// RemainingMonthly returns tokens left this month, -1 if unlimited.
func (b *BudgetTracker) RemainingMonthly() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roll()
	return b.month.remaining()
}

// Counters returns a snapshot of limits and current-period usage.
func (b *BudgetTracker) Counters() usage.Counters {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roll()
	return usage.Counters{
		DailyLimit:   b.day.limit,
		DailyUsed:    b.day.used,
		MonthlyLimit: b.month.limit,
		MonthlyUsed:  b.month.used,
	}
}

// roll zeroes periods the clock has left. Caller holds mu.
func (b *BudgetTracker) roll() {
	now := b.now()
	for _, p := range b.periods() {
		p.roll(now)
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
