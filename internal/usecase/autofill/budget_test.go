package autofill

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

func TestBudgetTracker_RejectWhenExceeded(t *testing.T) {
	bt := NewBudgetTracker("test", "cinedex:", 100, 0, BudgetActionReject, zap.NewNop())
	bt.Record(100)

	if err := bt.Check(context.Background()); !errors.Is(err, domain.ErrAutofillQuotaExceeded) {
		t.Fatalf("expected ErrAutofillQuotaExceeded, got %v", err)
	}
}

func TestBudgetTracker_RejectNamesPeriod(t *testing.T) {
	tests := []struct {
		name           string
		daily, monthly int64
		record         int64
		want           string
	}{
		{"daily", 100, 1000, 100, "autofill quota exceeded: daily limit of 100 tokens reached"},
		{"monthly", 0, 500, 500, "autofill quota exceeded: monthly limit of 500 tokens reached"},
		{"both exhausted reports daily", 100, 100, 100, "autofill quota exceeded: daily limit of 100 tokens reached"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bt := NewBudgetTracker("test", "cinedex:", tc.daily, tc.monthly, BudgetActionReject, zap.NewNop())
			bt.Record(tc.record)

			err := bt.Check(context.Background())
			if !errors.Is(err, domain.ErrAutofillQuotaExceeded) {
				t.Fatalf("expected ErrAutofillQuotaExceeded, got %v", err)
			}
			if err.Error() != tc.want {
				t.Errorf("error = %q, want %q", err.Error(), tc.want)
			}
		})
	}
}

func TestBudgetTracker_WarnWhenExceeded(t *testing.T) {
	bt := NewBudgetTracker("test", "cinedex:", 100, 0, BudgetActionWarn, zap.NewNop())
	bt.Record(200)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for warn action, got %v", err)
	}
}

func TestBudgetTracker_MonthlyReject(t *testing.T) {
	bt := NewBudgetTracker("test", "cinedex:", 0, 500, BudgetActionReject, zap.NewNop())
	bt.Record(500)

	if err := bt.Check(context.Background()); !errors.Is(err, domain.ErrAutofillQuotaExceeded) {
		t.Fatalf("expected ErrAutofillQuotaExceeded, got %v", err)
	}
}

func TestBudgetTracker_Remaining(t *testing.T) {
	bt := NewBudgetTracker("test", "cinedex:", 1000, 10000, BudgetActionWarn, zap.NewNop())
	bt.Record(300)

	if got := bt.RemainingDaily(); got != 700 {
		t.Errorf("daily remaining = %d, want 700", got)
	}
	if got := bt.RemainingMonthly(); got != 9700 {
		t.Errorf("monthly remaining = %d, want 9700", got)
	}

	bt.Record(5000)
	if got := bt.RemainingDaily(); got != 0 {
		t.Errorf("overspent daily remaining = %d, want 0", got)
	}
}

func TestBudgetTracker_Unlimited(t *testing.T) {
	bt := NewBudgetTracker("test", "cinedex:", 0, 0, BudgetActionReject, zap.NewNop())
	bt.Record(999999999)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil for unlimited budget, got %v", err)
	}
	if bt.RemainingDaily() != -1 || bt.RemainingMonthly() != -1 {
		t.Error("expected -1 remaining when unlimited")
	}
}

func TestBudgetTracker_DayRollover(t *testing.T) {
	now := time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC)
	bt := NewBudgetTracker("test", "cinedex:", 100, 1000, BudgetActionReject, zap.NewNop())
	bt.setClock(func() time.Time { return now })

	bt.Record(100)
	if err := bt.Check(context.Background()); err == nil {
		t.Fatal("expected daily budget to be exhausted")
	}

	now = now.Add(2 * time.Hour)
	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("new day should reset the daily budget: %v", err)
	}
	if got := bt.RemainingMonthly(); got != 900 {
		t.Errorf("monthly remaining = %d, want 900", got)
	}
	if c := bt.Counters(); c.DailyUsed != 0 || c.MonthlyUsed != 100 || c.DailyLimit != 100 || c.MonthlyLimit != 1000 {
		t.Errorf("counters = %+v", c)
	}
}

func TestBudgetTracker_WithStore_LoadsValues(t *testing.T) {
	store := newMockBudgetStore()
	bt := NewBudgetTracker("openai", "cinedex:", 1000, 10000, BudgetActionReject, zap.NewNop())
	now := bt.now()
	store.data[bt.key(&bt.day, now)] = 300
	store.data[bt.key(&bt.month, now)] = 5000

	bt.WithStore(context.Background(), store)

	if bt.day.used != 300 || bt.month.used != 5000 {
		t.Errorf("loaded daily=%d monthly=%d", bt.day.used, bt.month.used)
	}
}

func TestBudgetTracker_WithStore_LoadError(t *testing.T) {
	store := newMockBudgetStore()
	store.getErr = errors.New("connection refused")

	bt := NewBudgetTracker("openai", "cinedex:", 1000, 10000, BudgetActionReject, zap.NewNop())
	bt.WithStore(context.Background(), store)

	if bt.day.used != 0 || bt.month.used != 0 {
		t.Errorf("expected zero counters on load error, got %d/%d", bt.day.used, bt.month.used)
	}
}

func TestBudgetTracker_Record_PersistsToStore(t *testing.T) {
	store := newMockBudgetStore()
	bt := NewBudgetTracker("openai", "cinedex:", 10000, 100000, BudgetActionWarn, zap.NewNop())
	bt.WithStore(context.Background(), store)

	bt.Record(100)
	bt.Record(200)

	now := bt.now()
	store.mu.Lock()
	daily, monthly := store.data[bt.key(&bt.day, now)], store.data[bt.key(&bt.month, now)]
	store.mu.Unlock()
	if daily != 300 || monthly != 300 {
		t.Errorf("stored daily=%d monthly=%d, want 300/300", daily, monthly)
	}
}

func TestBudgetTracker_Record_StoreWriteError(t *testing.T) {
	store := newMockBudgetStore()
	bt := NewBudgetTracker("openai", "cinedex:", 1000, 10000, BudgetActionWarn, zap.NewNop())
	bt.WithStore(context.Background(), store)
	store.setErr = errors.New("write timeout")

	bt.Record(50)

	if got := bt.RemainingDaily(); got != 950 {
		t.Errorf("in-memory usage must survive store errors, remaining = %d", got)
	}
}

func TestBudgetTracker_KeyFormat(t *testing.T) {
	bt := NewBudgetTracker("openai", "cinedex:", 0, 0, BudgetActionWarn, zap.NewNop())
	day := time.Date(2026, 10, 7, 12, 0, 0, 0, time.UTC)

	if got := bt.key(&bt.day, day); got != "cinedex:budget:openai:daily:2026-10-07" {
		t.Errorf("daily key = %q", got)
	}
	if got := bt.key(&bt.month, day); got != "cinedex:budget:openai:monthly:2026-10" {
		t.Errorf("monthly key = %q", got)
	}
}
