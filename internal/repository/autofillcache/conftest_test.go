package autofillcache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/domain"
)

type mockAutofiller struct {
	result domain.AutofillResult
	err    error
	calls  int
	health error
}

func (m *mockAutofiller) Autofill(_ context.Context, _ domain.AutofillRequest) (domain.AutofillResult, error) {
	m.calls++
	return m.result, m.err
}

func (m *mockAutofiller) HealthCheck(context.Context) error { return m.health }

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCache(t *testing.T, inner domain.Autofiller, s store) (*CachedAutofiller, *prometheus.CounterVec) {
	t.Helper()
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_autofill_cache_total", Help: "test"},
		[]string{"result"},
	)
	return New(inner, s, "cinedex:", time.Hour, counter, zap.NewNop()), counter
}
