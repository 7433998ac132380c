// Package memory is an in-process db.Store for local runs and tests.
// Data is lost on exit.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kailas-cloud/cinedex/internal/db"
)

var _ db.Store = (*Store)(nil)

type entry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

// Store keeps JSON documents and plain values in one keyspace.
type Store struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// lookup must be called with mu held.
func (s *Store) lookup(key string) ([]byte, bool) {
	e, ok := s.data[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.data, true
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.lookup(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return clone(v), nil
}

// Set stores a value without expiry.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{data: clone(value)}
	return nil
}

// SetWithTTL stores a value that expires after ttl.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{data: clone(value), expiresAt: s.now().Add(ttl)}
	return nil
}

// IncrBy increments an integer value, creating it at zero. The TTL is kept.
func (s *Store) IncrBy(_ context.Context, key string, val int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cur int64
	if v, ok := s.lookup(key); ok {
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return &db.Error{Op: db.OpIncrBy, Err: fmt.Errorf("value is not an integer")}
		}
		cur = n
	} else {
		delete(s.data, key)
	}

	e := s.data[key]
	e.data = []byte(strconv.FormatInt(cur+val, 10))
	s.data[key] = e
	return nil
}

// Expire sets a TTL on a live key. With nx the TTL is only set when the key has none.
// Missing keys are ignored.
func (s *Store) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(key); !ok {
		return nil
	}
	e := s.data[key]
	if nx && !e.expiresAt.IsZero() {
		return nil
	}
	e.expiresAt = s.now().Add(ttl)
	s.data[key] = e
	return nil
}

// Del deletes a key. Missing keys are ignored.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Exists checks if a live key exists.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.lookup(key)
	return ok, nil
}

// Scan returns live keys matching a glob pattern, sorted.
func (s *Store) Scan(_ context.Context, pattern string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.data {
		if _, ok := s.lookup(k); !ok {
			continue
		}
		matched, err := path.Match(pattern, k)
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		if matched {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// JSONSet replaces the whole document. Only root paths are supported.
func (s *Store) JSONSet(_ context.Context, key, p string, data []byte) error {
	if !isRoot(p) {
		return &db.Error{Op: db.OpJSONSet, Err: fmt.Errorf("%w: %s", db.ErrPathUnsupported, p)}
	}
	if !json.Valid(data) {
		return &db.Error{Op: db.OpJSONSet, Err: fmt.Errorf("invalid json")}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{data: clone(data)}
	return nil
}

// JSONGet returns the whole document. Only root paths are supported.
func (s *Store) JSONGet(_ context.Context, key string, paths ...string) ([]byte, error) {
	for _, p := range paths {
		if !isRoot(p) {
			return nil, &db.Error{Op: db.OpJSONGet, Err: fmt.Errorf("%w: %s", db.ErrPathUnsupported, p)}
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.lookup(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return clone(v), nil
}

// JSONGetMulti returns whole documents; missing keys yield nil entries.
func (s *Store) JSONGetMulti(_ context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if v, ok := s.lookup(k); ok {
			out[i] = clone(v)
		}
	}
	return out, nil
}

// JSONNumIncrBy increments a top-level numeric field. Accepts ".field" and "$.field".
// The TTL is kept.
func (s *Store) JSONNumIncrBy(_ context.Context, key, p string, n int64) (int64, error) {
	field := strings.TrimPrefix(strings.TrimPrefix(p, "$"), ".")
	if field == "" || strings.ContainsAny(field, ".[") {
		return 0, &db.Error{Op: db.OpJSONNumIncrBy, Err: fmt.Errorf("%w: %s", db.ErrPathUnsupported, p)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.lookup(key)
	if !ok {
		return 0, db.ErrKeyNotFound
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(v, &doc); err != nil {
		return 0, &db.Error{Op: db.OpJSONNumIncrBy, Err: err}
	}

	raw, ok := doc[field]
	if !ok {
		return 0, &db.Error{Op: db.OpJSONNumIncrBy, Err: fmt.Errorf("field %s not found", field)}
	}
	var cur float64
	if err := json.Unmarshal(raw, &cur); err != nil {
		return 0, &db.Error{Op: db.OpJSONNumIncrBy, Err: fmt.Errorf("field %s is not a number", field)}
	}

	next := int64(cur) + n
	doc[field] = json.RawMessage(strconv.FormatInt(next, 10))
	updated, err := json.Marshal(doc)
	if err != nil {
		return 0, &db.Error{Op: db.OpJSONNumIncrBy, Err: err}
	}
	e := s.data[key]
	e.data = updated
	s.data[key] = e
	return next, nil
}

func isRoot(p string) bool { return p == "$" || p == "." }

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
