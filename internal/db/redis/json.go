package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/cinedex/internal/db"
)

// JSONSet stores a JSON document at the given key and path.
func (s *Store) JSONSet(ctx context.Context, key, path string, data []byte) error {
	cmd := s.b().Arbitrary("JSON.SET").Keys(key).Args(path, string(data)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpJSONSet, Err: err}
	}
	return nil
}

// JSONGet retrieves a JSON document by key and optional paths.
func (s *Store) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	cmd := s.b().Arbitrary("JSON.GET").Keys(key).Args(paths...).Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpJSONGet, Err: err}
	}
	if raw == "" {
		return nil, db.ErrKeyNotFound
	}
	return []byte(raw), nil
}

// JSONGetMulti pipelines one JSON.GET per key. JSON.MGET is avoided so keys
// may live in different cluster slots.
func (s *Store) JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make(rueidis.Commands, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Arbitrary("JSON.GET").Keys(key).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([][]byte, len(results))
	for i, res := range results {
		raw, err := res.ToString()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue
			}
			return nil, &db.Error{Op: db.OpJSONGet, Err: fmt.Errorf("key %s: %w", keys[i], err)}
		}
		if raw != "" {
			out[i] = []byte(raw)
		}
	}
	return out, nil
}

// JSONNumIncrBy increments the number at path. With a legacy path (".field")
// the server replies with the new value as a bulk string; with a JSONPath
// ("$.field") it replies with a one-element JSON array.
func (s *Store) JSONNumIncrBy(ctx context.Context, key, path string, n int64) (int64, error) {
	cmd := s.b().Arbitrary("JSON.NUMINCRBY").Keys(key).Args(path, strconv.FormatInt(n, 10)).Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) || isRedisErr(err, "doesn't exist", "does not exist", "nonexistent") {
			return 0, db.ErrKeyNotFound
		}
		return 0, &db.Error{Op: db.OpJSONNumIncrBy, Err: err}
	}

	raw = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(raw), "["), "]")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &db.Error{Op: db.OpJSONNumIncrBy, Err: fmt.Errorf("parse reply %q: %w", raw, err)}
	}
	return int64(v), nil
}
