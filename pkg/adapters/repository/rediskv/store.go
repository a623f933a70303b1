// Package rediskv backs the CounterStore with Redis strings.
package rediskv

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/wadjakorntonsri/go-click-counter/pkg/ports"
)

const defaultScanCount = 1000

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// NewStoreFromURL parses a redis:// URL and checks the connection.
func NewStoreFromURL(ctx context.Context, redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewStore(client), nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Put(ctx context.Context, key, value string, opts ports.PutOptions) error {
	return s.client.Set(ctx, key, value, opts.ExpirationTTL).Err()
}

// List runs one SCAN step. The cursor is Redis' own; SCAN may return a key more than
// once and may return empty pages before the scan completes.
func (s *Store) List(ctx context.Context, opts ports.ListOptions) (*ports.ListResult, error) {
	var cursor uint64
	if opts.Cursor != "" {
		c, err := strconv.ParseUint(opts.Cursor, 10, 64)
		if err != nil {
			return nil, err
		}
		cursor = c
	}

	count := int64(opts.Limit)
	if count <= 0 {
		count = defaultScanCount
	}

	keys, next, err := s.client.Scan(ctx, cursor, escapeGlob(opts.Prefix)+"*", count).Result()
	if err != nil {
		return nil, err
	}

	res := &ports.ListResult{Keys: make([]ports.KeyEntry, len(keys))}
	for i, k := range keys {
		res.Keys[i] = ports.KeyEntry{Name: k}
	}
	if next != 0 {
		res.Cursor = strconv.FormatUint(next, 10)
	}
	return res, nil
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob quotes MATCH pattern metacharacters so the prefix is matched literally.
func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}

var _ ports.CounterStore = (*Store)(nil)
