// Package memory is an in-process CounterStore. Data lives only as long as the process.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wadjakorntonsri/go-click-counter/pkg/ports"
)

const defaultPageSize = 1000

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiration
}

type Store struct {
	mu       sync.RWMutex
	items    map[string]entry
	now      func() time.Time
	pageSize int
}

type Option func(*Store)

// WithPageSize caps the number of keys returned by one List call.
func WithPageSize(n int) Option {
	return func(s *Store) { s.pageSize = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		items:    make(map[string]entry),
		now:      time.Now,
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[key]
	if !ok || s.expired(e) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *Store) Put(ctx context.Context, key, value string, opts ports.PutOptions) error {
	e := entry{value: value}
	if opts.ExpirationTTL > 0 {
		e.expiresAt = s.now().Add(opts.ExpirationTTL)
	}

	s.mu.Lock()
	s.items[key] = e
	s.mu.Unlock()
	return nil
}

// List returns keys in lexicographic order. The cursor is the last key of the previous page.
func (s *Store) List(ctx context.Context, opts ports.ListOptions) (*ports.ListResult, error) {
	limit := opts.Limit
	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}

	s.mu.RLock()
	var names []string
	for k, e := range s.items {
		if strings.HasPrefix(k, opts.Prefix) && k > opts.Cursor && !s.expired(e) {
			names = append(names, k)
		}
	}
	s.mu.RUnlock()

	sort.Strings(names)

	res := &ports.ListResult{}
	if len(names) > limit {
		names = names[:limit]
		res.Cursor = names[limit-1]
	}
	res.Keys = make([]ports.KeyEntry, len(names))
	for i, n := range names {
		res.Keys[i] = ports.KeyEntry{Name: n}
	}
	return res, nil
}

func (s *Store) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

var _ ports.CounterStore = (*Store)(nil)
