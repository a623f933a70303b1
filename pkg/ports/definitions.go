package ports

import (
	"context"
	"time"

	"github.com/wadjakorntonsri/go-click-counter/pkg/core/domain"
)

// PutOptions configures a single CounterStore write
type PutOptions struct {
	// ExpirationTTL removes the key after the given duration. Zero means no expiration.
	ExpirationTTL time.Duration
}

// ListOptions configures one page of a prefix scan
type ListOptions struct {
	Prefix string
	Cursor string // empty starts a new scan
	Limit  int    // page size hint, store default when zero
}

type KeyEntry struct {
	Name string `json:"name"`
}

// ListResult is one page of a prefix scan. An empty Cursor means the scan is complete.
type ListResult struct {
	Keys   []KeyEntry
	Cursor string
}

// CounterStore is the key-value service holding counters and ad metadata
type CounterStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string, opts PutOptions) error
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
}

// ClickService defines the business logic operations
type ClickService interface {
	LogClick(ctx context.Context, payload map[string]any) (*domain.ClickEvent, error)
	Stats(ctx context.Context, days int) (*domain.Stats, error)

	// Migration
	Export(ctx context.Context) ([]domain.Record, error)
	Import(ctx context.Context, records []domain.Record) (int, error)
}

// StatsFetcher reads by_ad_id totals from a remote /stats endpoint
type StatsFetcher interface {
	FetchStats(ctx context.Context, days int) (map[string]int64, error)
}
