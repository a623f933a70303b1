package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-click-counter/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-counter/pkg/ports"
)

type ClickService struct {
	store   ports.CounterStore
	now     func() time.Time
	metrics statsd.ClientInterface
}

type Option func(*ClickService)

// WithClock overrides the time source used for default timestamps and the stats window.
func WithClock(now func() time.Time) Option {
	return func(s *ClickService) { s.now = now }
}

func WithMetrics(client statsd.ClientInterface) Option {
	return func(s *ClickService) { s.metrics = client }
}

func NewClickService(store ports.CounterStore, opts ...Option) *ClickService {
	s := &ClickService{
		store:   store,
		now:     time.Now,
		metrics: &statsd.NoOpClient{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogClick sanitizes the payload and records one click for its (day, ad_id) bucket,
// then replaces the ad's metadata record.
//
// The counter update is a plain read-modify-write: two concurrent clicks on the same
// bucket can lose an increment.
func (s *ClickService) LogClick(ctx context.Context, payload map[string]any) (*domain.ClickEvent, error) {
	event := domain.NewClickEvent(payload, s.now())
	if event.AdID == "" {
		_ = s.metrics.Incr("clicks.rejected", []string{"reason:missing_ad_id"}, 1)
		return nil, domain.ErrMissingAdID
	}

	if !event.HasValidDay() {
		log.Warn().Str("ts", event.Timestamp).Str("ad_id", event.AdID).Msg("click timestamp has no valid date, bucketing as-is")
	}

	key := domain.CounterKey(event.Day(), event.AdID)
	current, _, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read counter %s: %w", key, err)
	}
	next := domain.ParseCount(current) + 1
	if err := s.store.Put(ctx, key, strconv.FormatInt(next, 10), ports.PutOptions{}); err != nil {
		return nil, fmt.Errorf("write counter %s: %w", key, err)
	}

	meta, err := json.Marshal(event.Meta())
	if err != nil {
		return nil, err
	}
	metaKey := domain.MetaKey(event.AdID)
	if err := s.store.Put(ctx, metaKey, string(meta), ports.PutOptions{ExpirationTTL: domain.MetaTTL}); err != nil {
		return nil, fmt.Errorf("write meta %s: %w", metaKey, err)
	}

	_ = s.metrics.Incr("clicks.logged", nil, 1)
	return &event, nil
}

// Stats sums every counter of the last `days` UTC days, today included, per ad_id.
// days is expected to be already clamped by the caller.
func (s *ClickService) Stats(ctx context.Context, days int) (*domain.Stats, error) {
	stats := &domain.Stats{
		Days:   days,
		ByAdID: make(map[string]int64),
	}

	for _, day := range domain.WindowDays(s.now(), days) {
		prefix := domain.DayPrefix(day)
		err := s.scan(ctx, prefix, func(key string) {
			value, _, err := s.store.Get(ctx, key)
			if err != nil {
				// a failed point read counts as zero
				log.Warn().Err(err).Str("key", key).Msg("counter read failed")
			}
			adID := domain.AdIDFromKey(key, prefix)
			stats.ByAdID[adID] += domain.ParseCount(value)
		})
		if err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// Export dumps every counter and metadata record. For migration.
func (s *ClickService) Export(ctx context.Context) ([]domain.Record, error) {
	var records []domain.Record
	for _, prefix := range []string{domain.CounterKeyPrefix, domain.MetaKeyPrefix} {
		var getErr error
		err := s.scan(ctx, prefix, func(key string) {
			if getErr != nil {
				return
			}
			value, found, err := s.store.Get(ctx, key)
			if err != nil {
				getErr = fmt.Errorf("read %s: %w", key, err)
				return
			}
			if !found {
				// expired between list and get
				return
			}
			records = append(records, domain.Record{Key: key, Value: value})
		})
		if err != nil {
			return nil, err
		}
		if getErr != nil {
			return nil, getErr
		}
	}
	return records, nil
}

// Import writes records back. Metadata records get a fresh TTL, unknown keys are skipped.
func (s *ClickService) Import(ctx context.Context, records []domain.Record) (int, error) {
	count := 0
	for _, r := range records {
		var opts ports.PutOptions
		switch {
		case strings.HasPrefix(r.Key, domain.CounterKeyPrefix):
		case strings.HasPrefix(r.Key, domain.MetaKeyPrefix):
			opts.ExpirationTTL = domain.MetaTTL
		default:
			log.Warn().Str("key", r.Key).Msg("skipping unknown record")
			continue
		}
		if err := s.store.Put(ctx, r.Key, r.Value, opts); err != nil {
			return count, fmt.Errorf("import %s: %w", r.Key, err)
		}
		count++
	}
	return count, nil
}

// scan walks every key under prefix, following the store cursor until exhausted.
// Keys repeated across pages of the same scan are visited once.
func (s *ClickService) scan(ctx context.Context, prefix string, visit func(key string)) error {
	seen := make(map[string]struct{})
	cursor := ""
	for {
		page, err := s.store.List(ctx, ports.ListOptions{Prefix: prefix, Cursor: cursor})
		if err != nil {
			return fmt.Errorf("list %s: %w", prefix, err)
		}
		for _, k := range page.Keys {
			if _, dup := seen[k.Name]; dup {
				continue
			}
			seen[k.Name] = struct{}{}
			visit(k.Name)
		}
		if page.Cursor == "" {
			return nil
		}
		cursor = page.Cursor
	}
}

var _ ports.ClickService = (*ClickService)(nil)
