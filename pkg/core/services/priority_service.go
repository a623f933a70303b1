package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-click-counter/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-counter/pkg/ports"
)

// PriorityService re-ranks affiliate entries from recent click totals.
type PriorityService struct {
	fetcher ports.StatsFetcher
}

func NewPriorityService(fetcher ports.StatsFetcher) *PriorityService {
	return &PriorityService{fetcher: fetcher}
}

// Refresh fetches click totals and applies them to affiliates, an affiliates.json
// document. It reports whether any priority changed.
func (s *PriorityService) Refresh(ctx context.Context, affiliates map[string]any, days int) (bool, error) {
	byAdID, err := s.fetcher.FetchStats(ctx, days)
	if err != nil {
		return false, err
	}
	log.Info().Int("count", len(byAdID)).Msg("stats fetched")
	return ApplyClicks(affiliates, byAdID), nil
}

// ScoreToPriority damps click counts logarithmically into [MinPriority, MaxPriority].
func ScoreToPriority(clicks int64) int {
	if clicks < 0 {
		clicks = 0
	}
	score := math.Log(1 + float64(clicks))
	return clamp(domain.MinPriority, domain.MaxPriority, 30+score*20)
}

// ApplyClicks sets the priority of every affiliate item that received clicks. Items
// without clicks keep their current priority.
func ApplyClicks(affiliates map[string]any, byAdID map[string]int64) bool {
	changed := false
	for _, genre := range domain.Genres {
		items, ok := affiliates[genre].([]any)
		if !ok {
			continue
		}
		for _, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			id, _ := item["id"].(string)
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}

			oldPriority := priorityOf(item)
			newPriority := oldPriority
			if clicks := byAdID[id]; clicks > 0 {
				newPriority = ScoreToPriority(clicks)
			}
			if newPriority != oldPriority {
				item["priority"] = newPriority
				changed = true
			}
		}
	}
	return changed
}

func clamp(lo, hi int, x float64) int {
	n := int(math.RoundToEven(x))
	return max(lo, min(hi, n))
}

// priorityOf reads an item's priority; missing, zero or unreadable values give the default.
func priorityOf(item map[string]any) int {
	var n int
	switch v := item["priority"].(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case string:
		n, _ = strconv.Atoi(strings.TrimSpace(v))
	}
	if n == 0 {
		return domain.DefaultPriority
	}
	return n
}
