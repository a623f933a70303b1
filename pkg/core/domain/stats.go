package domain

import "time"

const (
	DefaultStatsDays = 7
	MinStatsDays     = 1
	MaxStatsDays     = 30
)

// Stats is the /stats response body
type Stats struct {
	Days   int              `json:"days"`
	ByAdID map[string]int64 `json:"by_ad_id"`
}

// ParseDays reads the days query parameter. Non-numeric input falls back to the
// default, anything else is clamped to [MinStatsDays, MaxStatsDays].
func ParseDays(raw string) int {
	n, ok := ParseLeadingInt(raw)
	if !ok {
		return DefaultStatsDays
	}
	if n < MinStatsDays {
		return MinStatsDays
	}
	if n > MaxStatsDays {
		return MaxStatsDays
	}
	return int(n)
}

// WindowDays lists the UTC dates of the window, newest first, starting at today.
func WindowDays(now time.Time, days int) []string {
	today := now.UTC()
	out := make([]string, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, today.AddDate(0, 0, -i).Format(DayLayout))
	}
	return out
}

// Record is a raw key/value pair, used for export and import
type Record struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
