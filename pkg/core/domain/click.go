package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Field length limits, in characters
const (
	MaxAdIDLen    = 120
	MaxGenreLen   = 80
	MaxPageIDLen  = 80
	MaxPageURLLen = 300
)

const (
	CounterKeyPrefix = "click:"
	MetaKeyPrefix    = "meta:"

	// MetaTTL is reset on every write of a metadata record
	MetaTTL = 30 * 24 * time.Hour

	// TimestampLayout matches JavaScript's Date.prototype.toISOString
	TimestampLayout = "2006-01-02T15:04:05.000Z"
	DayLayout       = "2006-01-02"
)

var ErrMissingAdID = errors.New("missing ad_id")

// ClickEvent is a sanitized click as received on /log. It is never stored as a record.
type ClickEvent struct {
	Timestamp string `json:"ts"`
	AdID      string `json:"ad_id"`
	Genre     string `json:"genre"`
	PageID    string `json:"page_id"`
	PageURL   string `json:"page_url"`
}

// AdMeta is the value of a meta:<ad_id> record
type AdMeta struct {
	Genre   string `json:"genre"`
	PageID  string `json:"page_id"`
	PageURL string `json:"page_url"`
}

// NewClickEvent coerces a decoded JSON payload into a ClickEvent. Missing or falsy
// fields become empty strings; a falsy ts falls back to now.
func NewClickEvent(payload map[string]any, now time.Time) ClickEvent {
	ts := coerceString(payload["ts"])
	if ts == "" {
		ts = now.UTC().Format(TimestampLayout)
	}

	return ClickEvent{
		Timestamp: ts,
		AdID:      truncate(coerceString(payload["ad_id"]), MaxAdIDLen),
		Genre:     truncate(coerceString(payload["genre"]), MaxGenreLen),
		PageID:    truncate(coerceString(payload["page_id"]), MaxPageIDLen),
		PageURL:   truncate(coerceString(payload["page_url"]), MaxPageURLLen),
	}
}

// Day returns the first 10 characters of the timestamp. The result is not validated.
func (e ClickEvent) Day() string {
	return truncate(e.Timestamp, len(DayLayout))
}

// HasValidDay reports whether Day parses as a calendar date.
func (e ClickEvent) HasValidDay() bool {
	_, err := time.Parse(DayLayout, e.Day())
	return err == nil
}

func (e ClickEvent) Meta() AdMeta {
	return AdMeta{Genre: e.Genre, PageID: e.PageID, PageURL: e.PageURL}
}

// CounterKey builds click:<day>:<ad_id>
func CounterKey(day, adID string) string {
	return DayPrefix(day) + adID
}

// DayPrefix builds click:<day>:, the scan prefix for one day bucket
func DayPrefix(day string) string {
	return CounterKeyPrefix + day + ":"
}

func MetaKey(adID string) string {
	return MetaKeyPrefix + adID
}

// AdIDFromKey strips the day prefix from a counter key.
func AdIDFromKey(key, prefix string) string {
	return strings.TrimPrefix(key, prefix)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
