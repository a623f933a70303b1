package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	byAdID map[string]int64
	err    error
	days   int
}

func (f *stubFetcher) FetchStats(ctx context.Context, days int) (map[string]int64, error) {
	f.days = days
	return f.byAdID, f.err
}

func TestScoreToPriority(t *testing.T) {
	tests := []struct {
		clicks int64
		want   int
	}{
		{0, 30},
		{1, 44},   // 30 + ln(2)*20 = 43.86
		{10, 78},  // 30 + ln(11)*20 = 77.96
		{19, 90},  // 30 + ln(20)*20 = 89.91
		{1000, 90},
		{-5, 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreToPriority(tt.clicks), "clicks=%d", tt.clicks)
	}
}

func TestApplyClicks(t *testing.T) {
	var aff map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"Dev/Tools": [
			{"id": " a1 ", "priority": 50},
			{"id": "b2", "priority": 70},
			{"id": "", "priority": 10},
			"not-an-item"
		],
		"Productivity": [{"id": "c3"}],
		"Unknown Genre": [{"id": "a1", "priority": 1}]
	}`), &aff))

	changed := ApplyClicks(aff, map[string]int64{"a1": 10, "c3": 1, "zz": 4})

	assert.True(t, changed)
	dev := aff["Dev/Tools"].([]any)
	assert.Equal(t, 78, dev[0].(map[string]any)["priority"])
	assert.Equal(t, float64(70), dev[1].(map[string]any)["priority"])
	assert.Equal(t, float64(10), dev[2].(map[string]any)["priority"])
	assert.Equal(t, 44, aff["Productivity"].([]any)[0].(map[string]any)["priority"])
	assert.Equal(t, float64(1), aff["Unknown Genre"].([]any)[0].(map[string]any)["priority"])
}

func TestApplyClicks_NoClicksNoChange(t *testing.T) {
	aff := map[string]any{
		"Dev/Tools": []any{map[string]any{"id": "a1"}, map[string]any{"id": "b2", "priority": float64(0)}},
	}
	assert.False(t, ApplyClicks(aff, nil))
}

func TestPriorityService_Refresh(t *testing.T) {
	fetcher := &stubFetcher{byAdID: map[string]int64{"a1": 10}}
	s := NewPriorityService(fetcher)
	aff := map[string]any{"Dev/Tools": []any{map[string]any{"id": "a1", "priority": float64(78)}}}

	changed, err := s.Refresh(context.Background(), aff, 14)

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 14, fetcher.days)

	fetcher.err = assert.AnError
	_, err = s.Refresh(context.Background(), aff, 7)
	assert.ErrorIs(t, err, assert.AnError)
}
