package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDays(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 7},
		{"abc", 7},
		{"0", 1},
		{"-4", 1},
		{"1", 1},
		{"14", 14},
		{"14days", 14},
		{" 3", 3},
		{"30", 30},
		{"500", 30},
		{"99999999999999999999999", 30},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDays(tt.raw))
		})
	}
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, int64(0), ParseCount(""))
	assert.Equal(t, int64(0), ParseCount("NaN"))
	assert.Equal(t, int64(12), ParseCount("12"))
	assert.Equal(t, int64(12), ParseCount("12.9"))
}

func TestWindowDays(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 30, 0, 0, time.FixedZone("UTC+9", 9*3600))

	got := WindowDays(now, 3)

	// 00:30 at UTC+9 is still Feb 29 in UTC
	assert.Equal(t, []string{"2024-02-29", "2024-02-28", "2024-02-27"}, got)
}
