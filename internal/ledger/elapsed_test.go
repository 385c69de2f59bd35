package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *int64 {
		ms := now.Add(-d).UnixMilli()
		return &ms
	}

	tests := []struct {
		name string
		ts   *int64
		want string
	}{
		{"missing timestamp", nil, "unknown"},
		{"30 seconds", ago(30 * time.Second), "just now"},
		{"future", ago(-time.Minute), "just now"},
		{"90 seconds", ago(90 * time.Second), "1 minutes ago"},
		{"59 minutes", ago(59 * time.Minute), "59 minutes ago"},
		{"3700 seconds", ago(3700 * time.Second), "1 hours ago"},
		{"23 hours", ago(23*time.Hour + 59*time.Minute), "23 hours ago"},
		{"25 hours", ago(25 * time.Hour), "14.03.2024"},
		{"a year", ago(366 * 24 * time.Hour), "15.03.2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatElapsed(tt.ts, now))
		})
	}
}
