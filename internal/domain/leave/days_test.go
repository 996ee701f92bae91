package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCountLeaveDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"monday to next monday", "2025-03-03", "2025-03-10", 6},
		{"single weekday", "2025-03-05", "2025-03-05", 1},
		{"weekend only", "2025-03-08", "2025-03-09", 0},
		{"friday to monday", "2025-03-07", "2025-03-10", 2},
		{"full work week", "2025-03-03", "2025-03-07", 5},
		{"reversed range", "2025-03-10", "2025-03-03", 0},
		{"across year end", "2025-12-29", "2026-01-02", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountLeaveDays(date(tt.start), date(tt.end)))
		})
	}
}

func TestCountLeaveDays_IgnoresClock(t *testing.T) {
	start := time.Date(2025, 3, 3, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 3, 4, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 2, CountLeaveDays(start, end))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"disjoint", "2025-03-03", "2025-03-04", "2025-03-06", "2025-03-07", false},
		{"adjacent days", "2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", false},
		{"shared end day", "2025-03-03", "2025-03-05", "2025-03-05", "2025-03-06", true},
		{"contained", "2025-03-01", "2025-03-31", "2025-03-10", "2025-03-11", true},
		{"same single day", "2025-03-03", "2025-03-03", "2025-03-03", "2025-03-03", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			assert.Equal(t, tt.want, got)
			// symmetric
			assert.Equal(t, tt.want, Overlaps(date(tt.bStart), date(tt.bEnd), date(tt.aStart), date(tt.aEnd)))
		})
	}
}

func TestLeaveBalance_Covers(t *testing.T) {
	b := LeaveBalance{TotalLeaves: 10, UsedLeaves: 7}
	assert.Equal(t, 3, b.Remaining())
	assert.True(t, b.Covers(3))
	assert.False(t, b.Covers(4))
}
