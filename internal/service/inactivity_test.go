package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInactivityAlert(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		lastUpdated time.Time
		expected    bool
	}{
		{
			name:        "updated just now",
			lastUpdated: now,
			expected:    false,
		},
		{
			name:        "one second short of the threshold",
			lastUpdated: now.Add(-InactivityThreshold + time.Second),
			expected:    false,
		},
		{
			name:        "exactly five days stale",
			lastUpdated: now.Add(-InactivityThreshold),
			expected:    true,
		},
		{
			name:        "long abandoned",
			lastUpdated: now.Add(-30 * 24 * time.Hour),
			expected:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InactivityAlert(tt.lastUpdated, now))
		})
	}
}
