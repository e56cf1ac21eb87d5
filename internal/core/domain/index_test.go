package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestIndexMode_IsValid tests index mode validation
func TestIndexMode_IsValid(t *testing.T) {
	assert.True(t, IndexIncremental.IsValid())
	assert.True(t, IndexFull.IsValid())
	assert.False(t, IndexMode("").IsValid())
	assert.False(t, IndexMode("partial").IsValid())
}

// TestIndexMode_Description tests human-readable descriptions
func TestIndexMode_Description(t *testing.T) {
	assert.Contains(t, IndexIncremental.Description(), "skip already indexed")
	assert.Contains(t, IndexFull.Description(), "clear collection")
	assert.Equal(t, unknownDescription, IndexMode("partial").Description())
}

// TestIndexReport_FragmentsPerSecond tests throughput calculation
func TestIndexReport_FragmentsPerSecond(t *testing.T) {
	tests := []struct {
		name     string
		report   IndexReport
		expected float64
	}{
		{
			name:     "ninety fragments in thirty seconds",
			report:   IndexReport{Fragments: 90, Duration: 30 * time.Second},
			expected: 3,
		},
		{
			name:     "zero duration yields zero",
			report:   IndexReport{Fragments: 10},
			expected: 0,
		},
		{
			name:     "no fragments yields zero",
			report:   IndexReport{Duration: 5 * time.Second},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.report.FragmentsPerSecond(), 1e-9)
		})
	}
}
