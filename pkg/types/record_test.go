package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityRank(t *testing.T) {
	tests := []struct {
		priority string
		want     int
	}{
		{PriorityHigh, 1},
		{PriorityMedium, 2},
		{PriorityLow, 3},
		{"urgent", 4},
		{"", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriorityRank(tt.priority), "priority %q", tt.priority)
	}
}

func TestIsSentinelUID(t *testing.T) {
	assert.True(t, IsSentinelUID(""))
	assert.True(t, IsSentinelUID(UIDNone))
	assert.False(t, IsSentinelUID("A1"))
	assert.False(t, IsSentinelUID("None"), "sentinel match is exact")
}
