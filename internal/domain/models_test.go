package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"Low", LevelLow},
		{"medium", LevelMedium},
		{" HIGH ", LevelHigh},
		{"Very High", LevelVeryHigh},
		{"VeryHigh", LevelVeryHigh},
		{"very_high", LevelVeryHigh},
		{"very-high", LevelVeryHigh},
		{"Extreme", Level("Extreme")},
		{"", Level("")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLevelValid(t *testing.T) {
	assert.True(t, LevelLow.Valid())
	assert.True(t, LevelVeryHigh.Valid())
	assert.False(t, Level("VeryHigh").Valid())
	assert.False(t, Level("").Valid())
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, time.December, 5, 10, 0, 0, 0, time.UTC)
	clock := FixedClock(at)

	assert.Equal(t, at, clock())
	assert.Equal(t, at, clock())
}

func TestSystemClock_UsesLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := SystemClock(loc)()

	assert.Equal(t, loc, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}
