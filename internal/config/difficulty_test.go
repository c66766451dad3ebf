package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravityCurve(t *testing.T) {
	curve := NewGravityCurve(DefaultBlockfallConfig())

	tests := []struct {
		level int
		slow  bool
		want  int
	}{
		{1, false, 48},
		{2, false, 44},
		{5, false, 32},
		{12, false, 4},
		{13, false, 3}, // clamped to min_ticks
		{40, false, 3},
		{1, true, 96},
		{40, true, 6},
		{0, false, 48}, // levels below 1 act as 1
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, curve.TicksPerRow(tc.level, tc.slow), "level %d slow %v", tc.level, tc.slow)
	}
}

func TestGravityCurveStartSpeed(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	cfg.Difficulty.StartSpeed = 3
	curve := NewGravityCurve(cfg)

	assert.Equal(t, 3, curve.SpeedLevel(1))
	assert.Equal(t, 5, curve.SpeedLevel(3))
	assert.Equal(t, 40, curve.TicksPerRow(1, false))
	assert.True(t, curve.IsProgressive())
}

func TestGravityCurveFixed(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	cfg.Difficulty.Progression = false
	cfg.Difficulty.StartSpeed = 2
	curve := NewGravityCurve(cfg)

	assert.False(t, curve.IsProgressive())
	for _, level := range []int{1, 5, 30} {
		assert.Equal(t, 44, curve.TicksPerRow(level, false), "level %d", level)
	}
}

func TestGravityCurveMonotonic(t *testing.T) {
	curve := NewGravityCurve(DefaultBlockfallConfig())
	prev := curve.TicksPerRow(1, false)
	for level := 2; level <= 50; level++ {
		got := curve.TicksPerRow(level, false)
		assert.LessOrEqual(t, got, prev, "level %d", level)
		assert.Greater(t, curve.TicksPerRow(level, true), got-1, "slow is never faster")
		prev = got
	}
}
