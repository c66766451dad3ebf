package config

import "math"

// GravityCurve converts a level into ticks per row.
type GravityCurve struct {
	gravity    GravityConfig
	difficulty DifficultyConfig
}

// NewGravityCurve creates a curve from validated config.
func NewGravityCurve(cfg BlockfallConfig) *GravityCurve {
	return &GravityCurve{
		gravity:    cfg.Gravity,
		difficulty: cfg.Difficulty,
	}
}

// IsProgressive reports whether gravity speeds up with the level.
func (c *GravityCurve) IsProgressive() bool {
	return c.difficulty.Progression
}

// SpeedLevel returns the speed level used for gravity at the given game level.
func (c *GravityCurve) SpeedLevel(level int) int {
	start := max(1, c.difficulty.StartSpeed)
	if !c.difficulty.Progression {
		return start
	}
	return max(1, level) + start - 1
}

// TicksPerRow returns how many ticks the active piece waits before falling
// one row. slow applies the SLOW piece factor.
func (c *GravityCurve) TicksPerRow(level int, slow bool) int {
	speed := c.SpeedLevel(level)
	ticks := c.gravity.BaseTicks - (speed-1)*c.gravity.TicksPerLevel
	ticks = max(ticks, c.gravity.MinTicks, 1)

	if slow && c.gravity.SlowPieceFactor > 1 {
		ticks = int(math.Round(float64(ticks) * c.gravity.SlowPieceFactor))
	}
	return ticks
}
