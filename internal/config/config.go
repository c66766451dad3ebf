// Package config provides YAML-based game configuration loading and
// difficulty management for blockfall.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// BlockfallConfig contains all tunables for the falling-block game.
type BlockfallConfig struct {
	Gravity    GravityConfig    `yaml:"gravity"`
	Queue      QueueConfig      `yaml:"queue"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GravityConfig defines how fast the active piece falls, in simulation ticks.
type GravityConfig struct {
	BaseTicks       int     `yaml:"base_ticks"`        // Ticks per row at speed level 1
	TicksPerLevel   int     `yaml:"ticks_per_level"`   // Ticks removed per speed level
	MinTicks        int     `yaml:"min_ticks"`         // Fastest allowed gravity
	SlowPieceFactor float64 `yaml:"slow_piece_factor"` // Multiplier while a SLOW piece falls
}

// QueueConfig defines the upcoming-piece queue.
type QueueConfig struct {
	Preview      int     `yaml:"preview"`        // Lookahead depth, at least 3
	SlowChance   float64 `yaml:"slow_chance"`    // Probability of a SLOW piece per draw
	SlowMinLevel int     `yaml:"slow_min_level"` // First level where SLOW pieces appear
}

// DifficultyConfig defines the speed progression.
type DifficultyConfig struct {
	StartSpeed  int  `yaml:"start_speed"` // Speed level used at level 1
	Progression bool `yaml:"progression"` // false pins gravity at StartSpeed
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParseDifficulty converts a CLI value into a preset. Empty means no preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// StartSpeedForPreset returns the starting speed level for a difficulty preset.
func StartSpeedForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 6
	default:
		return 1
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Progression = false
		return
	}

	cfg.Difficulty.Progression = true
	cfg.Difficulty.StartSpeed = StartSpeedForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Queue.SlowChance = min(1, cfg.Queue.SlowChance*2)
	case DifficultyHard:
		cfg.Queue.SlowChance = 0
	}
}

// Validate checks every field and reports all problems at once.
func (c BlockfallConfig) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	g := c.Gravity
	if g.BaseTicks < 1 {
		bad("gravity.base_ticks must be >= 1, got %d", g.BaseTicks)
	}
	if g.MinTicks < 1 {
		bad("gravity.min_ticks must be >= 1, got %d", g.MinTicks)
	}
	if g.MinTicks > g.BaseTicks {
		bad("gravity.min_ticks (%d) exceeds base_ticks (%d)", g.MinTicks, g.BaseTicks)
	}
	if g.TicksPerLevel < 0 {
		bad("gravity.ticks_per_level must be >= 0, got %d", g.TicksPerLevel)
	}
	if g.SlowPieceFactor < 1 {
		bad("gravity.slow_piece_factor must be >= 1, got %g", g.SlowPieceFactor)
	}

	q := c.Queue
	if q.Preview < 3 {
		bad("queue.preview must be >= 3, got %d", q.Preview)
	}
	if q.SlowChance < 0 || q.SlowChance > 1 {
		bad("queue.slow_chance must be in [0, 1], got %g", q.SlowChance)
	}
	if q.SlowMinLevel < 1 {
		bad("queue.slow_min_level must be >= 1, got %d", q.SlowMinLevel)
	}

	if c.Difficulty.StartSpeed < 1 {
		bad("difficulty.start_speed must be >= 1, got %d", c.Difficulty.StartSpeed)
	}

	return errors.Join(errs...)
}
