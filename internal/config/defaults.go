package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the hardcoded default configuration.
// It matches defaults/blockfall.yaml.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Gravity: GravityConfig{
			BaseTicks:       48,
			TicksPerLevel:   4,
			MinTicks:        3,
			SlowPieceFactor: 2,
		},
		Queue: QueueConfig{
			Preview:      3,
			SlowChance:   0.15,
			SlowMinLevel: 3,
		},
		Difficulty: DifficultyConfig{
			StartSpeed:  1,
			Progression: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlockfallYAML
}
