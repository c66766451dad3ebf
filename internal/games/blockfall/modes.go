package blockfall

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode describes one registered variant of the game.
type Mode struct {
	ID         string
	Title      string
	Summary    string
	SlowPieces bool
}

var (
	// Marathon is the default mode: endless play with SLOW pieces mixed in
	// once the level is high enough.
	Marathon = Mode{
		ID:         "blockfall",
		Title:      "Blockfall Marathon",
		Summary:    "Endless play, SLOW pieces from level 3",
		SlowPieces: true,
	}

	// Classic draws from the plain 7-bag only.
	Classic = Mode{
		ID:      "blockfall_classic",
		Title:   "Blockfall Classic",
		Summary: "Pure 7-bag, no SLOW pieces",
	}
)

// Modes lists every mode in menu order.
func Modes() []Mode {
	return []Mode{Marathon, Classic}
}

func init() {
	for _, m := range Modes() {
		registry.Register(m.ID, func() registry.Game {
			return New(m)
		})
	}
}

var (
	settingsMu sync.RWMutex
	settings   = config.DefaultBlockfallConfig()
)

// Configure loads the config file at path (or the search path when empty),
// applies the difficulty preset and makes the result the default for new games.
func Configure(path string, preset config.DifficultyPreset) (config.BlockfallConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := SetConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SetConfig replaces the config used by games created afterwards.
func SetConfig(cfg config.BlockfallConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("blockfall: %w", err)
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
	return nil
}

// CurrentConfig returns the config new games start with.
func CurrentConfig() config.BlockfallConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}
