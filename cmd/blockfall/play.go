package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: blockfall).

Controls:
  Left/Right, A/D, H/L  - Move
  Down, S, J            - Soft drop
  Up, W, K, X           - Rotate
  Space                 - Hard drop
  C                     - Hold
  P                     - Pause
  R                     - Restart (after game over)
  Esc                   - Pause, then leave
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Level 1 gravity, more SLOW pieces
  normal - Gravity starts at speed 3
  hard   - Gravity starts at speed 6, no SLOW pieces
  fixed  - No speed-up, gravity stays at the configured start speed

Examples:
  blockfall play
  blockfall play blockfall_classic
  blockfall play --difficulty hard --name ada
  blockfall play --config ./my-blockfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().StringVar(&flagName, "name", "", "Player name prefilled at game over")
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := blockfall.Marathon.ID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	configureModes(logger, flagConfig, flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore(logger)

	_, runErr := tui.Run(game, store, terminalConfig(), tui.Options{
		PlayerName: flagName,
		Logger:     logger,
		Standalone: true,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
