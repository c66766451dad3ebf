// Package blockfall adapts the tetris engine to the registry game interface:
// fixed-tick gravity, input handling, pause and terminal rendering.
package blockfall

import (
	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Minimum terminal size for the full layout.
const (
	MinScreenW = 50
	MinScreenH = tetris.VisibleRows + 2
)

// flashDuration is how long a line-clear banner stays up, in ticks.
const flashDuration = 45

// Game implements registry.Game over a tetris.Board.
type Game struct {
	mode    Mode
	cfg     config.BlockfallConfig
	curve   *config.GravityCurve
	board   *tetris.Board
	runtime core.RuntimeConfig

	tick      uint64
	fallTicks int // Ticks since the active piece last fell
	paused    bool
	tooSmall  bool

	flash      string
	flashTicks int
	events     []core.Event
}

// New creates a game for mode using the current package config.
func New(mode Mode) *Game {
	return NewWithConfig(mode, CurrentConfig())
}

// NewWithConfig creates a game with an explicit config.
func NewWithConfig(mode Mode, cfg config.BlockfallConfig) *Game {
	return &Game{
		mode:  mode,
		cfg:   cfg,
		curve: config.NewGravityCurve(cfg),
	}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return g.mode.ID
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return g.mode.Title
}

// Summary returns a one-line description for menus.
func (g *Game) Summary() string {
	return g.mode.Summary
}

// queueOptions maps the config onto the randomizer settings for this mode.
func (g *Game) queueOptions() tetris.QueueOptions {
	return tetris.QueueOptions{
		Lookahead:    g.cfg.Queue.Preview,
		SlowPieces:   g.mode.SlowPieces,
		SlowChance:   g.cfg.Queue.SlowChance,
		SlowMinLevel: g.cfg.Queue.SlowMinLevel,
	}
}

// Reset starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.tick = 0
	g.fallTicks = 0
	g.paused = false
	g.flash = ""
	g.flashTicks = 0
	g.events = nil
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.board = tetris.NewBoard(tetris.NewQueue(cfg.Seed, g.queueOptions()))
	g.board.NewGame()
}

// Resize updates the screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.tooSmall = w < MinScreenW || h < MinScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = g.events[:0]

	if g.board == nil || g.board.GameOver() {
		return g.result()
	}

	if in.Count(core.ActionPause)%2 == 1 {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return g.result()
	}

	g.tick++
	if g.flashTicks > 0 {
		g.flashTicks--
	}

	for _, a := range in.Sequence() {
		if g.board.GameOver() {
			break
		}
		g.apply(a)
	}

	if !g.board.GameOver() {
		g.gravity()
	}

	return g.result()
}

// apply performs one player command.
func (g *Game) apply(a core.Action) {
	switch a {
	case core.ActionLeft:
		g.board.MoveLeft()
	case core.ActionRight:
		g.board.MoveRight()
	case core.ActionRotate:
		g.board.Rotate()
	case core.ActionDown:
		g.fallTicks = 0
		g.observe(g.board.StepDown)
	case core.ActionHardDrop:
		g.observe(func() (bool, tetris.ClearRowResult) {
			res := g.board.HardDrop()
			return true, res.Cleared
		})
	case core.ActionHold:
		if g.board.Hold() {
			g.fallTicks = 0
			g.emit(core.EventHold, int(g.board.Held()))
			if g.board.GameOver() {
				g.emit(core.EventGameOver, g.board.Score().Score())
			}
		}
	}
}

// gravity lowers the active piece once enough ticks have passed.
func (g *Game) gravity() {
	kind, _, _ := g.board.Active()
	g.fallTicks++
	if g.fallTicks < g.curve.TicksPerRow(g.board.Score().Level(), kind == tetris.KindSlow) {
		return
	}
	g.fallTicks = 0
	g.observe(g.board.StepDown)
}

// observe runs a board operation that may lock a piece and turns its outcome
// into events.
func (g *Game) observe(op func() (bool, tetris.ClearRowResult)) {
	levelBefore := g.board.Score().Level()

	landed, cleared := op()
	if !landed {
		return
	}

	g.fallTicks = 0
	g.emit(core.EventPieceLocked, 0)

	if n := cleared.LinesRemoved; n > 0 {
		g.emit(core.EventLinesCleared, n)
		g.flash = clearBanner(n)
		g.flashTicks = flashDuration
	}
	if level := g.board.Score().Level(); level > levelBefore {
		g.emit(core.EventLevelUp, level)
	}
	if g.board.GameOver() {
		g.emit(core.EventGameOver, g.board.Score().Score())
	}
}

func (g *Game) emit(kind core.EventKind, value int) {
	g.events = append(g.events, core.Event{Kind: kind, Value: value})
}

func (g *Game) result() core.StepResult {
	var events []core.Event
	if len(g.events) > 0 {
		events = append(events, g.events...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// clearBanner names a multi-line clear.
func clearBanner(n int) string {
	switch n {
	case 1:
		return "SINGLE"
	case 2:
		return "DOUBLE"
	case 3:
		return "TRIPLE"
	default:
		return "TETRIS!"
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{Level: 1}
	}
	score := g.board.Score()
	return core.GameState{
		Score:    score.Score(),
		Level:    score.Level(),
		Lines:    score.Rows(),
		GameOver: g.board.GameOver(),
		Paused:   g.paused,
	}
}

// Final returns the result of the current game credited to player.
func (g *Game) Final(player string) tetris.FinalScore {
	if g.board == nil {
		return tetris.FinalScore{Level: 1, PlayerName: player}
	}
	return g.board.Final(player)
}

// View returns the engine snapshot for the current game.
func (g *Game) View() tetris.View {
	if g.board == nil {
		return tetris.View{}
	}
	return g.board.View()
}
