package blockfall

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 60,
		Seed:     seed,
	}
}

func newGame(t *testing.T, mode Mode, mutate func(*config.BlockfallConfig)) *Game {
	t.Helper()
	cfg := config.DefaultBlockfallConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())
	g := NewWithConfig(mode, cfg)
	g.Reset(testRuntime(42))
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func hasEvent(res core.StepResult, kind core.EventKind) bool {
	for _, e := range res.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestModesRegistered(t *testing.T) {
	for _, m := range Modes() {
		require.True(t, registry.Exists(m.ID), m.ID)
		g, err := registry.Create(m.ID)
		require.NoError(t, err)
		assert.Equal(t, m.Title, g.Title())
	}
}

func TestDeterminism(t *testing.T) {
	script := func(i int) core.InputFrame {
		switch {
		case i%40 == 0:
			return frame(core.ActionHardDrop)
		case i%7 == 0:
			return frame(core.ActionLeft)
		case i%11 == 0:
			return frame(core.ActionRotate, core.ActionRight)
		case i%97 == 0:
			return frame(core.ActionHold)
		}
		return frame()
	}

	run := func() Snapshot {
		g := newGame(t, Marathon, nil)
		for i := range 2000 {
			if g.Step(script(i)).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestGravityFollowsCurve(t *testing.T) {
	g := newGame(t, Classic, nil)
	_, _, y0 := g.board.Active()

	ticks := g.curve.TicksPerRow(1, false)
	for range ticks - 1 {
		g.Step(frame())
	}
	_, _, y := g.board.Active()
	assert.Equal(t, y0, y, "piece holds until the interval elapses")

	g.Step(frame())
	_, _, y = g.board.Active()
	assert.Equal(t, y0+1, y)
	assert.Zero(t, g.Snapshot().FallTicks)
}

func TestSlowPieceFallsSlower(t *testing.T) {
	g := newGame(t, Marathon, nil)
	normal := g.curve.TicksPerRow(1, false)
	slow := g.curve.TicksPerRow(1, true)
	require.Greater(t, slow, normal)

	// Force a SLOW piece into play.
	g.board = tetris.NewBoard(tetris.NewQueue(1, tetris.QueueOptions{
		SlowPieces:   true,
		SlowChance:   1,
		SlowMinLevel: 1,
	}))
	g.board.NewGame()
	kind, _, y0 := g.board.Active()
	require.Equal(t, tetris.KindSlow, kind)

	for range normal {
		g.Step(frame())
	}
	_, _, y := g.board.Active()
	assert.Equal(t, y0, y, "normal interval is not enough for a SLOW piece")

	for range slow - normal {
		g.Step(frame())
	}
	_, _, y = g.board.Active()
	assert.Equal(t, y0+1, y)
}

func TestSoftDropResetsGravity(t *testing.T) {
	g := newGame(t, Classic, nil)
	_, _, y0 := g.board.Active()

	for range 10 {
		g.Step(frame())
	}
	g.Step(frame(core.ActionDown))
	_, _, y := g.board.Active()
	assert.Equal(t, y0+1, y)
	assert.Equal(t, 1, g.Snapshot().FallTicks, "counter restarts on soft drop")
}

func TestHardDropEmitsLock(t *testing.T) {
	g := newGame(t, Classic, nil)

	res := g.Step(frame(core.ActionHardDrop))
	assert.True(t, hasEvent(res, core.EventPieceLocked))
	assert.False(t, hasEvent(res, core.EventLinesCleared))
	assert.Zero(t, res.State.Score)

	res = g.Step(frame())
	assert.Empty(t, res.Events, "events are per step")
}

func TestMovesApplyInOrder(t *testing.T) {
	g := newGame(t, Classic, nil)
	_, x0, _ := g.board.Active()

	g.Step(frame(core.ActionLeft, core.ActionLeft, core.ActionRight))
	_, x, _ := g.board.Active()
	assert.Equal(t, x0-1, x)
}

func TestHoldEvent(t *testing.T) {
	g := newGame(t, Classic, nil)
	first, _, _ := g.board.Active()

	res := g.Step(frame(core.ActionHold))
	require.True(t, hasEvent(res, core.EventHold))
	assert.Equal(t, first, g.board.Held())

	res = g.Step(frame(core.ActionHold))
	assert.False(t, hasEvent(res, core.EventHold), "hold is once per spawn")
}

func TestPauseFreezesGame(t *testing.T) {
	g := newGame(t, Classic, nil)

	res := g.Step(frame(core.ActionPause))
	require.True(t, res.State.Paused)
	before := g.Snapshot()

	for range 200 {
		g.Step(frame(core.ActionLeft, core.ActionHardDrop))
	}
	assert.Equal(t, before, g.Snapshot(), "nothing moves while paused")

	res = g.Step(frame(core.ActionPause))
	assert.False(t, res.State.Paused)
	assert.Equal(t, before.Tick+1, g.Snapshot().Tick)
}

func TestGameOverIsTerminal(t *testing.T) {
	g := newGame(t, Classic, nil)

	var over core.StepResult
	for range 200 {
		over = g.Step(frame(core.ActionHardDrop))
		if over.State.GameOver {
			break
		}
	}
	require.True(t, over.State.GameOver)
	assert.True(t, hasEvent(over, core.EventGameOver))

	snap := g.Snapshot()
	assert.Equal(t, "game_over", snap.Phase)
	res := g.Step(frame(core.ActionLeft, core.ActionHardDrop, core.ActionPause))
	assert.Empty(t, res.Events)
	assert.Equal(t, snap, g.Snapshot())

	final := g.Final("ada")
	assert.Equal(t, "ada", final.PlayerName)
	assert.Equal(t, over.State.Score, final.Score)
}

func TestResetStartsFresh(t *testing.T) {
	g := newGame(t, Classic, nil)
	for range 5 {
		g.Step(frame(core.ActionHardDrop))
	}
	g.Reset(testRuntime(7))

	snap := g.Snapshot()
	assert.Zero(t, snap.Tick)
	assert.Zero(t, snap.Score)
	assert.Equal(t, tetris.KindNone, snap.Held)
	assert.Equal(t, "falling", snap.Phase)
}

func TestTooSmallPausesSimulation(t *testing.T) {
	g := newGame(t, Classic, nil)
	g.Resize(30, 10)

	before := g.Snapshot()
	g.Step(frame(core.ActionHardDrop))
	assert.Equal(t, before.Tick, g.Snapshot().Tick)

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "too small")

	g.Resize(80, 30)
	g.Step(frame())
	assert.Equal(t, before.Tick+1, g.Snapshot().Tick, "resize does not restart the game")
}

func TestPreviewDepthFromConfig(t *testing.T) {
	g := newGame(t, Classic, func(c *config.BlockfallConfig) { c.Queue.Preview = 5 })
	assert.Len(t, g.Snapshot().Preview, 5)
}

func TestRenderLayout(t *testing.T) {
	g := newGame(t, Classic, nil)
	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"HOLD", "NEXT", "SCORE", "LEVEL", "LINES", Classic.Title} {
		assert.Contains(t, out, want)
	}

	// The ghost of the freshly spawned piece rests on the floor row.
	lines := strings.Split(out, "\n")
	floor := (30-boardH)/2 + boardH - 2
	assert.Contains(t, lines[floor], string(GhostChar))
}

func TestRenderOverlays(t *testing.T) {
	g := newGame(t, Classic, nil)
	screen := core.NewScreen(80, 30)

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")

	g.Step(frame(core.ActionPause))
	for range 200 {
		if g.Step(frame(core.ActionHardDrop)).State.GameOver {
			break
		}
	}
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
}

func TestPaletteCoversEveryKind(t *testing.T) {
	seen := map[core.Color]tetris.Kind{}
	for _, k := range tetris.Kinds {
		c := ColorFor(k.Cell())
		assert.NotEqual(t, core.ColorDefault, c, k.String())
		if other, dup := seen[c]; dup {
			t.Errorf("%s and %s share a colour", k, other)
		}
		seen[c] = k
	}
	assert.Equal(t, core.ColorDefault, ColorFor(tetris.Cell(200)))
}

func TestConfigure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Cleanup(func() { _ = SetConfig(config.DefaultBlockfallConfig()) })

	cfg, err := Configure("", config.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Difficulty.StartSpeed)
	assert.Equal(t, cfg, CurrentConfig())

	bad := config.DefaultBlockfallConfig()
	bad.Queue.Preview = 1
	assert.ErrorIs(t, SetConfig(bad), config.ErrInvalidConfig)
	assert.Equal(t, cfg, CurrentConfig(), "invalid config is not installed")
}
