package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBoard returns a board whose queue yields the given kinds first.
func newTestBoard(t *testing.T, kinds ...Kind) *Board {
	t.Helper()
	q := NewQueue(1, classicOptions())
	q.buffer = append([]Kind(nil), kinds...)
	q.fill()
	return NewBoard(q)
}

// activeCells returns the absolute grid coordinates of the active piece.
func activeCells(b *Board) [][2]int {
	var cells [][2]int
	s := b.Shape()
	for r := range ShapeSize {
		for c := range ShapeSize {
			if s[r][c] != Empty {
				cells = append(cells, [2]int{b.x + c, b.y + r})
			}
		}
	}
	return cells
}

func TestSpawnIPieceOnEmptyGrid(t *testing.T) {
	b := newTestBoard(t, KindI, KindO, KindT)

	require.False(t, b.Spawn(), "spawn on an empty grid is not game over")
	assert.Equal(t, PhaseFalling, b.Phase())

	kind, x, y := b.Active()
	assert.Equal(t, KindI, kind)
	assert.Equal(t, SpawnX, x)
	assert.Equal(t, SpawnY, y)

	s := b.Shape()
	for c := range ShapeSize {
		assert.NotEqual(t, Empty, s[1][c], "local row 1")
	}
	assert.Equal(t, [][2]int{{4, 3}, {5, 3}, {6, 3}, {7, 3}}, activeCells(b), "columns 4-7")
}

func TestLockAndClearOPiece(t *testing.T) {
	b := newTestBoard(t, KindO, KindT, KindT)
	require.False(t, b.Spawn())

	// Bottom row full except the two columns the O piece drops into.
	fillRow(b.grid, 24, 4, 5)
	b.x, b.y = 4, 23
	require.False(t, Intersect(b.grid, b.Shape(), b.x, b.y))

	b.LockActivePiece()
	assert.Equal(t, PhaseLocking, b.Phase())

	res := b.ClearLines()
	assert.Equal(t, PhaseClearing, b.Phase())
	assert.Equal(t, 1, res.LinesRemoved)
	assert.Equal(t, 50, res.ScoreBonus)
	assert.Equal(t, []int{24}, res.ClearedRows)

	// The top half of the O is all that is left, now on the floor.
	assert.Equal(t, Cell(KindO), b.grid[24][4])
	assert.Equal(t, Cell(KindO), b.grid[24][5])
	assert.Equal(t, Empty, b.grid[24][0])
	assert.Zero(t, b.Score().Score(), "ClearLines leaves scoring to the caller")
}

func TestMovementStopsAtWalls(t *testing.T) {
	b := newTestBoard(t, KindI, KindO, KindT)
	require.False(t, b.Spawn())

	for i := range SpawnX {
		assert.True(t, b.MoveLeft(), "step %d", i)
	}
	assert.False(t, b.MoveLeft(), "against the left wall")
	_, x, _ := b.Active()
	assert.Equal(t, 0, x)

	for i := range Width - 4 {
		assert.True(t, b.MoveRight(), "step %d", i)
	}
	assert.False(t, b.MoveRight(), "against the right wall")
}

func TestMoveDownLandsWithoutLocking(t *testing.T) {
	b := newTestBoard(t, KindO, KindT, KindT)
	require.False(t, b.Spawn())

	falls := 0
	for b.MoveDown() {
		falls++
	}
	assert.Equal(t, Height-2-SpawnY, falls)
	assert.Equal(t, PhaseFalling, b.Phase(), "landing does not lock")
	assert.Equal(t, NewGrid(Width, Height), b.Grid(), "grid untouched until lock")
}

func TestRotateCyclesBack(t *testing.T) {
	for _, k := range Kinds {
		b := newTestBoard(t, k, KindO, KindO)
		require.False(t, b.Spawn())
		require.True(t, b.MoveDown())
		require.True(t, b.MoveDown())

		start := b.Shape()
		for i := range RotationCount(k) {
			assert.True(t, b.Rotate(), "%s rotation %d", k, i)
		}
		assert.Equal(t, start, b.Shape(), k.String())
	}
}

func TestRotateBlockedHasNoKick(t *testing.T) {
	b := newTestBoard(t, KindI, KindO, KindO)
	require.False(t, b.Spawn())

	// Vertical I uses local column 2 from rows 0-3; block the cell it needs.
	b.grid[SpawnY][SpawnX+2] = Cell(KindZ)

	before := b.Shape()
	assert.False(t, b.Rotate())
	assert.Equal(t, before, b.Shape())
	assert.Equal(t, 0, b.rot.Index())
}

func TestHoldOncePerSpawn(t *testing.T) {
	b := newTestBoard(t, KindT, KindS, KindZ, KindL)
	require.False(t, b.Spawn())

	require.True(t, b.Hold())
	kind, _, _ := b.Active()
	assert.Equal(t, KindS, kind, "empty hold draws from the queue")
	assert.Equal(t, KindT, b.Held())

	assert.False(t, b.Hold(), "second hold before lock is rejected")
	kind, _, _ = b.Active()
	assert.Equal(t, KindS, kind)
	assert.Equal(t, KindT, b.Held())
}

func TestHoldSwapDoesNotConsumeQueue(t *testing.T) {
	b := newTestBoard(t, KindT, KindS, KindZ, KindL, KindJ)
	require.False(t, b.Spawn())
	require.True(t, b.Hold()) // hold T, play S

	b.HardDrop() // lock S, spawn Z
	kind, _, _ := b.Active()
	require.Equal(t, KindZ, kind)

	upcoming := b.queue.Peek(3)
	require.True(t, b.Hold())

	kind, x, y := b.Active()
	assert.Equal(t, KindT, kind, "held piece comes back")
	assert.Equal(t, KindZ, b.Held())
	assert.Equal(t, SpawnX, x)
	assert.Equal(t, SpawnY, y)
	assert.Equal(t, upcoming, b.queue.Peek(3))
	assert.False(t, b.HoldAvailable())
}

func TestHoldReopensAfterLock(t *testing.T) {
	b := newTestBoard(t, KindT, KindS, KindZ, KindL)
	require.False(t, b.Spawn())
	require.True(t, b.Hold())
	assert.False(t, b.HoldAvailable())

	b.HardDrop()
	assert.True(t, b.HoldAvailable())
}

func TestGhostYProjects(t *testing.T) {
	b := newTestBoard(t, KindI, KindO, KindO)
	require.False(t, b.Spawn())

	before := b.String()
	kind, x, y := b.Active()
	require.Equal(t, KindI, kind)

	assert.Equal(t, Height-2, b.GhostY(x, b.Shape(), y), "I row 1 rests on the floor")
	assert.Equal(t, before, b.String(), "projection is pure")

	b.grid[20][5] = Cell(KindZ)
	assert.Equal(t, 18, b.GhostY(x, b.Shape(), y), "lands on the block")
	assert.Equal(t, 18, b.View().GhostY)
}

func TestGhostYEmptyShapeStays(t *testing.T) {
	b := newTestBoard(t, KindI, KindO, KindO)
	require.False(t, b.Spawn())

	done := make(chan int, 1)
	go func() { done <- b.GhostY(0, SpawnShape(KindNone), 3) }()

	select {
	case y := <-done:
		assert.Equal(t, 3, y)
	case <-time.After(2 * time.Second):
		t.Fatal("GhostY did not return for a shape with no blocks")
	}

	var r RotationState
	assert.Equal(t, 5, b.GhostY(2, r.Current(), 5), "unloaded rotation state has an empty shape")
}

func TestGhostYAlreadyColliding(t *testing.T) {
	b := newTestBoard(t, KindO, KindT, KindT)
	require.False(t, b.Spawn())

	b.grid[10][4] = Cell(KindZ)
	o := SpawnShape(KindO)
	assert.Equal(t, 10, b.GhostY(4, o, 10), "overlapping start is returned unchanged")
	assert.Equal(t, Height, b.GhostY(4, o, Height), "out of bounds start is returned unchanged")
}

func TestClearLinesOutsideLockIsNoop(t *testing.T) {
	b := newTestBoard(t, KindO, KindT, KindT)
	require.False(t, b.Spawn())
	fillRow(b.grid, 24)

	res := b.ClearLines()
	assert.Zero(t, res.LinesRemoved)
	assert.Empty(t, res.ClearedRows)
	assert.Equal(t, PhaseFalling, b.Phase(), "phase untouched while falling")
	assert.Equal(t, Cell(KindZ), b.grid[24][0], "full row kept until a lock")

	// The active piece is still playable and locks normally.
	assert.True(t, b.MoveLeft())
	b.LockActivePiece()
	assert.Equal(t, PhaseLocking, b.Phase())
	assert.Equal(t, 1, b.ClearLines().LinesRemoved)
}

func TestHardDrop(t *testing.T) {
	b := newTestBoard(t, KindO, KindT, KindI)
	require.False(t, b.Spawn())

	res := b.HardDrop()
	assert.Equal(t, Height-2-SpawnY, res.Distance)
	assert.False(t, res.GameOver)
	assert.Zero(t, res.Cleared.LinesRemoved)
	assert.Zero(t, b.Score().Score(), "drop distance is not scored")

	assert.Equal(t, Cell(KindO), b.grid[Height-1][SpawnX])
	assert.Equal(t, Cell(KindO), b.grid[Height-2][SpawnX+1])

	kind, _, y := b.Active()
	assert.Equal(t, KindT, kind, "next piece spawned")
	assert.Equal(t, SpawnY, y)
}

func TestHardDropScoresClears(t *testing.T) {
	b := newTestBoard(t, KindI, KindT, KindT)
	require.False(t, b.Spawn())

	fillRow(b.grid, 24, 4, 5, 6, 7)

	res := b.HardDrop()
	assert.Equal(t, 1, res.Cleared.LinesRemoved)
	assert.Equal(t, 50, b.Score().Score())
	assert.Equal(t, 1, b.Score().Rows())
}

func TestStepDownSettles(t *testing.T) {
	b := newTestBoard(t, KindO, KindT, KindI)
	require.False(t, b.Spawn())

	steps := 0
	for {
		landed, _ := b.StepDown()
		if landed {
			break
		}
		steps++
		require.Less(t, steps, Height, "piece never landed")
	}
	assert.Equal(t, Height-2-SpawnY, steps)

	kind, _, _ := b.Active()
	assert.Equal(t, KindT, kind)
	assert.Equal(t, Cell(KindO), b.grid[Height-1][SpawnX])
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	b := newTestBoard(t, KindO, KindO, KindO)
	b.grid[SpawnY][SpawnX] = Cell(KindZ)

	assert.True(t, b.Spawn())
	assert.True(t, b.GameOver())
	assert.Equal(t, PhaseGameOver, b.Phase())

	assert.False(t, b.MoveLeft())
	assert.False(t, b.MoveDown())
	assert.False(t, b.Rotate())
	assert.False(t, b.Hold())
	assert.True(t, b.HardDrop().GameOver)
	assert.True(t, b.Spawn(), "stays terminal")
	assert.True(t, b.View().GameOver())
}

func TestStackingToTheTopEndsGame(t *testing.T) {
	q := NewQueue(3, classicOptions())
	b := NewBoard(q)
	b.NewGame()

	for range 200 {
		if b.HardDrop().GameOver {
			break
		}
	}
	assert.True(t, b.GameOver(), "dropping in one column must top out")
}

func TestNewGameResets(t *testing.T) {
	b := newTestBoard(t, KindI, KindT, KindO, KindS)
	b.NewGame()
	fillRow(b.grid, 24, 4, 5, 6, 7)
	b.Hold()
	b.HardDrop()

	b.NewGame()
	assert.Equal(t, PhaseFalling, b.Phase())
	assert.Equal(t, KindNone, b.Held())
	assert.True(t, b.HoldAvailable())
	assert.Zero(t, b.Score().Score())
	assert.Equal(t, 1, b.Score().Level())
	assert.Equal(t, NewGrid(Width, Height), b.Grid())
}

func TestViewIsDefensive(t *testing.T) {
	b := newTestBoard(t, KindT, KindS, KindZ, KindL)
	require.False(t, b.Spawn())
	require.True(t, b.Hold())

	v := b.View()
	require.Len(t, v.Preview, PreviewCount)
	require.NotNil(t, v.Held)
	assert.Equal(t, KindT, v.Held.Kind)
	assert.Equal(t, KindS, v.Active.Kind)
	assert.Equal(t, KindZ, v.Preview[0].Kind)
	assert.False(t, v.CanHold)

	v.Grid[24][0] = Cell(KindI)
	v.Preview[0].Shape[0][0] = Cell(KindI)
	v.Active.Shape[1][1] = Empty

	again := b.View()
	assert.Equal(t, Empty, again.Grid[24][0])
	assert.Equal(t, SpawnShape(KindZ), again.Preview[0].Shape)
	assert.Equal(t, SpawnShape(KindS), again.Active.Shape)
}

func TestFinalScore(t *testing.T) {
	b := newTestBoard(t, KindI, KindT, KindT)
	require.False(t, b.Spawn())
	b.Score().Add(450)
	b.Score().AddClearedRows(3)

	assert.Equal(t, FinalScore{Score: 450, Level: 1, Rows: 3, PlayerName: "ada"}, b.Final("ada"))
}
