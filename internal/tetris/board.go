package tetris

// Phase is the board's position in the spawn-fall-lock-clear cycle.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseSpawning
	PhaseFalling
	PhaseLocking
	PhaseClearing
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseClearing:
		return "clearing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// SpawnX and SpawnY are the offsets every piece enters at.
const (
	SpawnX = Width/2 - 1
	SpawnY = HiddenRows
)

// Board owns the grid, the active piece, the queue and the score, and runs
// the game rules on top of them.
type Board struct {
	grid  Grid
	queue *Queue
	score *ScoreTracker
	rot   RotationState
	phase Phase

	active   Kind
	x, y     int
	held     Kind
	holdUsed bool
}

// NewBoard creates an empty board fed by q. Call NewGame to start playing.
func NewBoard(q *Queue) *Board {
	return &Board{
		grid:  NewGrid(Width, Height),
		queue: q,
		score: NewScoreTracker(),
	}
}

// NewGame clears the field, the held piece and the score, then spawns the
// first piece.
func (b *Board) NewGame() {
	b.grid = NewGrid(Width, Height)
	b.active = KindNone
	b.held = KindNone
	b.holdUsed = false
	b.score.Reset()
	b.phase = PhaseEmpty
	b.Spawn()
}

// Phase returns the current state machine phase.
func (b *Board) Phase() Phase { return b.phase }

// GameOver reports whether the board has reached its terminal phase.
func (b *Board) GameOver() bool { return b.phase == PhaseGameOver }

// Score returns the board's score tracker.
func (b *Board) Score() *ScoreTracker { return b.score }

// Active returns the active piece kind and its offset.
func (b *Board) Active() (Kind, int, int) { return b.active, b.x, b.y }

// Held returns the held piece, KindNone if nothing is held.
func (b *Board) Held() Kind { return b.held }

// HoldAvailable reports whether Hold would do something right now.
func (b *Board) HoldAvailable() bool { return !b.holdUsed && b.canAct() }

// Grid returns a copy of the locked cells.
func (b *Board) Grid() Grid { return b.grid.Clone() }

// Shape returns the active piece's current orientation.
func (b *Board) Shape() Shape { return b.rot.Current() }

func (b *Board) canAct() bool {
	return b.phase == PhaseFalling && b.active != KindNone
}

// place loads k as the active piece at the spawn offset and reports whether
// it collides there.
func (b *Board) place(k Kind) bool {
	b.active = k
	b.rot.SetPiece(k)
	b.x, b.y = SpawnX, SpawnY
	if Intersect(b.grid, b.rot.Current(), b.x, b.y) {
		b.phase = PhaseGameOver
		return true
	}
	b.phase = PhaseFalling
	return false
}

// Spawn draws the next piece and places it. It returns true when the piece
// cannot enter the field, which ends the game.
func (b *Board) Spawn() bool {
	if b.phase == PhaseGameOver {
		return true
	}
	b.phase = PhaseSpawning
	b.holdUsed = false
	return b.place(b.queue.Draw(b.score.Level()))
}

func (b *Board) shift(dx, dy int) bool {
	if !b.canAct() {
		return false
	}
	if Intersect(b.grid, b.rot.Current(), b.x+dx, b.y+dy) {
		return false
	}
	b.x += dx
	b.y += dy
	return true
}

// MoveLeft shifts the active piece one column left if the space is free.
func (b *Board) MoveLeft() bool { return b.shift(-1, 0) }

// MoveRight shifts the active piece one column right if the space is free.
func (b *Board) MoveRight() bool { return b.shift(1, 0) }

// MoveDown lowers the active piece one row. A false return means the piece
// has landed; it is not locked here.
func (b *Board) MoveDown() bool { return b.shift(0, 1) }

// Rotate advances to the next orientation in place. There is no kick search:
// a rotation blocked at the current offset fails.
func (b *Board) Rotate() bool {
	if !b.canAct() {
		return false
	}
	shape, next := b.rot.Next()
	if Intersect(b.grid, shape, b.x, b.y) {
		return false
	}
	if err := b.rot.Commit(next); err != nil {
		panic(err)
	}
	return true
}

// LockActivePiece merges the active piece into the grid and reopens hold.
func (b *Board) LockActivePiece() {
	if !b.canAct() {
		return
	}
	b.phase = PhaseLocking
	b.grid = Merge(b.grid, b.rot.Current(), b.x, b.y)
	b.active = KindNone
	b.holdUsed = false
}

// ClearLines removes full rows from the grid right after a lock. The caller
// credits the result to the score. In any other phase it changes nothing.
func (b *Board) ClearLines() ClearRowResult {
	if b.phase != PhaseLocking {
		return ClearRowResult{Grid: b.grid.Clone()}
	}
	b.phase = PhaseClearing
	res := ClearFullRows(b.grid)
	b.grid = res.Grid
	res.Grid = res.Grid.Clone()
	return res
}

// Hold stashes the active piece, or swaps it with the stashed one. It works
// once per spawn and reports whether anything happened.
func (b *Board) Hold() bool {
	if b.holdUsed || !b.canAct() {
		return false
	}
	current := b.active
	next := b.held
	if next == KindNone {
		next = b.queue.Draw(b.score.Level())
	}
	b.held = current
	b.place(next)
	b.holdUsed = true
	return true
}

// GhostY returns the lowest y the shape can fall to from (x, y) without
// colliding. A shape that already collides at y, or has no blocks, stays at y.
// The board is not modified.
func (b *Board) GhostY(x int, s Shape, y int) int {
	if s.Blocks() == 0 || Intersect(b.grid, s, x, y) {
		return y
	}
	for range b.grid.Height() {
		if Intersect(b.grid, s, x, y+1) {
			break
		}
		y++
	}
	return y
}

// settle locks the active piece, clears rows, credits them and spawns the
// next piece.
func (b *Board) settle() ClearRowResult {
	b.LockActivePiece()
	res := b.ClearLines()
	b.score.Apply(res)
	b.Spawn()
	return res
}

// StepDown is the gravity step: it lowers the piece, or settles it when it
// cannot move.
func (b *Board) StepDown() (bool, ClearRowResult) {
	if !b.canAct() {
		return false, ClearRowResult{}
	}
	if b.MoveDown() {
		return false, ClearRowResult{}
	}
	return true, b.settle()
}

// DropResult describes a hard drop.
type DropResult struct {
	Distance int
	Cleared  ClearRowResult
	GameOver bool
}

// HardDrop drops the active piece to its resting place and settles it.
// The distance is reported but not scored.
func (b *Board) HardDrop() DropResult {
	if !b.canAct() {
		return DropResult{GameOver: b.GameOver()}
	}
	dist := 0
	for b.MoveDown() {
		dist++
	}
	res := b.settle()
	return DropResult{Distance: dist, Cleared: res, GameOver: b.GameOver()}
}

// String renders the field as text, for tests and debugging.
func (b *Board) String() string {
	g := b.grid
	if b.canAct() {
		g = Merge(g, b.rot.Current(), b.x, b.y)
	}
	buf := make([]byte, 0, (Width+1)*Height)
	for _, row := range g {
		for _, c := range row {
			if c == Empty {
				buf = append(buf, '.')
			} else {
				buf = append(buf, '0'+byte(c))
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
