package tetris

// PreviewCount is the default number of upcoming pieces shown to the player.
const PreviewCount = 3

// Piece pairs a kind with one of its orientations.
type Piece struct {
	Kind  Kind
	Shape Shape
}

// View is a read-only snapshot of everything a renderer needs. All slices are
// fresh copies owned by the caller.
type View struct {
	Grid    Grid
	Phase   Phase
	Active  Piece
	X, Y    int
	GhostY  int
	Preview []Piece
	Held    *Piece
	CanHold bool

	Score int
	Level int
	Rows  int
}

// GameOver reports whether the snapshot was taken after the game ended.
func (v View) GameOver() bool {
	return v.Phase == PhaseGameOver
}

// View snapshots the board.
func (b *Board) View() View {
	v := View{
		Grid:    b.grid.Clone(),
		Phase:   b.phase,
		CanHold: b.HoldAvailable(),
		Score:   b.score.Score(),
		Level:   b.score.Level(),
		Rows:    b.score.Rows(),
	}

	if b.active != KindNone {
		shape := b.rot.Current()
		v.Active = Piece{Kind: b.active, Shape: shape}
		v.X, v.Y = b.x, b.y
		v.GhostY = b.y
		if !b.GameOver() {
			v.GhostY = b.GhostY(b.x, shape, b.y)
		}
	}

	for _, k := range b.queue.Peek(b.queue.Len()) {
		v.Preview = append(v.Preview, Piece{Kind: k, Shape: SpawnShape(k)})
	}

	if b.held != KindNone {
		v.Held = &Piece{Kind: b.held, Shape: SpawnShape(b.held)}
	}

	return v
}

// FinalScore is the tuple handed to persistence when a game ends.
type FinalScore struct {
	Score      int
	Level      int
	Rows       int
	PlayerName string
}

// Final returns the board's result credited to player.
func (b *Board) Final(player string) FinalScore {
	return FinalScore{
		Score:      b.score.Score(),
		Level:      b.score.Level(),
		Rows:       b.score.Rows(),
		PlayerName: player,
	}
}
