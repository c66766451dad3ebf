package blockfall

import "github.com/vovakirdan/blockfall/internal/tetris"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Phase     string
	Score     int
	Level     int
	Rows      int
	Active    tetris.Kind
	X, Y      int
	Held      tetris.Kind
	Preview   []tetris.Kind
	FallTicks int
	Paused    bool
	TooSmall  bool
	Field     string
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Mode:      g.mode.ID,
		FallTicks: g.fallTicks,
		Paused:    g.paused,
		TooSmall:  g.tooSmall,
	}
	if g.board == nil {
		return s
	}

	v := g.board.View()
	s.Phase = v.Phase.String()
	s.Score, s.Level, s.Rows = v.Score, v.Level, v.Rows
	s.Active, s.X, s.Y = v.Active.Kind, v.X, v.Y
	s.Held = g.board.Held()
	for _, p := range v.Preview {
		s.Preview = append(s.Preview, p.Kind)
	}
	s.Field = g.board.String()
	return s
}
