package tetris

import (
	"errors"
	"fmt"
)

// RowsPerLevel is the number of cleared rows needed to advance one level.
const RowsPerLevel = 5

// ErrNegativeScore is raised when a negative amount reaches the tracker.
var ErrNegativeScore = errors.New("tetris: negative score delta")

// ScoreTracker keeps score, level and cleared-row totals.
// The zero value is not ready; use NewScoreTracker or Reset.
type ScoreTracker struct {
	score int
	rows  int
	level int
}

// NewScoreTracker returns a tracker at level 1 with nothing scored.
func NewScoreTracker() *ScoreTracker {
	s := &ScoreTracker{}
	s.Reset()
	return s
}

// Add credits points to the score.
func (s *ScoreTracker) Add(points int) {
	if points < 0 {
		panic(fmt.Errorf("add %d points: %w", points, ErrNegativeScore))
	}
	s.score += points
}

// AddClearedRows records n cleared rows and recomputes the level.
func (s *ScoreTracker) AddClearedRows(n int) {
	if n < 0 {
		panic(fmt.Errorf("add %d rows: %w", n, ErrNegativeScore))
	}
	s.rows += n
	s.level = s.rows/RowsPerLevel + 1
}

// Apply credits a line-clear result.
func (s *ScoreTracker) Apply(res ClearRowResult) {
	s.Add(res.ScoreBonus)
	s.AddClearedRows(res.LinesRemoved)
}

// Reset returns the tracker to a new-game state.
func (s *ScoreTracker) Reset() {
	s.score = 0
	s.rows = 0
	s.level = 1
}

// Score returns the accumulated points.
func (s *ScoreTracker) Score() int { return s.score }

// Level returns the current level, starting at 1.
func (s *ScoreTracker) Level() int { return s.level }

// Rows returns the total cleared rows.
func (s *ScoreTracker) Rows() int { return s.rows }
