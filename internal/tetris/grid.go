// Package tetris implements the falling-block puzzle engine: grid collision,
// the piece catalog, the bag randomizer, rotation tracking, scoring and the
// board state machine that sequences spawn, fall, lock and clear.
//
// The engine performs no I/O and holds no locks. Callers serialize access.
package tetris

import (
	"errors"
	"fmt"
)

// Play-field dimensions.
const (
	Width       = 10
	Height      = 25
	HiddenRows  = 2
	VisibleRows = Height - HiddenRows
)

// ErrOutOfBounds is raised when a shape cell is written outside the grid.
var ErrOutOfBounds = errors.New("tetris: cell out of bounds")

// Cell is a single grid cell: 0 for empty, otherwise a piece colour id (1-8).
type Cell uint8

// Empty is the zero cell value.
const Empty Cell = 0

// Grid is a row-major play field. Row 0 is the top hidden row.
type Grid [][]Cell

// NewGrid allocates an all-empty grid of the given size.
func NewGrid(width, height int) Grid {
	g := make(Grid, height)
	for y := range g {
		g[y] = make([]Cell, width)
	}
	return g
}

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for y, row := range g {
		c[y] = append([]Cell(nil), row...)
	}
	return c
}

// At returns the cell at (x, y), or Empty when out of bounds.
func (g Grid) At(x, y int) Cell {
	if !g.inBounds(x, y) {
		return Empty
	}
	return g[y][x]
}

func (g Grid) inBounds(x, y int) bool {
	return y >= 0 && y < g.Height() && x >= 0 && x < g.Width()
}

// rowFull reports whether every column of row y is occupied.
func (g Grid) rowFull(y int) bool {
	for _, c := range g[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// Intersect reports whether shape placed with its top-left corner at (x, y)
// leaves the grid or overlaps an occupied cell. Empty shape cells are ignored.
func Intersect(g Grid, s Shape, x, y int) bool {
	for r := range ShapeSize {
		for c := range ShapeSize {
			if s[r][c] == Empty {
				continue
			}
			tx, ty := x+c, y+r
			if !g.inBounds(tx, ty) || g[ty][tx] != Empty {
				return true
			}
		}
	}
	return false
}

// Merge returns a copy of g with the filled cells of s written at (x, y).
// Callers must check Intersect first; a filled cell landing outside the grid
// panics with ErrOutOfBounds.
func Merge(g Grid, s Shape, x, y int) Grid {
	out := g.Clone()
	for r := range ShapeSize {
		for c := range ShapeSize {
			if s[r][c] == Empty {
				continue
			}
			tx, ty := x+c, y+r
			if !out.inBounds(tx, ty) {
				panic(fmt.Errorf("merge at (%d, %d): %w", tx, ty, ErrOutOfBounds))
			}
			out[ty][tx] = s[r][c]
		}
	}
	return out
}

// ClearRowResult describes the outcome of removing full rows.
type ClearRowResult struct {
	LinesRemoved int
	Grid         Grid
	ScoreBonus   int
	ClearedRows  []int // Row indices in the input grid, ascending
}

// LineBonus returns the score awarded for clearing n rows at once.
func LineBonus(n int) int {
	return 50 * n * n
}

// ClearFullRows removes every full row and compacts the remaining rows toward
// the bottom, preserving their order. Vacated rows at the top are empty.
func ClearFullRows(g Grid) ClearRowResult {
	width, height := g.Width(), g.Height()
	out := NewGrid(width, height)

	var cleared []int
	for y := range height {
		if g.rowFull(y) {
			cleared = append(cleared, y)
		}
	}

	// Copy surviving rows from the bottom up.
	dst := height - 1
	for y := height - 1; y >= 0; y-- {
		if g.rowFull(y) {
			continue
		}
		copy(out[dst], g[y])
		dst--
	}

	return ClearRowResult{
		LinesRemoved: len(cleared),
		Grid:         out,
		ScoreBonus:   LineBonus(len(cleared)),
		ClearedRows:  cleared,
	}
}
