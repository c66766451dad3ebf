package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Layout constants. Each grid cell is drawn two characters wide.
const (
	cellW   = 2
	boardW  = tetris.Width*cellW + 2
	boardH  = tetris.VisibleRows + 2
	sideW   = 13
	layoutW = sideW + 1 + boardW + 1 + sideW
)

// Visual characters for rendering.
const (
	BlockChar = '█'
	SlowChar  = '▓'
	GhostChar = '░'
	EmptyChar = '·'
)

// palette maps grid fill ids to colours. Index 0 is the empty cell.
var palette = [...]core.Color{
	tetris.Empty:                 core.ColorDefault,
	tetris.Cell(tetris.KindI):    core.ColorCyan,
	tetris.Cell(tetris.KindJ):    core.ColorBlue,
	tetris.Cell(tetris.KindL):    core.ColorOrange,
	tetris.Cell(tetris.KindO):    core.ColorYellow,
	tetris.Cell(tetris.KindS):    core.ColorGreen,
	tetris.Cell(tetris.KindT):    core.ColorMagenta,
	tetris.Cell(tetris.KindZ):    core.ColorRed,
	tetris.Cell(tetris.KindSlow): core.ColorBrightWhite,
}

// ColorFor returns the display colour of a grid fill id.
func ColorFor(c tetris.Cell) core.Color {
	if int(c) >= len(palette) {
		return core.ColorDefault
	}
	return palette[c]
}

func blockRune(c tetris.Cell) rune {
	if c == tetris.KindSlow.Cell() {
		return SlowChar
	}
	return BlockChar
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.board == nil {
		g.renderOverlay(dst, "Terminal too small",
			fmt.Sprintf("Need %dx%d, have %dx%d", MinScreenW, MinScreenH, dst.Width(), dst.Height()))
		return
	}

	v := g.board.View()
	ox := max(0, (dst.Width()-layoutW)/2)
	oy := max(0, (dst.Height()-boardH)/2)
	bx := ox + sideW + 1

	g.renderHold(dst, ox, oy, v)
	g.renderStats(dst, ox, oy+7, v)
	g.renderBoard(dst, bx, oy, v)
	g.renderPreview(dst, bx+boardW+1, oy, v)

	switch {
	case v.GameOver():
		g.renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score %d  Level %d  Lines %d", v.Score, v.Level, v.Rows))
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "Press P to continue")
	}
}

// renderBoard draws the visible rows of the playfield with the ghost and the
// active piece on top.
func (g *Game) renderBoard(dst *core.Screen, x, y int, v tetris.View) {
	dst.DrawBox(core.NewRect(x, y, boardW, boardH), core.ColorGray)

	for row := tetris.HiddenRows; row < tetris.Height; row++ {
		sy := y + 1 + row - tetris.HiddenRows
		for col := 0; col < tetris.Width; col++ {
			sx := x + 1 + col*cellW
			c := v.Grid[row][col]
			if c == tetris.Empty {
				dst.SetColored(sx+1, sy, EmptyChar, core.ColorDim)
				continue
			}
			drawCell(dst, sx, sy, blockRune(c), ColorFor(c))
		}
	}

	if v.Active.Kind == tetris.KindNone || v.GameOver() {
		return
	}

	color := ColorFor(v.Active.Kind.Cell())
	if v.GhostY != v.Y {
		eachBlock(v.Active.Shape, func(r, c int) {
			plotOnBoard(dst, x, y, v.X+c, v.GhostY+r, GhostChar, core.ColorGray)
		})
	}
	eachBlock(v.Active.Shape, func(r, c int) {
		plotOnBoard(dst, x, y, v.X+c, v.Y+r, blockRune(v.Active.Kind.Cell()), color)
	})
}

// plotOnBoard draws one grid cell, skipping the hidden spawn rows.
func plotOnBoard(dst *core.Screen, bx, by, col, row int, r rune, c core.Color) {
	if row < tetris.HiddenRows {
		return
	}
	drawCell(dst, bx+1+col*cellW, by+1+row-tetris.HiddenRows, r, c)
}

func drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellW {
		dst.SetColored(x+i, y, r, c)
	}
}

// eachBlock calls fn for every filled cell of s.
func eachBlock(s tetris.Shape, fn func(r, c int)) {
	for r := range tetris.ShapeSize {
		for c := range tetris.ShapeSize {
			if s[r][c] != tetris.Empty {
				fn(r, c)
			}
		}
	}
}

// drawMini draws a piece trimmed to its bounding box at (x, y).
func drawMini(dst *core.Screen, x, y int, p tetris.Piece, c core.Color) {
	minR, minC := tetris.ShapeSize, tetris.ShapeSize
	eachBlock(p.Shape, func(r, col int) {
		minR = min(minR, r)
		minC = min(minC, col)
	})
	eachBlock(p.Shape, func(r, col int) {
		drawCell(dst, x+(col-minC)*cellW, y+r-minR, blockRune(p.Kind.Cell()), c)
	})
}

func (g *Game) renderHold(dst *core.Screen, x, y int, v tetris.View) {
	dst.DrawBox(core.NewRect(x, y, sideW, 6), core.ColorGray)
	dst.DrawTextColored(x+2, y, " HOLD ", core.ColorWhite)

	if v.Held == nil {
		return
	}
	c := ColorFor(v.Held.Kind.Cell())
	if !v.CanHold {
		c = core.ColorDim
	}
	drawMini(dst, x+2, y+2, *v.Held, c)
}

func (g *Game) renderStats(dst *core.Screen, x, y int, v tetris.View) {
	lines := []struct {
		label string
		value int
	}{
		{"SCORE", v.Score},
		{"LEVEL", v.Level},
		{"LINES", v.Rows},
		{"SPEED", g.curve.SpeedLevel(v.Level)},
	}
	for i, l := range lines {
		dst.DrawTextColored(x+1, y+i*2, l.label, core.ColorGray)
		dst.DrawTextColored(x+1, y+i*2+1, fmt.Sprintf("%d", l.value), core.ColorBrightWhite)
	}

	if g.flashTicks > 0 && g.flash != "" {
		dst.DrawTextColored(x+1, y+len(lines)*2+1, g.flash, core.ColorYellow)
	}
}

func (g *Game) renderPreview(dst *core.Screen, x, y int, v tetris.View) {
	shown := min(len(v.Preview), (boardH-2)/3)
	dst.DrawBox(core.NewRect(x, y, sideW, shown*3+1), core.ColorGray)
	dst.DrawTextColored(x+2, y, " NEXT ", core.ColorWhite)

	for i, p := range v.Preview[:shown] {
		drawMini(dst, x+2, y+1+i*3, p, ColorFor(p.Kind.Cell()))
	}

	modeY := y + shown*3 + 2
	dst.DrawTextColored(x+1, modeY, g.mode.Title, core.ColorGray)
	if v.Active.Kind == tetris.KindSlow {
		dst.DrawTextColored(x+1, modeY+1, "SLOW piece", core.ColorBrightWhite)
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
