package blocks

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

const (
	cellWidth  = 4 // Horizontal pitch of a board cell, including one grid line
	cellHeight = 2 // Vertical pitch of a board cell, including one grid line

	boardW = BoardSize*cellWidth + 1
	boardH = BoardSize*cellHeight + 1

	trayGap   = 3
	trayW     = 12
	slotH     = 5 // Label row plus the tallest piece
	hudHeight = 3

	minScreenW = boardW + trayGap + trayW + 2
	minScreenH = hudHeight + boardH + 2
)

var coreColors = map[Color]core.Color{
	Red:    core.ColorRed,
	Blue:   core.ColorBlue,
	Green:  core.ColorGreen,
	Yellow: core.ColorYellow,
	Purple: core.ColorPurple,
	Orange: core.ColorOrange,
	Cyan:   core.ColorCyan,
}

func toCoreColor(c Color) core.Color {
	if cc, ok := coreColors[c]; ok {
		return cc
	}
	return core.ColorDefault
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		return
	}

	boardX := max((g.screenW-(boardW+trayGap+trayW))/2, 0)
	boardY := hudHeight

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	g.renderGhost(dst, boardX, boardY)
	g.renderTray(dst, boardX+boardW+trayGap, boardY)
	g.renderOverlays(dst, boardX, boardY)

	dst.DrawTextCentered(boardY+boardH+1, g.Controls(), core.ColorGray)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := "BLOCK PUZZLE"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightWhite)

	s := g.session
	dst.DrawText(boardX, 1, "Score: "+strconv.Itoa(s.Score()))

	best := "Best: " + strconv.Itoa(s.HighScore())
	dst.DrawTextColored(boardX+boardW-len(best), 1, best, core.ColorYellow)

	if s.Streak() > 1 {
		streak := fmt.Sprintf("Streak x%d", s.Streak())
		dst.DrawTextColored(boardX+(boardW-len(streak))/2, 1, streak, core.ColorBrightMagenta)
	}
}

func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	if g.showGrid {
		drawGrid(dst, boardX, boardY, core.ColorDim)
	} else {
		dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), core.ColorDim)
	}

	board := g.session.Board()
	for row := range BoardSize {
		for col := range BoardSize {
			x, y := cellOrigin(boardX, boardY, row, col)
			if c := board[row][col]; c != Empty {
				fillCell(dst, x, y, '█', toCoreColor(c))
				continue
			}
			if !g.showGrid {
				dst.SetColored(x+1, y, '·', core.ColorDim)
			}
		}
	}

	for _, off := range g.flash {
		x, y := cellOrigin(boardX, boardY, off.Row, off.Col)
		fillCell(dst, x, y, '░', core.ColorBrightWhite)
	}
}

// renderGhost previews the selected piece at the cursor.
func (g *Game) renderGhost(dst *core.Screen, boardX, boardY int) {
	if g.session.GameOver() || g.paused {
		return
	}
	p, ok := g.selectedPiece()
	if !ok {
		return
	}
	color := toCoreColor(p.Color)
	if !CanPlace(g.session.Board(), p, g.cursorRow, g.cursorCol) {
		color = core.ColorBrightRed
	}
	for _, off := range p.Blocks {
		r, c := g.cursorRow+off.Row, g.cursorCol+off.Col
		if !InBounds(r, c) {
			continue
		}
		x, y := cellOrigin(boardX, boardY, r, c)
		fillCell(dst, x, y, '▒', color)
	}
}

func (g *Game) renderTray(dst *core.Screen, trayX, trayY int) {
	for i, p := range g.session.pieces {
		y := trayY + i*(slotH+1)

		label := "  " + strconv.Itoa(i+1)
		labelColor := core.ColorGray
		if i == g.selected {
			label = "> " + strconv.Itoa(i+1)
			labelColor = core.ColorBrightWhite
		}
		if !CanPlaceAnywhere(g.session.Board(), p) {
			label += " (no fit)"
		}
		dst.DrawTextColored(trayX, y, label, labelColor)

		color := toCoreColor(p.Color)
		for _, off := range p.Blocks {
			x := trayX + 2 + off.Col*2
			dst.SetColored(x, y+1+off.Row, '█', color)
			dst.SetColored(x+1, y+1+off.Row, '█', color)
		}
	}
}

func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	centerX, centerY := core.NewRect(boardX, boardY, boardW, boardH).Center()

	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.session.GameOver():
		drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			"Score: "+strconv.Itoa(g.session.Score()),
			"Press R to restart")
	case len(g.banner) > 0:
		drawOverlay(dst, centerX, centerY, g.banner...)
	}
}

// cellOrigin returns the top-left interior position of a board cell.
func cellOrigin(boardX, boardY, row, col int) (int, int) {
	return boardX + col*cellWidth + 1, boardY + row*cellHeight + 1
}

func fillCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellWidth - 1 {
		dst.SetColored(x+i, y, r, c)
	}
}

// drawGrid draws the board lines with box-drawing junctions.
func drawGrid(dst *core.Screen, boardX, boardY int, c core.Color) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == BoardSize:
				corner = '┐'
			case y == BoardSize && x == 0:
				corner = '└'
			case y == BoardSize && x == BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, c)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', c)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', c)
				}
			}
		}
	}
}

// drawOverlay draws a boxed block of centered lines.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	w, h := maxLen+4, len(lines)+2
	box := core.NewRect(centerX-w/2, centerY-h/2, w, h)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows move  Tab/1-3 piece  Enter place  G grid  R new  P pause  Q quit"
}
