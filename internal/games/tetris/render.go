package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Layout constants in screen columns/rows.
const (
	cellW      = 2  // Each board cell is two columns wide
	panelW     = 12 // Side panel (hold, next, stats) width
	panelGap   = 2
	previewH   = 6 // Preview box height including border
	titleRows  = 1
	statsLines = 12
)

// layout is the screen placement of every part of the playfield.
type layout struct {
	board core.Rect
	hold  core.Rect
	next  core.Rect
	stats core.Rect
	title int
}

// requiredSize returns the minimum screen size for the configured board.
func (g *Game) requiredSize() (int, int) {
	boardW := g.cfg.Board.Width*cellW + 2
	boardH := g.cfg.Board.Height + 2
	w := panelW + panelGap + boardW + panelGap + panelW
	h := titleRows + max(boardH, previewH+1+statsLines)
	return w, h
}

func (g *Game) tooSmall() bool {
	w, h := g.requiredSize()
	return g.screenW < w || g.screenH < h
}

func (g *Game) layout() layout {
	w, h := g.requiredSize()
	ox := max(0, (g.screenW-w)/2)
	oy := max(0, (g.screenH-h)/2)

	boardX := ox + panelW + panelGap
	boardW := g.cfg.Board.Width*cellW + 2
	nextX := boardX + boardW + panelGap

	return layout{
		title: oy,
		board: core.NewRect(boardX, oy+titleRows, boardW, g.cfg.Board.Height+2),
		hold:  core.NewRect(ox, oy+titleRows, panelW, previewH),
		next:  core.NewRect(nextX, oy+titleRows, panelW, previewH),
		stats: core.NewRect(nextX, oy+titleRows+previewH+1, panelW, statsLines),
	}
}

// PointerArea returns the screen area used for pointer zones.
func (g *Game) PointerArea() core.Rect {
	return g.layout().board
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall() {
		w, h := g.requiredSize()
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid-1, "Window too small")
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	l := g.layout()
	e := g.engine

	title := "T E T R I S"
	dst.DrawTextColored(l.board.X+(l.board.W-len(title))/2, l.title, title, core.ColorBrightWhite)

	g.renderBoard(dst, l.board)
	g.renderPreview(dst, l.hold, "HOLD", e.Held(), !e.CanHold())
	g.renderPreview(dst, l.next, "NEXT", e.Next(), false)
	g.renderStats(dst, l.stats)

	if g.anim.popup != "" {
		dst.DrawTextColored(l.hold.X+1, l.hold.Bottom()+1, g.anim.popup, core.ColorYellow)
	}

	switch e.Status() {
	case StatusNotStarted:
		renderOverlay(dst, l.board, "TETRIS", "Press any key")
	case StatusPaused:
		renderOverlay(dst, l.board, "Paused", "P to resume")
	case StatusGameOver:
		renderOverlay(dst, l.board, "Game Over", "R to restart")
	}
}

// renderBoard draws the frame, locked cells, ghost and active piece.
func (g *Game) renderBoard(dst *core.Screen, r core.Rect) {
	e := g.engine
	b := e.Board()
	dst.DrawBoxColored(r, core.ColorGray)

	clearing := make(map[int]bool, len(e.Clearing()))
	for _, row := range e.Clearing() {
		clearing[row] = true
	}

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			sx, sy := r.X+1+x*cellW, r.Y+1+y
			p := b.At(x, y)
			switch {
			case clearing[y]:
				if g.anim.blinkOn() {
					drawCell(dst, sx, sy, '█', core.ColorBrightWhite)
				}
			case p == Empty:
				dst.SetColored(sx+1, sy, '·', core.ColorGray)
			case g.anim.flashing(Point{X: x, Y: y}):
				drawCell(dst, sx, sy, '█', core.ColorBrightWhite)
			default:
				drawCell(dst, sx, sy, '█', p.Color())
			}
		}
	}

	a, ok := e.Active()
	if !ok {
		return
	}
	if ghostY, ok := e.GhostY(); ok && ghostY != a.Y {
		for _, c := range a.Shape.Cells(a.X, ghostY) {
			if c.Y >= 0 && b.At(c.X, c.Y) == Empty {
				drawCell(dst, r.X+1+c.X*cellW, r.Y+1+c.Y, '░', core.ColorGray)
			}
		}
	}
	for _, c := range a.Cells() {
		if c.Y < 0 {
			continue
		}
		drawCell(dst, r.X+1+c.X*cellW, r.Y+1+c.Y, '█', a.Type.Color())
	}
}

// renderPreview draws a labelled box with a piece centered in it.
func (g *Game) renderPreview(dst *core.Screen, r core.Rect, label string, p PieceType, dim bool) {
	dst.DrawBoxColored(r, core.ColorGray)
	dst.DrawText(r.X+2, r.Y, label)
	if !p.Valid() {
		return
	}

	color := p.Color()
	if dim {
		color = core.ColorGray
	}
	shape := p.Shape()
	px := r.X + 1 + (r.W-2-shape.Width()*cellW)/2
	py := r.Y + 1 + (r.H-2-shape.Height())/2
	for _, c := range shape.Cells(0, 0) {
		drawCell(dst, px+c.X*cellW, py+c.Y, '█', color)
	}
}

// renderStats draws the score column.
func (g *Game) renderStats(dst *core.Screen, r core.Rect) {
	e := g.engine
	best := max(g.highScore, e.Score())
	lines := []struct {
		label string
		value string
	}{
		{"SCORE", fmt.Sprintf("%d", e.Score())},
		{"BEST", fmt.Sprintf("%d", best)},
		{"LINES", fmt.Sprintf("%d", e.Lines())},
		{"LEVEL", fmt.Sprintf("%d", e.Level())},
		{"SPEED", fmt.Sprintf("%dms", e.DropInterval().Milliseconds())},
	}
	y := r.Y
	for _, l := range lines {
		dst.DrawTextColored(r.X, y, l.label, core.ColorGray)
		dst.DrawTextColored(r.X, y+1, l.value, core.ColorBrightWhite)
		y += 2
	}
}

func drawCell(dst *core.Screen, x, y int, ch rune, c core.Color) {
	dst.SetColored(x, y, ch, c)
	dst.SetColored(x+1, y, ch, c)
}

// renderOverlay draws a centered message box inside area.
func renderOverlay(dst *core.Screen, area core.Rect, line1, line2 string) {
	textW := max(len(line1), len(line2))
	box := core.NewRect(0, 0, min(textW+4, area.W), 5)
	box.X = area.X + (area.W-box.W)/2
	box.Y = area.Y + (area.H-box.H)/2

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(box.W-len(line1))/2, box.Y+1, line1)
	dst.DrawText(box.X+(box.W-len(line2))/2, box.Y+3, line2)
}
