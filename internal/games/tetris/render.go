package tetris

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Layout constants. Each board column is two terminal cells wide so the
// blocks come out roughly square.
const (
	cellW      = 2
	boardBoxW  = Width*cellW + 2
	boardBoxH  = Height + 2
	panelW     = 12
	panelH     = 6
	panelGap   = 1
	minScreenW = panelW + panelGap + boardBoxW + panelGap + panelW + 2
	minScreenH = boardBoxH + 1
)

// layout holds the screen origins of every panel for one frame.
type layout struct {
	board core.Rect
	hold  core.Rect
	next  core.Rect
	stats core.Rect
}

func (g *Game) layout(dst *core.Screen) layout {
	bx := (dst.Width() - boardBoxW) / 2
	by := 1 + max(0, (dst.Height()-1-boardBoxH)/2)

	return layout{
		board: core.NewRect(bx, by, boardBoxW, boardBoxH),
		hold:  core.NewRect(bx-panelGap-panelW, by, panelW, panelH),
		next:  core.NewRect(bx+boardBoxW+panelGap, by, panelW, panelH),
		stats: core.NewRect(bx+boardBoxW+panelGap, by+panelH+1, panelW+2, 7),
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		return
	}

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	l := g.layout(dst)

	g.renderHUD(dst)
	g.renderBoard(dst, l.board)
	g.renderPieces(dst, l.board)
	g.renderEffects(dst, l.board)
	g.renderHold(dst, l.hold)
	g.renderNext(dst, l.next)
	g.renderStats(dst, l.stats)
	g.renderHelp(dst, l.board)

	// Draw overlays
	switch {
	case g.engine.GameOver():
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d  -  R to restart", g.engine.Scoring().Score))
	case g.engine.Paused():
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.engine.Scoring()
	hud := fmt.Sprintf(" %s   Score: %d  Lines: %d  Level: %d", g.Title(), s.Score, s.Lines, s.Level)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
}

// plot draws one board cell as a cellW-wide block.
func plot(dst *core.Screen, board core.Rect, col, row int, glyph rune, c core.Color) {
	if row < 0 || row >= Height || col < 0 || col >= Width {
		return
	}
	x := board.X + 1 + col*cellW
	y := board.Y + 1 + row
	for i := range cellW {
		dst.SetColored(x+i, y, glyph, c)
	}
}

// renderBoard draws the frame, the empty grid and the locked cells.
// Rows being cleared alternate between white and their own colors.
func (g *Game) renderBoard(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)

	flashing := make(map[int]bool)
	for _, row := range g.engine.ClearingRows() {
		flashing[row] = true
	}
	flashOn := int(g.engine.ClearProgress()*6)%2 == 0

	board := g.engine.Board()
	for row := range Height {
		for col := range Width {
			shape := board[row][col]
			switch {
			case shape == ShapeNone:
				dst.SetColored(r.X+1+col*cellW+1, r.Y+1+row, '·', core.ColorDarkGray)
			case flashing[row] && flashOn:
				plot(dst, r, col, row, '█', core.ColorBrightWhite)
			case flashing[row]:
				plot(dst, r, col, row, '▓', shape.Color())
			default:
				plot(dst, r, col, row, '█', shape.Color())
			}
		}
	}
}

// renderPieces draws the ghost and active piece, or the landing flash
// after a hard drop.
func (g *Game) renderPieces(dst *core.Screen, r core.Rect) {
	if landed, ok := g.engine.Landed(); ok {
		for _, c := range landed.Positions() {
			plot(dst, r, c.X, c.Y, '█', core.ColorBrightWhite)
		}
		return
	}

	if g.engine.Phase() != PhaseFalling {
		return
	}

	active := g.engine.Active()
	if g.ghost {
		for _, c := range g.engine.Ghost().Positions() {
			plot(dst, r, c.X, c.Y, '░', active.Shape.Color().Dim())
		}
	}
	for _, c := range active.Positions() {
		plot(dst, r, c.X, c.Y, '█', active.Shape.Color())
	}
}

// renderEffects draws shockwave rings and particles over the board.
func (g *Game) renderEffects(dst *core.Screen, r core.Rect) {
	toScreen := func(x, y float64) (int, int) {
		return r.X + 1 + int(math.Floor(x*cellW)), r.Y + 1 + int(math.Floor(y))
	}

	for _, w := range g.fx.ShockWaves() {
		if w.Radius <= 0 {
			continue
		}
		color := w.Color
		if w.Intensity() < 0.4 {
			color = color.Dim()
		}
		steps := max(12, int(w.Radius*10))
		for i := range steps {
			a := 2 * math.Pi * float64(i) / float64(steps)
			sx, sy := toScreen(w.X+w.Radius*math.Cos(a), w.Y+w.Radius*math.Sin(a)/2)
			dst.SetColored(sx, sy, '·', color)
		}
	}

	for _, p := range g.fx.Particles() {
		sx, sy := toScreen(p.X, p.Y)
		glyph := '.'
		switch {
		case p.Size > 0.6:
			glyph = '*'
		case p.Size > 0.3:
			glyph = '+'
		}
		dst.SetColored(sx, sy, glyph, p.Color)
	}
}

// renderPreview draws a shape centered in a panel.
func renderPreview(dst *core.Screen, r core.Rect, s Shape, c core.Color) {
	if !s.Valid() {
		return
	}
	cells := NewPiece(s).Cells()
	minX, minY, maxX, maxY := cells[0].X, cells[0].Y, cells[0].X, cells[0].Y
	for _, p := range cells[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	w := (maxX - minX + 1) * cellW
	h := maxY - minY + 1
	ox := r.X + 1 + (r.W-2-w)/2
	oy := r.Y + 1 + (r.H-2-h)/2

	for _, p := range cells {
		x := ox + (p.X-minX)*cellW
		y := oy + p.Y - minY
		for i := range cellW {
			dst.SetColored(x+i, y, '█', c)
		}
	}
}

func (g *Game) renderHold(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)
	dst.DrawTextColored(r.X+2, r.Y, " HOLD ", core.ColorWhite)

	held := g.engine.Held()
	c := held.Color()
	if !g.engine.CanHold() {
		c = c.Dim()
	}
	renderPreview(dst, r, held, c)
}

func (g *Game) renderNext(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)
	dst.DrawTextColored(r.X+2, r.Y, " NEXT ", core.ColorWhite)

	next := g.engine.Next()
	renderPreview(dst, r, next, next.Color())
}

func (g *Game) renderStats(dst *core.Screen, r core.Rect) {
	s := g.engine.Scoring()
	lines := []struct {
		label string
		value string
	}{
		{"Score", fmt.Sprint(s.Score)},
		{"Best", fmt.Sprint(max(g.best, s.Score))},
		{"Lines", fmt.Sprint(s.Lines)},
		{"Level", fmt.Sprint(s.Level)},
		{"Speed", fmt.Sprintf("%dms", g.engine.FallDelay().Milliseconds())},
	}
	for i, ln := range lines {
		dst.DrawTextColored(r.X, r.Y+i, ln.label, core.ColorGray)
		dst.DrawTextColored(r.X+6, r.Y+i, ln.value, core.ColorBrightWhite)
	}

	if rows := g.engine.ClearingRows(); len(rows) > 0 {
		dst.DrawTextColored(r.X, r.Y+len(lines)+1, clearLabel(len(rows)), core.ColorBrightYellow)
	}
}

// clearLabel names a simultaneous clear of n rows.
func clearLabel(n int) string {
	switch n {
	case 1:
		return "SINGLE"
	case 2:
		return "DOUBLE"
	case 3:
		return "TRIPLE"
	case 4:
		return "TETRIS!"
	default:
		return ""
	}
}

// renderHelp draws the key hints under the board when there is room.
func (g *Game) renderHelp(dst *core.Screen, board core.Rect) {
	y := board.Bottom()
	if y >= dst.Height() {
		return
	}
	help := "←→ move  ↑ rotate  ↓ soft  space drop  c hold  p pause"
	dst.DrawTextCentered(y, help, core.ColorDarkGray)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	textW := max(len([]rune(line1)), len([]rune(line2)))
	boxW := textW + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextColored(box.X+(boxW-len([]rune(line1)))/2, box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextColored(box.X+(boxW-len([]rune(line2)))/2, box.Y+3, line2, core.ColorWhite)
}
